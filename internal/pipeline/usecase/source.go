package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/internal/pipeline"
	"github.com/thedomainai/task-picker-agent/pkg/gitdiff"
)

const gitDiffSource = "git-diff"

func (uc *implUseCase) LoadFile(ctx context.Context, path string) (model.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return model.Document{}, err
	}
	if uc.cfg.Excluder != nil && uc.cfg.Excluder.IsExcluded(abs) {
		uc.l.Infof(ctx, "pipeline.usecase.LoadFile: skipping excluded file %s", filepath.Base(abs))
		return model.Document{}, fmt.Errorf("%w: %s", pipeline.ErrExcluded, abs)
	}
	return uc.readDocument(ctx, abs)
}

func (uc *implUseCase) readDocument(ctx context.Context, abs string) (model.Document, error) {
	b, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Document{}, fmt.Errorf("%w: %s", pipeline.ErrDocumentNotFound, abs)
		}
		uc.l.Errorf(ctx, "pipeline.usecase.readDocument.ReadFile: %v", err)
		return model.Document{}, err
	}
	if !utf8.Valid(b) {
		return model.Document{}, fmt.Errorf("%w: %s", pipeline.ErrInvalidEncoding, abs)
	}

	return model.Document{
		Kind:    model.SourceFile,
		Name:    filepath.Base(abs),
		Path:    abs,
		Content: string(b),
	}, nil
}

// LoadSession finds session-<id>.md in the first month directory under the
// sessions dir that contains it. Directories are scanned in name order.
// A session is named explicitly, so the exclusion list does not apply.
func (uc *implUseCase) LoadSession(ctx context.Context, sessionID string) (model.Document, error) {
	if sessionID == "" || strings.ContainsAny(sessionID, `/\`) || strings.Contains(sessionID, "..") {
		return model.Document{}, fmt.Errorf("%w: %q", pipeline.ErrSessionNotFound, sessionID)
	}

	entries, err := os.ReadDir(uc.cfg.SessionsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Document{}, fmt.Errorf("%w: %s", pipeline.ErrSessionNotFound, sessionID)
		}
		return model.Document{}, err
	}

	name := "session-" + sessionID + ".md"
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		candidate := filepath.Join(uc.cfg.SessionsDir, e.Name(), name)
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return model.Document{}, err
		}
		doc, err := uc.readDocument(ctx, abs)
		if err != nil {
			return model.Document{}, err
		}
		doc.Kind = model.SourceSession
		doc.Name = "session-" + sessionID
		return doc, nil
	}
	return model.Document{}, fmt.Errorf("%w: %s", pipeline.ErrSessionNotFound, sessionID)
}

// LoadGitDiff turns the markdown lines added by the last commit into a document.
func (uc *implUseCase) LoadGitDiff(ctx context.Context, repoPath string) (model.Document, error) {
	lines, err := uc.openDiff(repoPath).AddedLines(ctx)
	if err != nil {
		uc.l.Warnf(ctx, "pipeline.usecase.LoadGitDiff: %v", err)
		return model.Document{}, err
	}

	content := gitdiff.Content(lines)
	if !utf8.ValidString(content) {
		return model.Document{}, fmt.Errorf("%w: %s", pipeline.ErrInvalidEncoding, gitDiffSource)
	}
	return model.Document{
		Kind:    model.SourceGitDiff,
		Name:    gitDiffSource,
		Content: content,
	}, nil
}
