package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedomainai/task-picker-agent/internal/checklist"
	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/internal/taskfile"
	"github.com/thedomainai/task-picker-agent/internal/taskfile/repository/markdown"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 0, 0, time.Local)

func newTestUseCase(t *testing.T, cfg Config) (*implUseCase, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docs", "tasks.md")
	uc := New(log.NewNop(), markdown.New(path, log.NewNop()), checklist.New(), cfg).(*implUseCase)
	uc.now = func() time.Time { return fixedNow }
	return uc, path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestMerge_RendersAllCategories(t *testing.T) {
	uc, path := newTestUseCase(t, Config{Dedup: true, CaseInsensitive: true})

	out, err := uc.Merge(context.Background(), taskfile.MergeInput{
		Source: "notes.md",
		Extraction: model.ExtractionResult{
			Added:     []string{"Write tests"},
			Completed: []string{"Set up repo"},
			Todos:     []string{"handle errors"},
		},
		Implicit: []model.ImplicitTask{
			{Task: "Book venue", Reason: "mentioned deadline", Confidence: model.ConfidenceHigh},
			{Task: "Ask legal", Confidence: model.ConfidenceLow},
			{Task: "Ping Sam", Confidence: "odd"},
		},
		IncompleteSections:  []string{"Budget"},
		UnansweredQuestions: []string{"Who owns QA?"},
	})
	require.NoError(t, err)

	want := "\n## Tasks from notes.md (2026-03-14 09:26)\n" +
		"\n### New Tasks\n- [ ] Write tests\n" +
		"\n### Completed\n- [x] Set up repo\n" +
		"\n### TODO/FIXME\n- [ ] handle errors\n" +
		"\n### Implicit Tasks (AI-detected)\n" +
		"- [ ] [!] Book venue\n  - Reason: mentioned deadline\n" +
		"- [ ] [~] Ask legal\n" +
		"- [ ] [?] Ping Sam\n" +
		"\n### Incomplete Sections\n- [ ] Complete section: Budget\n" +
		"\n### Unanswered Questions\n- [ ] Answer: Who owns QA?\n"

	assert.True(t, out.Written)
	assert.Equal(t, want, out.Section)
	assert.Equal(t, want, readFile(t, path))
	assert.Equal(t, 1, out.Added)
	assert.Equal(t, 1, out.Completed)
	assert.Equal(t, 1, out.Todos)
	assert.Equal(t, 3, out.Implicit)
	assert.Equal(t, 1, out.IncompleteSections)
	assert.Equal(t, 1, out.UnansweredQuestions)
}

func TestMerge_DedupNeverReappends(t *testing.T) {
	uc, path := newTestUseCase(t, Config{Dedup: true, CaseInsensitive: true})
	ctx := context.Background()

	input := taskfile.MergeInput{
		Source: "a.md",
		Extraction: model.ExtractionResult{
			Added: []string{"Write tests"},
			Todos: []string{"fix flaky build"},
		},
		Implicit: []model.ImplicitTask{{Task: "Book venue", Confidence: model.ConfidenceHigh}},
	}
	_, err := uc.Merge(ctx, input)
	require.NoError(t, err)
	first := readFile(t, path)

	input.Extraction.Added = []string{"  WRITE TESTS "}
	out, err := uc.Merge(ctx, input)
	require.NoError(t, err)

	assert.False(t, out.Written)
	assert.True(t, out.Empty())
	assert.Equal(t, 3, out.Skipped)
	assert.Equal(t, first, readFile(t, path))
}

func TestMerge_ZeroNetNewIsNoop(t *testing.T) {
	uc, path := newTestUseCase(t, Config{Dedup: true, CaseInsensitive: true})

	out, err := uc.Merge(context.Background(), taskfile.MergeInput{Source: "empty.md"})
	require.NoError(t, err)

	assert.Equal(t, taskfile.MergeOutput{}, out)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMerge_CaseSensitiveDedup(t *testing.T) {
	uc, path := newTestUseCase(t, Config{Dedup: true, CaseInsensitive: false})
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("- [ ] Write tests\n"), 0o644))

	out, err := uc.Merge(context.Background(), taskfile.MergeInput{
		Source:     "a.md",
		Extraction: model.ExtractionResult{Added: []string{"write tests", "Write tests"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Added)
	assert.Equal(t, 1, out.Skipped)
}

func TestMerge_SkipDuplicatesOverride(t *testing.T) {
	uc, path := newTestUseCase(t, Config{Dedup: true, CaseInsensitive: true})
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("- [x] Ship it\n"), 0o644))

	off := false
	out, err := uc.Merge(context.Background(), taskfile.MergeInput{
		Source:         "a.md",
		Extraction:     model.ExtractionResult{Completed: []string{"Ship it"}},
		SkipDuplicates: &off,
	})
	require.NoError(t, err)
	assert.True(t, out.Written)
	assert.Equal(t, 1, out.Completed)
	assert.Equal(t, 0, out.Skipped)
}

func TestMerge_MinConfidenceFilter(t *testing.T) {
	uc, _ := newTestUseCase(t, Config{MinConfidence: model.ConfidenceMedium})

	out, err := uc.Merge(context.Background(), taskfile.MergeInput{
		Source: "a.md",
		Implicit: []model.ImplicitTask{
			{Task: "keep", Confidence: model.ConfidenceMedium},
			{Task: "drop", Confidence: model.ConfidenceLow},
		},
		DryRun: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Implicit)
	assert.Equal(t, 1, out.Filtered)
	assert.NotContains(t, out.Section, "drop")
}

func TestMerge_DryRunDoesNotWrite(t *testing.T) {
	uc, path := newTestUseCase(t, Config{Dedup: true})

	out, err := uc.Merge(context.Background(), taskfile.MergeInput{
		Source:     "a.md",
		Extraction: model.ExtractionResult{Added: []string{"x"}},
		DryRun:     true,
	})
	require.NoError(t, err)
	assert.False(t, out.Written)
	assert.Contains(t, out.Section, "- [ ] x\n")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExistingTasks_StripsConfidenceGlyph(t *testing.T) {
	uc, path := newTestUseCase(t, Config{Dedup: true, CaseInsensitive: true})
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("- [ ] [!] Book Venue\n- [x] Done thing\n"), 0o644))

	got, err := uc.ExistingTasks(context.Background())
	require.NoError(t, err)
	assert.Contains(t, got, "book venue")
	assert.Contains(t, got, "[!] book venue")
	assert.Contains(t, got, "done thing")
}

func TestExistingTasks_IgnoresBlankImplicitLine(t *testing.T) {
	uc, path := newTestUseCase(t, Config{Dedup: true, CaseInsensitive: true})
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("- [ ] [?] \n- [ ] Real task\n"), 0o644))

	got, err := uc.ExistingTasks(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, got, "")
	assert.Contains(t, got, "real task")
}

type failingRepo struct{ readErr, appendErr error }

func (r failingRepo) Read(context.Context) (string, error) { return "", r.readErr }
func (r failingRepo) Append(context.Context, string) error { return r.appendErr }
func (r failingRepo) Path() string                         { return "mem" }

func TestMerge_RepositoryErrors(t *testing.T) {
	boom := errors.New("boom")
	input := taskfile.MergeInput{Source: "a.md", Extraction: model.ExtractionResult{Added: []string{"x"}}}

	uc := New(log.NewNop(), failingRepo{readErr: boom}, checklist.New(), Config{Dedup: true})
	_, err := uc.Merge(context.Background(), input)
	assert.ErrorIs(t, err, boom)

	uc = New(log.NewNop(), failingRepo{appendErr: boom}, checklist.New(), Config{Dedup: true})
	out, err := uc.Merge(context.Background(), input)
	assert.ErrorIs(t, err, boom)
	assert.False(t, out.Written)

	_, err = uc.Merge(context.Background(), taskfile.MergeInput{})
	assert.ErrorIs(t, err, taskfile.ErrEmptySource)
}
