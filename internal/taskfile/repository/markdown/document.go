package markdown

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thedomainai/task-picker-agent/internal/taskfile/repository"
)

func (r *implRepository) Read(ctx context.Context) (string, error) {
	b, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		r.l.Errorf(ctx, "taskfile.repository.markdown.Read: %v", err)
		return "", fmt.Errorf("%w: %v", repository.ErrFailedToRead, err)
	}
	return string(b), nil
}

func (r *implRepository) Append(ctx context.Context, block string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), dirPerm); err != nil {
		r.l.Errorf(ctx, "taskfile.repository.markdown.Append.MkdirAll: %v", err)
		return fmt.Errorf("%w: %v", repository.ErrFailedToAppend, err)
	}

	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, filePerm)
	if err != nil {
		r.l.Errorf(ctx, "taskfile.repository.markdown.Append.OpenFile: %v", err)
		return fmt.Errorf("%w: %v", repository.ErrFailedToAppend, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrFailedToAppend, err)
	}
	size := info.Size()

	written, err := writeAll(f, block)
	if err != nil {
		r.rollback(ctx, f, size, written)
		r.l.Errorf(ctx, "taskfile.repository.markdown.Append: %v", err)
		return fmt.Errorf("%w: %v", repository.ErrFailedToAppend, err)
	}
	return nil
}

// rollback removes a partial block, unless another writer appended after it.
func (r *implRepository) rollback(ctx context.Context, f *os.File, before, written int64) {
	info, err := f.Stat()
	if err != nil {
		r.l.Errorf(ctx, "taskfile.repository.markdown.rollback.Stat: %v", err)
		return
	}
	if !canTruncate(before, info.Size(), written) {
		r.l.Warnf(ctx, "taskfile.repository.markdown.rollback: %s changed during append, leaving %d partial byte(s)", r.path, written)
		return
	}
	if err := f.Truncate(before); err != nil {
		r.l.Errorf(ctx, "taskfile.repository.markdown.rollback.Truncate: %v", err)
	}
}

// canTruncate reports whether the file holds nothing but our own bytes past before.
func canTruncate(before, current, written int64) bool {
	return current == before+written
}

func writeAll(f *os.File, block string) (int64, error) {
	n, err := f.WriteString(block)
	if err != nil {
		return int64(n), err
	}
	if n < len(block) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), f.Sync()
}
