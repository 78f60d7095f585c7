package markdown

import (
	"github.com/thedomainai/task-picker-agent/internal/taskfile/repository"
	"github.com/thedomainai/task-picker-agent/pkg/log"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

type implRepository struct {
	path string
	l    log.Logger
}

var _ repository.Repository = (*implRepository)(nil)

// New returns a repository backed by the markdown file at path.
func New(path string, l log.Logger) repository.Repository {
	return &implRepository{path: path, l: l}
}

func (r *implRepository) Path() string {
	return r.path
}
