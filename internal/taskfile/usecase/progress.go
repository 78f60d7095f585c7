package usecase

import (
	"context"

	"github.com/thedomainai/task-picker-agent/internal/taskfile"
)

func (uc *implUseCase) Progress(ctx context.Context) (taskfile.Progress, error) {
	content, err := uc.repo.Read(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "taskfile.usecase.Progress.Read: %v", err)
		return taskfile.Progress{}, err
	}

	p := taskfile.Progress{
		Stats:   uc.boxes.GetStats(content),
		Pending: []string{},
	}
	for _, cb := range uc.boxes.ParseCheckboxes(content) {
		if !cb.Checked {
			p.Pending = append(p.Pending, cb.Text)
		}
	}
	return p, nil
}
