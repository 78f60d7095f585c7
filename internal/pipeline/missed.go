package pipeline

import (
	"strings"

	"github.com/thedomainai/task-picker-agent/internal/model"
)

// FindPotentiallyMissed returns the explicit tasks that no implicit task covers.
// A task is covered when either lower-cased text contains the other.
func FindPotentiallyMissed(explicit []string, implicit []model.ImplicitTask) []string {
	inferred := make([]string, 0, len(implicit))
	for _, t := range implicit {
		inferred = append(inferred, strings.ToLower(strings.TrimSpace(t.Task)))
	}

	missed := []string{}
	for _, task := range explicit {
		lower := strings.ToLower(strings.TrimSpace(task))
		covered := false
		for _, inf := range inferred {
			if strings.Contains(inf, lower) || strings.Contains(lower, inf) {
				covered = true
				break
			}
		}
		if !covered {
			missed = append(missed, task)
		}
	}
	return missed
}
