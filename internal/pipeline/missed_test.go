package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thedomainai/task-picker-agent/internal/model"
)

func TestFindPotentiallyMissed(t *testing.T) {
	implicit := []model.ImplicitTask{
		{Task: "Book the venue for the offsite"},
		{Task: "email"},
	}

	got := FindPotentiallyMissed([]string{
		"book the venue", // contained in an implicit task
		"Email the team", // contains an implicit task
		"Renew passport",
	}, implicit)

	assert.Equal(t, []string{"Renew passport"}, got)
}

func TestFindPotentiallyMissed_NoInference(t *testing.T) {
	got := FindPotentiallyMissed([]string{"a", "b"}, nil)
	assert.Equal(t, []string{"a", "b"}, got)

	got = FindPotentiallyMissed(nil, []model.ImplicitTask{{Task: "x"}})
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
