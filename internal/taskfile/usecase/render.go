package usecase

import (
	"strings"
	"time"

	"github.com/thedomainai/task-picker-agent/internal/model"
	"github.com/thedomainai/task-picker-agent/internal/taskfile"
)

type section struct {
	source     string
	at         time.Time
	ext        model.ExtractionResult
	implicit   []model.ImplicitTask
	incomplete []string
	questions  []string
}

func render(s section) string {
	var b strings.Builder
	b.WriteString("\n## Tasks from " + s.source + " (" + s.at.Format(timestampLayout) + ")\n")

	list(&b, "New Tasks", "- [ ] ", s.ext.Added)
	list(&b, "Completed", "- [x] ", s.ext.Completed)
	list(&b, "TODO/FIXME", "- [ ] ", s.ext.Todos)

	if len(s.implicit) > 0 {
		b.WriteString("\n### Implicit Tasks (AI-detected)\n")
		for _, t := range s.implicit {
			b.WriteString("- [ ] [" + taskfile.Glyph(t.Confidence) + "] " + t.Task + "\n")
			if t.Reason != "" {
				b.WriteString("  - Reason: " + t.Reason + "\n")
			}
		}
	}

	list(&b, "Incomplete Sections", "- [ ] Complete section: ", s.incomplete)
	list(&b, "Unanswered Questions", "- [ ] Answer: ", s.questions)
	return b.String()
}

func list(b *strings.Builder, title, prefix string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n### " + title + "\n")
	for _, it := range items {
		b.WriteString(prefix + it + "\n")
	}
}
