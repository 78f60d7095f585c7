package checklist

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/thedomainai/task-picker-agent/internal/model"
)

const (
	DefaultUncheckedPattern = `^([ \t]*)-[ \t]*\[[ \t]*\][ \t]*(.+)$`
	DefaultCheckedPattern   = `(?i)^([ \t]*)-[ \t]*\[x\][ \t]*(.+)$`
	DefaultTodoPattern      = `(?i)(?:TODO|FIXME|XXX):[ \t]*(.+)$`
)

type Service interface {
	// Extract runs the unchecked, checked and marker passes over content.
	Extract(content string) model.ExtractionResult

	// ParseCheckboxes extracts all checkboxes, checked or not, in document order
	ParseCheckboxes(content string) []Checkbox

	// GetStats calculates checklist statistics
	GetStats(content string) ChecklistStats
}

type service struct {
	unchecked *regexp.Regexp
	checked   *regexp.Regexp
	todo      *regexp.Regexp
}

// DefaultPatterns returns the built-in extraction patterns.
func DefaultPatterns() Patterns {
	return Patterns{
		Unchecked: DefaultUncheckedPattern,
		Checked:   DefaultCheckedPattern,
		Todo:      DefaultTodoPattern,
	}
}

func New() Service {
	s, err := NewWithPatterns(DefaultPatterns())
	if err != nil {
		panic(err)
	}
	return s
}

// NewWithPatterns compiles custom patterns. Empty fields use the defaults.
func NewWithPatterns(p Patterns) (Service, error) {
	def := DefaultPatterns()
	if p.Unchecked == "" {
		p.Unchecked = def.Unchecked
	}
	if p.Checked == "" {
		p.Checked = def.Checked
	}
	if p.Todo == "" {
		p.Todo = def.Todo
	}

	unchecked, err := compile(p.Unchecked)
	if err != nil {
		return nil, err
	}
	checked, err := compile(p.Checked)
	if err != nil {
		return nil, err
	}
	todo, err := compile(p.Todo)
	if err != nil {
		return nil, err
	}

	return &service{unchecked: unchecked, checked: checked, todo: todo}, nil
}

func compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?m)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	if re.NumSubexp() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoCaptureGroup, pattern)
	}
	return re, nil
}

// Extract runs three independent passes. A line may contribute to more than
// one list (e.g. "- [ ] TODO: x" is both an added task and a marker).
func (s *service) Extract(content string) model.ExtractionResult {
	return model.ExtractionResult{
		Added:     captures(s.unchecked, content),
		Completed: captures(s.checked, content),
		Todos:     captures(s.todo, content),
	}
}

// captures returns the trimmed last group of every match, dropping empty ones.
func captures(re *regexp.Regexp, content string) []string {
	out := []string{}
	for _, match := range re.FindAllStringSubmatch(content, -1) {
		text := strings.TrimSpace(match[len(match)-1])
		if text == "" {
			continue
		}
		out = append(out, text)
	}
	return out
}

// ParseCheckboxes extracts all checkboxes from markdown
func (s *service) ParseCheckboxes(content string) []Checkbox {
	type hit struct {
		offset  int
		match   []string
		checked bool
	}

	var hits []hit
	for _, idx := range s.unchecked.FindAllStringSubmatchIndex(content, -1) {
		hits = append(hits, hit{offset: idx[0], match: submatches(content, idx)})
	}
	for _, idx := range s.checked.FindAllStringSubmatchIndex(content, -1) {
		hits = append(hits, hit{offset: idx[0], match: submatches(content, idx), checked: true})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].offset < hits[j].offset })

	checkboxes := make([]Checkbox, 0, len(hits))
	for i, h := range hits {
		text := strings.TrimSpace(h.match[len(h.match)-1])
		if text == "" {
			continue
		}
		indent := ""
		if len(h.match) > 2 {
			indent = h.match[1]
		}
		checkboxes = append(checkboxes, Checkbox{
			Line:    i,
			Indent:  indent,
			Checked: h.checked,
			Text:    text,
			RawLine: h.match[0],
		})
	}

	return checkboxes
}

func submatches(content string, idx []int) []string {
	out := make([]string, len(idx)/2)
	for i := range out {
		if idx[2*i] >= 0 {
			out[i] = content[idx[2*i]:idx[2*i+1]]
		}
	}
	return out
}

// GetStats calculates checklist statistics
func (s *service) GetStats(content string) ChecklistStats {
	checkboxes := s.ParseCheckboxes(content)
	total := len(checkboxes)

	if total == 0 {
		return ChecklistStats{}
	}

	completed := 0
	for _, cb := range checkboxes {
		if cb.Checked {
			completed++
		}
	}

	return ChecklistStats{
		Total:     total,
		Completed: completed,
		Pending:   total - completed,
		Progress:  float64(completed) / float64(total) * 100,
	}
}
