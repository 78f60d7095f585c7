package checklist

// Patterns holds the three extraction regexes. Each is compiled in multi-line
// mode and the task text is taken from its last capture group.
type Patterns struct {
	Unchecked string
	Checked   string
	Todo      string
}

// Checkbox represents a single checkbox in markdown
type Checkbox struct {
	Line    int    // Index among matched checkboxes
	Indent  string // Leading whitespace
	Checked bool   // true if [x], false if [ ]
	Text    string // Checkbox text content
	RawLine string // Original line
}

// ChecklistStats represents checklist progress
type ChecklistStats struct {
	Total     int     // Total checkboxes
	Completed int     // Checked checkboxes
	Pending   int     // Unchecked checkboxes
	Progress  float64 // Completion percentage (0-100)
}
