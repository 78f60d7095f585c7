package model

// SourceKind identifies where a document came from.
type SourceKind string

const (
	SourceFile    SourceKind = "file"
	SourceSession SourceKind = "session"
	SourceGitDiff SourceKind = "git-diff"
	SourceInline  SourceKind = "inline"
)

// Document is one unit of input for the pipeline.
type Document struct {
	Kind    SourceKind
	Name    string // label used in the appended section header
	Path    string // empty for inline and git-diff documents
	Content string
}
