package gitdiff

// AddedLine is one "+" line of the diff, without the leading marker.
type AddedLine struct {
	Path string
	Text string
}
