package state

// Option is a shell option toggled by `set -e`/`set -x` and their `+`
// forms (spec.md §3.2).
type Option int

const (
	// ExitOnError is `set -e`: a non-zero exit from any item (that is not
	// the left side of `||` and is not in a condition context) converts
	// Continue into Exit.
	ExitOnError Option = iota
	// PrintTrace is `set -x`: echo each simple command, assignment, and
	// compound-command header to stderr prefixed with "+ " before
	// execution.
	PrintTrace
)
