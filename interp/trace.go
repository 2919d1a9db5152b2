package interp

import (
	"strings"

	"github.com/shellrun/shellrun/pipe"
	"github.com/shellrun/shellrun/state"
)

// traceSimpleCommand writes a `set -x`-style execution trace to stderr
// before a SimpleCommand runs, grounded on the teacher's interp/trace.go.
// It is a no-op unless st.Option(state.PrintTrace) is set.
func traceSimpleCommand(st *state.State, stderr pipe.Writer, args []string) {
	if !st.Option(state.PrintTrace) {
		return
	}
	fprintfIgnoreErr(stderr, "+ %s\n", strings.Join(args, " "))
}

// traceCompound writes a one-line trace for a compound command header
// (if/for), since spec.md's tracing invariant covers every command kind,
// not only simple ones.
func traceCompound(st *state.State, stderr pipe.Writer, header string) {
	if !st.Option(state.PrintTrace) {
		return
	}
	fprintfIgnoreErr(stderr, "+ %s\n", header)
}
