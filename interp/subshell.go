package interp

import (
	"context"

	"github.com/shellrun/shellrun/pipe"
	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
)

// runSubshell executes a Subshell's body against a cloned scope and
// discards the resulting changes, per spec.md §3.3's env-isolation
// invariant (testable property 3). Grounded on the teacher's subshell
// handling in interp/runner.go (its `Call` with a forked sub-Runner).
func (in *Interp) runSubshell(ctx context.Context, st *state.State, s *syntax.Subshell, stdin pipe.Reader, stdout, stderr pipe.Writer) state.ExecuteResult {
	scope := st.Clone()
	res := in.runSequentialList(ctx, scope, s.List, stdin, stdout, stderr)
	// Changes stay local to the subshell's cloned scope; nothing escapes
	// to st. An exit inside the subshell ends only the subshell: its code
	// becomes the subshell's exit code and the outer list continues.
	return state.Continue(res.Code, nil, res.Handles)
}
