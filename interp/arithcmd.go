package interp

import (
	"context"

	"github.com/shellrun/shellrun/expand"
	"github.com/shellrun/shellrun/pipe"
	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
)

// runArithmeticCommand evaluates a standalone `$(( expr ))` used as a
// command: exit status 0 if the value is non-zero, 1 otherwise, matching
// the sh/bash convention and spec.md §4.9's supplemented arithmetic
// command component.
func (in *Interp) runArithmeticCommand(ctx context.Context, st *state.State, a *syntax.ArithmeticExpression, stderr pipe.Writer) state.ExecuteResult {
	val, changes, err := expand.EvalArithmetic(st, a.X)
	if err != nil {
		fprintfIgnoreErr(stderr, "shellrun: %v\n", err)
		return state.FromExitCode(1)
	}
	code := 1
	if !val.IsZero() {
		code = 0
	}
	return state.Continue(code, changes, state.NewHandles(nil))
}
