package builtin

import (
	"context"

	"github.com/shellrun/shellrun/state"
)

// Unset removes one or more variables (env or shell), grounded on
// original_source's commands/export.rs (which implements both export and
// unset side by side).
var Unset = state.CommandFunc(func(ctx context.Context, cctx *state.CommandContext) state.ExecuteResult {
	var changes []state.EnvChange
	for _, name := range cctx.Args[1:] {
		changes = append(changes, state.UnsetVar{Name: name})
	}
	return state.Continue(0, changes, state.NewHandles(nil))
})
