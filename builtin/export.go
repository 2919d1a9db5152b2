package builtin

import (
	"context"
	"strings"

	"github.com/shellrun/shellrun/state"
)

// Export sets one or more exported environment variables (`export
// NAME=VALUE ...`), or with no `=` simply promotes an existing shell
// variable to exported status, grounded on original_source's
// commands/export.rs.
var Export = state.CommandFunc(func(ctx context.Context, cctx *state.CommandContext) state.ExecuteResult {
	var changes []state.EnvChange
	for _, arg := range cctx.Args[1:] {
		name, value, hasValue := strings.Cut(arg, "=")
		if !hasValue {
			if v, ok := cctx.State.GetVar(name); ok {
				value = v
			}
		}
		changes = append(changes, state.SetEnvVar{Name: name, Value: value})
	}
	return state.Continue(0, changes, state.NewHandles(nil))
})
