package builtin

import (
	"context"
	"strings"

	"github.com/shellrun/shellrun/state"
)

// Alias defines a replacement token list for a command name (`alias
// ll='ls -la'`) or, with no `=`, is a no-op (printing existing aliases is
// not modeled; spec.md scopes alias to definition and removal).
var Alias = state.CommandFunc(func(ctx context.Context, cctx *state.CommandContext) state.ExecuteResult {
	var changes []state.EnvChange
	for _, arg := range cctx.Args[1:] {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			continue
		}
		changes = append(changes, state.AliasCommand{Name: name, Value: value})
	}
	return state.Continue(0, changes, state.NewHandles(nil))
})

// Unalias removes a previously defined alias, grounded on original_source's
// commands/break_cmd.rs-adjacent alias-table mutators.
var Unalias = state.CommandFunc(func(ctx context.Context, cctx *state.CommandContext) state.ExecuteResult {
	var changes []state.EnvChange
	for _, name := range cctx.Args[1:] {
		changes = append(changes, state.UnAliasCommand{Name: name})
	}
	return state.Continue(0, changes, state.NewHandles(nil))
})
