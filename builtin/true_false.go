package builtin

import (
	"context"

	"github.com/shellrun/shellrun/state"
)

// True always succeeds, grounded on original_source's commands/args.rs
// no-op command stubs.
var True = state.CommandFunc(func(ctx context.Context, cctx *state.CommandContext) state.ExecuteResult {
	return state.FromExitCode(0)
})

// False always fails.
var False = state.CommandFunc(func(ctx context.Context, cctx *state.CommandContext) state.ExecuteResult {
	return state.FromExitCode(1)
})
