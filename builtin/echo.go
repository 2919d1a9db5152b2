package builtin

import (
	"context"
	"strings"

	"github.com/shellrun/shellrun/state"
)

// Echo writes its arguments space-joined followed by a newline, with a
// leading `-n` suppressing the trailing newline, grounded on
// original_source's commands/args.rs echo implementation.
var Echo = state.CommandFunc(func(ctx context.Context, cctx *state.CommandContext) state.ExecuteResult {
	args := cctx.Args[1:]
	newline := true
	if len(args) > 0 && args[0] == "-n" {
		newline = false
		args = args[1:]
	}
	writeOut(cctx, "%s", strings.Join(args, " "))
	if newline {
		writeOut(cctx, "\n")
	}
	return state.FromExitCode(0)
})
