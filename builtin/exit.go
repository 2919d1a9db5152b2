package builtin

import (
	"context"
	"strconv"

	"github.com/shellrun/shellrun/state"
)

// Exit stops the enclosing sequential list (and, unless inside a
// subshell, the whole shell invocation) with the given exit code, or 0 if
// none is given, grounded on original_source's commands/break_cmd.rs.
var Exit = state.CommandFunc(func(ctx context.Context, cctx *state.CommandContext) state.ExecuteResult {
	code := 0
	if len(cctx.Args) > 1 {
		if n, err := strconv.Atoi(cctx.Args[1]); err == nil {
			code = n
		}
	}
	return state.Exit(code, state.NewHandles(nil))
})
