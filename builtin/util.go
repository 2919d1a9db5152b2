package builtin

import (
	"fmt"

	"github.com/shellrun/shellrun/state"
)

func writeOut(cctx *state.CommandContext, format string, args ...any) {
	fmt.Fprintf(cctx.Stdout, format, args...)
}

func writeErr(cctx *state.CommandContext, format string, args ...any) {
	fmt.Fprintf(cctx.Stderr, format, args...)
}
