package builtin

import (
	"context"
	"io"
	"os"

	"github.com/shellrun/shellrun/state"
)

// Cat streams each named file (or, with no arguments, its stdin) to
// stdout, grounded on original_source's commands/cat.rs.
var Cat = state.CommandFunc(func(ctx context.Context, cctx *state.CommandContext) state.ExecuteResult {
	if len(cctx.Args) <= 1 {
		if _, err := io.Copy(cctx.Stdout, cctx.Stdin); err != nil {
			writeErr(cctx, "cat: %v\n", err)
			return state.FromExitCode(1)
		}
		return state.FromExitCode(0)
	}
	code := 0
	for _, name := range cctx.Args[1:] {
		if err := catFile(cctx, name); err != nil {
			writeErr(cctx, "cat: %s: %v\n", name, err)
			code = 1
		}
	}
	return state.FromExitCode(code)
})

func catFile(cctx *state.CommandContext, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(cctx.Stdout, f)
	return err
}
