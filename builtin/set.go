package builtin

import (
	"context"
	"fmt"

	"github.com/shellrun/shellrun/state"
)

// Set toggles shell options at runtime (`set -e`, `set +e`, `set -x`,
// `set +x`), grounded on spec.md §3.2/§4.6's ExitOnError/PrintTrace
// options, the same two the CLI can preset from ~/.shellrunrc
// (cmd/shellrun/config.go).
var Set = state.CommandFunc(func(ctx context.Context, cctx *state.CommandContext) state.ExecuteResult {
	var changes []state.EnvChange
	for _, arg := range cctx.Args[1:] {
		if len(arg) < 2 || (arg[0] != '-' && arg[0] != '+') {
			fmt.Fprintf(cctx.Stderr, "set: unsupported argument %q\n", arg)
			return state.FromExitCode(1)
		}
		on := arg[0] == '-'
		for _, flag := range arg[1:] {
			var opt state.Option
			switch flag {
			case 'e':
				opt = state.ExitOnError
			case 'x':
				opt = state.PrintTrace
			default:
				fmt.Fprintf(cctx.Stderr, "set: unknown option %q\n", string(flag))
				return state.FromExitCode(1)
			}
			changes = append(changes, state.SetShellOptions{Option: opt, Value: on})
		}
	}
	return state.Continue(0, changes, state.NewHandles(nil))
})
