// Package builtin implements the reference shell commands spec.md §4's
// supplemented "Builtin reference commands" component names: cd, pwd,
// export, unset, alias, unalias, exit, true, false, echo, cat. Each is
// grounded on original_source's Rust command implementations
// (crates/deno_task_shell/src/shell/commands/*.rs), re-expressed as a
// state.Command against this module's ShellCommand contract.
package builtin

import (
	"context"
	"os"
	"path/filepath"

	"github.com/shellrun/shellrun/state"
)

// Cd changes the shell's working directory, grounded on
// original_source's commands/cd.rs. With no argument it goes to $HOME;
// `cd -` is not modeled (spec.md does not track an OLDPWD history).
var Cd = state.CommandFunc(func(ctx context.Context, cctx *state.CommandContext) state.ExecuteResult {
	target := ""
	if len(cctx.Args) > 1 {
		target = cctx.Args[1]
	}
	if target == "" {
		home, ok := cctx.State.GetVar("HOME")
		if !ok {
			writeErr(cctx, "cd: HOME not set\n")
			return state.FromExitCode(1)
		}
		target = home
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(cctx.State.Cwd(), target)
	}
	resolved, err := filepath.EvalSymlinks(target)
	if err != nil {
		writeErr(cctx, "cd: %s: %v\n", target, err)
		return state.FromExitCode(1)
	}
	fi, err := os.Stat(resolved)
	if err != nil || !fi.IsDir() {
		writeErr(cctx, "cd: %s: not a directory\n", target)
		return state.FromExitCode(1)
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		writeErr(cctx, "cd: %s: %v\n", target, err)
		return state.FromExitCode(1)
	}
	return state.Continue(0, []state.EnvChange{state.Cd{Path: abs}}, state.NewHandles(nil))
})

// Pwd prints the current working directory, grounded on original_source's
// handling of PWD in commands/cd.rs.
var Pwd = state.CommandFunc(func(ctx context.Context, cctx *state.CommandContext) state.ExecuteResult {
	writeOut(cctx, "%s\n", cctx.State.Cwd())
	return state.FromExitCode(0)
})
