package interp

import (
	"context"
	"os/exec"

	"github.com/shellrun/shellrun/expand"
	"github.com/shellrun/shellrun/pipe"
	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
)

// runSimpleCommand expands a SimpleCommand's env-var prefix and argument
// words, resolves aliases, and dispatches to a registered builtin or an
// external process (spec.md §4.8's dispatcher, component I). Grounded on
// the teacher's CallExpr case in interp/runner.go.
func (in *Interp) runSimpleCommand(ctx context.Context, st *state.State, c *syntax.SimpleCommand, stdin pipe.Reader, stdout, stderr pipe.Writer) state.ExecuteResult {
	var allChanges []state.EnvChange

	args, err := in.expandArgs(ctx, st, c.Args, &allChanges)
	if err != nil {
		fprintfIgnoreErr(stderr, "shellrun: %v\n", err)
		return state.FromExitCode(1)
	}

	if len(args) == 0 {
		// A bare assignment-only SimpleCommand (e.g. `X=1 Y=2`, with no
		// command word): apply overrides permanently as shell vars.
		overrides, err := in.expandEnvVarOverrides(ctx, st, c.EnvVars, &allChanges)
		if err != nil {
			fprintfIgnoreErr(stderr, "shellrun: %v\n", err)
			return state.FromExitCode(1)
		}
		traced := make([]string, 0, len(c.EnvVars))
		for _, ev := range c.EnvVars {
			traced = append(traced, ev.Name+"="+overrides[ev.Name])
		}
		traceSimpleCommand(st, stderr, traced)
		for name, value := range overrides {
			change := state.SetShellVar{Name: name, Value: value}
			st.ApplyChange(change)
			allChanges = append(allChanges, change)
		}
		return state.Continue(0, allChanges, state.NewHandles(nil))
	}

	args = expandAlias(st, args)
	name := args[0]

	traceSimpleCommand(st, stderr, args)

	if len(c.EnvVars) > 0 {
		// Per-command overrides apply only to the child's environment, not
		// to st itself (spec.md §3.1's EnvVar-prefix semantics).
		scope := st.Clone()
		overrides, err := in.expandEnvVarOverrides(ctx, scope, c.EnvVars, &allChanges)
		if err != nil {
			fprintfIgnoreErr(stderr, "shellrun: %v\n", err)
			return state.FromExitCode(1)
		}
		for name, value := range overrides {
			scope.ApplyChange(state.SetEnvVar{Name: name, Value: value})
		}
		res := in.invoke(ctx, scope, name, args, stdin, stdout, stderr)
		res.Changes = allChanges
		return res
	}

	res := in.invoke(ctx, st, name, args, stdin, stdout, stderr)
	res.Changes = append(allChanges, res.Changes...)
	return res
}

func (in *Interp) expandArgs(ctx context.Context, st *state.State, words []syntax.Word, changes *[]state.EnvChange) ([]string, error) {
	var out []string
	for _, w := range words {
		fields, cs, err := expand.Word(ctx, in, st, w)
		if err != nil {
			return nil, err
		}
		*changes = append(*changes, cs...)
		out = append(out, fields...)
	}
	return out, nil
}

func (in *Interp) expandEnvVarOverrides(ctx context.Context, st *state.State, vars []syntax.EnvVar, changes *[]state.EnvChange) (map[string]string, error) {
	out := map[string]string{}
	for _, ev := range vars {
		value, cs, err := expand.WordOne(ctx, in, st, ev.Value)
		if err != nil {
			return nil, err
		}
		*changes = append(*changes, cs...)
		out[ev.Name] = value
	}
	return out, nil
}

// expandAlias replaces args[0] with its alias expansion if one is
// registered, re-splicing the alias's token list ahead of the remaining
// arguments. A single level of expansion is performed; an alias whose own
// expansion starts with the same name is not re-expanded, avoiding
// infinite recursion on a self-referential alias.
func expandAlias(st *state.State, args []string) []string {
	toks, ok := st.Alias(args[0])
	if !ok || len(toks) == 0 {
		return args
	}
	out := make([]string, 0, len(toks)+len(args)-1)
	out = append(out, toks...)
	out = append(out, args[1:]...)
	return out
}

// invoke dispatches to a registered builtin first, falling back to PATH
// resolution and os/exec for an external process. An unresolvable command
// name reports exit code 127 (spec.md §7's DispatchError).
func (in *Interp) invoke(ctx context.Context, st *state.State, name string, args []string, stdin pipe.Reader, stdout, stderr pipe.Writer) state.ExecuteResult {
	if cmd, ok := st.Commands[name]; ok {
		cctx := &state.CommandContext{
			Args:   args,
			State:  st,
			Stdin:  stdin,
			Stdout: stdout,
			Stderr: stderr,
			ExecuteCommandArgs: func(ctx context.Context, args []string) state.ExecuteResult {
				if len(args) == 0 {
					return state.FromExitCode(0)
				}
				return in.invoke(ctx, st, args[0], args, stdin, stdout, stderr)
			},
		}
		return cmd.Execute(ctx, cctx)
	}

	path, err := exec.LookPath(name)
	if err != nil {
		fprintfIgnoreErr(stderr, "shellrun: %s: command not found\n", name)
		return state.FromExitCode(127)
	}

	var closeAfter []closer
	stdinFile := stdin.IntoFile()
	if stdinFile == nil {
		r := stdin.Clone()
		stdinFile = r.IntoFile()
		closeAfter = append(closeAfter, r)
	}
	stdoutFile := stdout.IntoFile()
	stderrFile := stderr.IntoFile()

	cmd := exec.CommandContext(ctx, path, args[1:]...)
	cmd.Dir = st.Cwd()
	cmd.Env = st.EnvList()
	cmd.Stdin, cmd.Stdout, cmd.Stderr = stdin, stdout, stderr
	if stdinFile != nil {
		cmd.Stdin = stdinFile
	}
	if stdoutFile != nil {
		cmd.Stdout = stdoutFile
	}
	if stderrFile != nil {
		cmd.Stderr = stderrFile
	}

	runErr := in.runExternal(cmd)
	for _, c := range closeAfter {
		c.Close()
	}
	if runErr == nil {
		return state.FromExitCode(0)
	}
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		return state.FromExitCode(exitErr.ExitCode())
	}
	fprintfIgnoreErr(stderr, "shellrun: %s: %v\n", name, runErr)
	return state.FromExitCode(126)
}

// runExternal runs cmd inside the interpreter's bounded blocking pool,
// since Cmd.Run blocks an OS thread for the process's lifetime (spec.md
// §5's bounded-pool requirement).
func (in *Interp) runExternal(cmd *exec.Cmd) error {
	var err error
	in.blocking.Do(func() {
		err = cmd.Run()
	})
	return err
}
