package state

import (
	"context"

	"github.com/shellrun/shellrun/pipe"
)

// Command is the `ShellCommand` contract of spec.md §6.3: any object that
// can be registered in State's command registry and invoked by the
// dispatcher. It lives in package state (rather than package interp) so
// that both the interpreter and the builtin reference commands can depend
// on it without an import cycle.
type Command interface {
	Execute(ctx context.Context, cctx *CommandContext) ExecuteResult
}

// CommandContext bundles everything a Command needs to run, per spec.md
// §6.3's ShellCommandContext.
type CommandContext struct {
	Args   []string
	State  *State
	Stdin  pipe.Reader
	Stdout pipe.Writer
	Stderr pipe.Writer

	// ExecuteCommandArgs lets a builtin (time, source, eval-like builtins)
	// recursively invoke the dispatcher with a fresh argument vector.
	ExecuteCommandArgs func(ctx context.Context, args []string) ExecuteResult
}

// CommandFunc adapts a plain function to the Command interface, mirroring
// the teacher's builtin dispatch table of name -> handler closures
// (interp/builtin.go's big switch), but expressed as the Go idiom of an
// adapter type instead of a raw func value so it satisfies Command.
type CommandFunc func(ctx context.Context, cctx *CommandContext) ExecuteResult

func (f CommandFunc) Execute(ctx context.Context, cctx *CommandContext) ExecuteResult {
	return f(ctx, cctx)
}
