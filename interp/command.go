package interp

import (
	"context"
	"fmt"
	"os"

	"github.com/shellrun/shellrun/expand"
	"github.com/shellrun/shellrun/pipe"
	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
)

// runCommand applies a Command's redirection (if any) and then dispatches
// its CommandInner, restoring the original streams once the inner form
// has finished. Grounded on the teacher's redirect-application wrapper in
// interp/runner.go.
func (in *Interp) runCommand(ctx context.Context, st *state.State, c *syntax.Command, stdin pipe.Reader, stdout, stderr pipe.Writer) state.ExecuteResult {
	if c.Redirect != nil {
		newStdin, newStdout, newStderr, closers, err := in.applyRedirect(ctx, st, c.Redirect, stdin, stdout, stderr)
		defer func() {
			for _, cl := range closers {
				cl.Close()
			}
		}()
		if err != nil {
			fprintfIgnoreErr(stderr, "shellrun: %v\n", err)
			return state.FromExitCode(1)
		}
		stdin, stdout, stderr = newStdin, newStdout, newStderr
	}
	return in.runCommandInner(ctx, st, c.Inner, stdin, stdout, stderr)
}

func (in *Interp) runCommandInner(ctx context.Context, st *state.State, inner syntax.CommandInner, stdin pipe.Reader, stdout, stderr pipe.Writer) state.ExecuteResult {
	switch c := inner.(type) {
	case *syntax.SimpleCommand:
		return in.runSimpleCommand(ctx, st, c, stdin, stdout, stderr)
	case *syntax.Subshell:
		return in.runSubshell(ctx, st, c, stdin, stdout, stderr)
	case *syntax.IfClause:
		return in.runIfClause(ctx, st, c, stdin, stdout, stderr)
	case *syntax.ForLoop:
		return in.runForLoop(ctx, st, c, stdin, stdout, stderr)
	case *syntax.ArithmeticExpression:
		return in.runArithmeticCommand(ctx, st, c, stderr)
	default:
		fprintfIgnoreErr(stderr, "shellrun: unsupported command form\n")
		return state.FromExitCode(2)
	}
}

type closer interface{ Close() error }

// applyRedirect resolves one Redirect, returning the possibly-replaced
// stdin/stdout/stderr and any opened files the caller must close after
// the command finishes. Only fds 0 (stdin), 1 (stdout), 2 (stderr) are
// modeled, per spec.md §3.1's SimpleCommand redirection scope.
func (in *Interp) applyRedirect(ctx context.Context, st *state.State, r *syntax.Redirect, stdin pipe.Reader, stdout, stderr pipe.Writer) (pipe.Reader, pipe.Writer, pipe.Writer, []closer, error) {
	targetFd := uint32(1)
	if r.MaybeFd != nil && !r.MaybeFd.IsStdoutStderr {
		targetFd = r.MaybeFd.Fd
	}
	if targetFd > 2 {
		return nil, nil, nil, nil, fmt.Errorf("redirect: unsupported file descriptor %d", targetFd)
	}

	switch op := r.Op.(type) {
	case syntax.RedirectInput:
		if fdIo, ok := r.IoFile.(*syntax.IoFileFd); ok {
			_ = fdIo
			return stdin, stdout, stderr, nil, nil
		}
		word := r.IoFile.(*syntax.IoFileWord).W
		path, _, err := expand.WordOne(ctx, in, st, word)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return pipe.FromFile(f), stdout, stderr, []closer{f}, nil

	case syntax.RedirectOutput:
		if fdIo, ok := r.IoFile.(*syntax.IoFileFd); ok {
			var src pipe.Writer
			switch fdIo.Fd {
			case 1:
				src = stdout
			case 2:
				src = stderr
			default:
				src = stdout
			}
			if targetFd == 2 {
				return stdin, stdout, src, nil, nil
			}
			return stdin, src, stderr, nil, nil
		}
		word := r.IoFile.(*syntax.IoFileWord).W
		path, _, err := expand.WordOne(ctx, in, st, word)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		flags := os.O_WRONLY | os.O_CREATE
		if op.Mode == syntax.Append {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(path, flags, 0644)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if r.MaybeFd != nil && r.MaybeFd.IsStdoutStderr {
			fw := pipe.FromFile(f)
			return stdin, fw, fw, []closer{f}, nil
		}
		if targetFd == 2 {
			return stdin, stdout, pipe.FromFile(f), []closer{f}, nil
		}
		return stdin, pipe.FromFile(f), stderr, []closer{f}, nil
	}
	return stdin, stdout, stderr, nil, nil
}
