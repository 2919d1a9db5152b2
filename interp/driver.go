package interp

import (
	"context"

	"github.com/shellrun/shellrun/expand"
	"github.com/shellrun/shellrun/pipe"
	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
	"golang.org/x/sync/errgroup"
)

// runSequentialList drives a SequentialList (spec.md §4.6): items
// separated by ';' run one after another and apply their changes to st
// before the next item starts; items separated by '&' are backgrounded
// against a cloned scope and their changes are never applied to st,
// mirroring a subshell (spec.md §3.3's isolation rule extended to
// background jobs). Grounded on the teacher's Runner.Run / Runner.stmt.
func (in *Interp) runSequentialList(ctx context.Context, st *state.State, list *syntax.SequentialList, stdin pipe.Reader, stdout, stderr pipe.Writer) state.ExecuteResult {
	g := &errgroup.Group{}
	handles := state.NewHandles(g)
	code := st.LastCommandExitCode

	for _, item := range list.Items {
		if ctx.Err() != nil {
			return state.ForCancellation(handles)
		}
		if item.IsAsync {
			bg := st.Clone()
			seq := item.Sequence
			stdinClone := stdin.Clone()
			stdoutClone := stdout.Clone()
			stderrClone := stderr.Clone()
			handles.Go(func() error {
				defer stdinClone.Close()
				res := in.runSequence(ctx, bg, seq, stdinClone, stdoutClone, stderrClone)
				return res.Handles.Wait()
			})
			continue
		}

		res := in.runSequence(ctx, st, item.Sequence, stdin, stdout, stderr)
		if res.Exiting {
			return state.Exit(res.Code, handles)
		}
		st.ApplyChanges(res.Changes)
		code = res.Code
		st.LastCommandExitCode = code
		if st.Option(state.ExitOnError) && code != 0 {
			return state.Exit(code, handles)
		}
	}
	return state.Continue(code, nil, handles)
}

// runSequence evaluates one Sequence (spec.md §3.1: ShellVar, Pipeline, or
// BooleanList) and returns its result without touching st beyond what it
// explicitly applies for short-circuit evaluation of the next operand.
func (in *Interp) runSequence(ctx context.Context, st *state.State, seq syntax.Sequence, stdin pipe.Reader, stdout, stderr pipe.Writer) state.ExecuteResult {
	switch s := seq.(type) {
	case *syntax.ShellVarSeq:
		return in.runShellVarSeq(ctx, st, s, stderr)
	case *syntax.Pipeline:
		return in.runPipeline(ctx, st, s, stdin, stdout, stderr)
	case *syntax.BooleanList:
		return in.runBooleanList(ctx, st, s, stdin, stdout, stderr)
	default:
		return state.FromExitCode(2)
	}
}

func (in *Interp) runShellVarSeq(ctx context.Context, st *state.State, s *syntax.ShellVarSeq, stderr pipe.Writer) state.ExecuteResult {
	value, changes, err := expand.WordOne(ctx, in, st, s.Var.Value)
	if err != nil {
		writeErrf(st, nil, "shellrun: %v\n", err)
		return state.FromExitCode(1)
	}
	traceSimpleCommand(st, stderr, []string{s.Var.Name + "=" + value})
	change := state.SetShellVar{Name: s.Var.Name, Value: value}
	changes = append(changes, change)
	return state.Continue(0, changes, state.NewHandles(nil))
}

func (in *Interp) runBooleanList(ctx context.Context, st *state.State, s *syntax.BooleanList, stdin pipe.Reader, stdout, stderr pipe.Writer) state.ExecuteResult {
	left := in.runSequence(ctx, st, s.Current, stdin, stdout, stderr)
	if left.Exiting {
		return left
	}
	st.ApplyChanges(left.Changes)
	st.LastCommandExitCode = left.Code

	proceed := (s.Op == syntax.And && left.Code == 0) || (s.Op == syntax.Or && left.Code != 0)
	if !proceed {
		return state.Continue(left.Code, left.Changes, left.Handles)
	}

	right := in.runSequence(ctx, st, s.Next, stdin, stdout, stderr)
	if right.Exiting {
		return right
	}
	allChanges := append(append([]state.EnvChange{}, left.Changes...), right.Changes...)
	return state.Continue(right.Code, allChanges, right.Handles)
}

func writeErrf(st *state.State, w pipe.Writer, format string, args ...any) {
	if w == nil {
		w = pipe.Stderr()
	}
	fprintfIgnoreErr(w, format, args...)
}
