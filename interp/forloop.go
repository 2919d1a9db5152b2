package interp

import (
	"context"

	"github.com/shellrun/shellrun/expand"
	"github.com/shellrun/shellrun/pipe"
	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
)

// runForLoop expands the wordlist once, then runs Body once per resulting
// word with VarName bound to it (spec.md §4.9, supplemented component).
// Grounded on the teacher's ForClause case in interp/runner.go.
func (in *Interp) runForLoop(ctx context.Context, st *state.State, f *syntax.ForLoop, stdin pipe.Reader, stdout, stderr pipe.Writer) state.ExecuteResult {
	var words []string
	for _, w := range f.Wordlist {
		fields, _, err := expand.Word(ctx, in, st, w)
		if err != nil {
			fprintfIgnoreErr(stderr, "shellrun: %v\n", err)
			return state.FromExitCode(1)
		}
		words = append(words, fields...)
	}

	traceCompound(st, stderr, "for "+f.VarName)

	code := 0
	for _, word := range words {
		if ctx.Err() != nil {
			return state.ForCancellation(state.NewHandles(nil))
		}
		st.ApplyChange(state.SetShellVar{Name: f.VarName, Value: word})
		res := in.runSequentialList(ctx, st, f.Body, stdin, stdout, stderr)
		if res.Exiting {
			return res
		}
		code = res.Code
		st.LastCommandExitCode = code
	}
	return state.Continue(code, nil, state.NewHandles(nil))
}
