package interp

import (
	"bytes"
	"context"
	"os"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/shellrun/shellrun/pipe"
	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
)

func newTestState(t *testing.T, vars map[string]string) *state.State {
	t.Helper()
	return state.New(context.Background(), vars, t.TempDir(), nil)
}

// captureWriter collects everything written to it, for assertions on
// command output.
type captureWriter struct{ buf bytes.Buffer }

func (w *captureWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }
func (w *captureWriter) Close() error                { return nil }
func (w *captureWriter) Clone() pipe.Writer          { return w }
func (w *captureWriter) IntoFile() *os.File          { return nil }

func runSrc(t *testing.T, st *state.State, src string) (state.ExecuteResult, string) {
	t.Helper()
	list, err := syntax.Parse("t", []byte(src))
	qt.New(t).Assert(err, qt.IsNil)
	in := New()
	out := &captureWriter{}
	res := in.Run(context.Background(), st, list, pipe.NullReader, out, pipe.Null)
	qt.New(t).Assert(res.Handles.Wait(), qt.IsNil)
	return res, out.buf.String()
}

func TestSequentialListAppliesChangesBetweenItems(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	_, out := runSrc(t, st, "X=1; echo $X")
	c.Assert(out, qt.Equals, "1\n")
}

func TestBooleanListShortCircuitsAnd(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	_, out := runSrc(t, st, "false && echo unreachable")
	c.Assert(out, qt.Equals, "")
}

func TestBooleanListOrRunsOnFailure(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	_, out := runSrc(t, st, "false || echo fallback")
	c.Assert(out, qt.Equals, "fallback\n")
}

func TestExitOnErrorOptionStopsSequentialList(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	st.ApplyChange(state.SetShellOptions{Option: state.ExitOnError, Value: true})
	res, out := runSrc(t, st, "false; echo unreachable")
	c.Assert(res.Exiting, qt.IsTrue)
	c.Assert(out, qt.Equals, "")
}

func TestBackgroundItemChangesDoNotEscapeToParentScope(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	runSrc(t, st, "X=1 & true")
	_, ok := st.GetVar("X")
	c.Assert(ok, qt.IsFalse)
}
