package expand

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
)

type noopExecutor struct{}

func (noopExecutor) RunCaptured(ctx context.Context, st *state.State, list *syntax.SequentialList) (string, error) {
	return "", nil
}

func newTestState(t *testing.T, vars map[string]string) *state.State {
	t.Helper()
	return state.New(context.Background(), vars, t.TempDir(), nil)
}

func expandSrc(t *testing.T, st *state.State, src string) []string {
	t.Helper()
	list, err := syntax.Parse("t", []byte(src))
	qt.New(t).Assert(err, qt.IsNil)
	cmd := list.Items[0].Sequence.(*syntax.Pipeline).Inner.(*syntax.Command)
	simple := cmd.Inner.(*syntax.SimpleCommand)
	out, _, err := Word(context.Background(), noopExecutor{}, st, simple.Args[1])
	qt.New(t).Assert(err, qt.IsNil)
	return out
}

func TestVariableExpansion(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, map[string]string{"X": "hello"})
	c.Assert(expandSrc(t, st, "echo $X"), qt.DeepEquals, []string{"hello"})
}

func TestDefaultValueModifier(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	c.Assert(expandSrc(t, st, "echo ${MISSING:-fallback}"), qt.DeepEquals, []string{"fallback"})
}

func TestAlternateValueModifier(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, map[string]string{"X": "set"})
	c.Assert(expandSrc(t, st, "echo ${X:+present}"), qt.DeepEquals, []string{"present"})
	st2 := newTestState(t, nil)
	c.Assert(expandSrc(t, st2, "echo ${X:+present}"), qt.HasLen, 0)
}

func TestQuotedWordIsNotSplit(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	c.Assert(expandSrc(t, st, `echo "a b c"`), qt.DeepEquals, []string{"a b c"})
}

func TestUnquotedExpansionSplitsOnWhitespace(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, map[string]string{"X": "a b c"})
	c.Assert(expandSrc(t, st, "echo $X"), qt.DeepEquals, []string{"a", "b", "c"})
}

func TestExitStatusVariable(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	st.LastCommandExitCode = 7
	c.Assert(expandSrc(t, st, "echo $?"), qt.DeepEquals, []string{"7"})
}
