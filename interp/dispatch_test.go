package interp

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/shellrun/shellrun/builtin"
	"github.com/shellrun/shellrun/state"
)

func newTestStateWithBuiltins(t *testing.T, vars map[string]string) *state.State {
	t.Helper()
	st := state.New(context.Background(), vars, t.TempDir(), map[string]state.Command{
		"echo":  builtin.Echo,
		"true":  builtin.True,
		"false": builtin.False,
		"exit":  builtin.Exit,
	})
	return st
}

func TestDispatchRunsRegisteredBuiltin(t *testing.T) {
	c := qt.New(t)
	st := newTestStateWithBuiltins(t, nil)
	_, out := runSrc(t, st, "echo hi")
	c.Assert(out, qt.Equals, "hi\n")
}

func TestDispatchUnknownCommandReports127(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	res, _ := runSrc(t, st, "this-command-does-not-exist-xyz")
	c.Assert(res.Code, qt.Equals, 127)
}

func TestDispatchBareAssignmentAppliesShellVar(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	res, _ := runSrc(t, st, "X=1 Y=2")
	c.Assert(res.Code, qt.Equals, 0)
	st.ApplyChanges(res.Changes)
	v, ok := st.GetVar("X")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, "1")
}

func TestDispatchPerCommandEnvOverrideDoesNotLeakToParentScope(t *testing.T) {
	c := qt.New(t)
	st := newTestStateWithBuiltins(t, nil)
	runSrc(t, st, "X=override echo hi")
	_, ok := st.GetVar("X")
	c.Assert(ok, qt.IsFalse)
}

func TestExpandAliasSubstitutesLeadingTokens(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	st.ApplyChange(state.AliasCommand{Name: "ll", Value: "echo -n"})
	got := expandAlias(st, []string{"ll", "arg"})
	c.Assert(got, qt.DeepEquals, []string{"echo", "-n", "arg"})
}

func TestExpandAliasLeavesUnknownNameUnchanged(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	got := expandAlias(st, []string{"echo", "hi"})
	c.Assert(got, qt.DeepEquals, []string{"echo", "hi"})
}
