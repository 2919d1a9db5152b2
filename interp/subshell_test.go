package interp

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestSubshellIsolatesVariableAssignment(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	runSrc(t, st, "(X=1)")
	_, ok := st.GetVar("X")
	c.Assert(ok, qt.IsFalse)
}

func TestSubshellOutputStillReachesParentStreams(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	_, out := runSrc(t, st, "(echo hi)")
	c.Assert(out, qt.Equals, "hi\n")
}

func TestSubshellReportsInnerExitCode(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	res, _ := runSrc(t, st, "(false)")
	c.Assert(res.Code, qt.Equals, 1)
}
