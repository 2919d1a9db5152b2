package interp

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestArithmeticCommandNonZeroExitsZero(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	res, _ := runSrc(t, st, "$((1 + 1))")
	c.Assert(res.Code, qt.Equals, 0)
}

func TestArithmeticCommandZeroExitsOne(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	res, _ := runSrc(t, st, "$((1 - 1))")
	c.Assert(res.Code, qt.Equals, 1)
}

func TestArithmeticCommandAssignmentAppliesShellVar(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	res, _ := runSrc(t, st, "$((X = 5))")
	c.Assert(res.Code, qt.Equals, 0)
	st.ApplyChanges(res.Changes)
	v, ok := st.GetVar("X")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, "5")
}
