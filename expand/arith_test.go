package expand

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
)

func evalArithSrc(t *testing.T, st *state.State, src string) Value {
	t.Helper()
	list, err := syntax.Parse("t", []byte(src))
	qt.New(t).Assert(err, qt.IsNil)
	cmd := list.Items[0].Sequence.(*syntax.Pipeline).Inner.(*syntax.Command)
	ae := cmd.Inner.(*syntax.ArithmeticExpression)
	val, _, err := EvalArithmetic(st, ae.X)
	qt.New(t).Assert(err, qt.IsNil)
	return val
}

func TestArithmeticBasicOps(t *testing.T) {
	c := qt.New(t)
	st := state.New(context.Background(), nil, t.TempDir(), nil)
	c.Assert(evalArithSrc(t, st, "$((2+3*4))"), qt.Equals, IntValue(14))
	c.Assert(evalArithSrc(t, st, "$(((2+3)*4))"), qt.Equals, IntValue(20))
}

func TestArithmeticLogicalShortCircuitStandardC(t *testing.T) {
	c := qt.New(t)
	st := state.New(context.Background(), nil, t.TempDir(), nil)
	c.Assert(evalArithSrc(t, st, "$((1 && 0))"), qt.Equals, IntValue(0))
	c.Assert(evalArithSrc(t, st, "$((0 || 1))"), qt.Equals, IntValue(1))
	c.Assert(evalArithSrc(t, st, "$((2 && 3))"), qt.Equals, IntValue(1))
}

func TestArithmeticPostIncrementEmitsChange(t *testing.T) {
	c := qt.New(t)
	st := state.New(context.Background(), map[string]string{"X": "1"}, t.TempDir(), nil)
	list, err := syntax.Parse("t", []byte("$((X++))"))
	c.Assert(err, qt.IsNil)
	ae := list.Items[0].Sequence.(*syntax.Pipeline).Inner.(*syntax.Command).Inner.(*syntax.ArithmeticExpression)
	val, changes, err := EvalArithmetic(st, ae.X)
	c.Assert(err, qt.IsNil)
	c.Assert(val, qt.Equals, IntValue(1))
	c.Assert(changes, qt.HasLen, 1)
	v, _ := st.GetVar("X")
	c.Assert(v, qt.Equals, "2")
}

func TestArithmeticFloatLiteralAndMixedPromotion(t *testing.T) {
	c := qt.New(t)
	st := state.New(context.Background(), nil, t.TempDir(), nil)
	c.Assert(evalArithSrc(t, st, "$((3.5))"), qt.Equals, FloatValue(3.5))
	c.Assert(evalArithSrc(t, st, "$((1 + 0.5))"), qt.Equals, FloatValue(1.5))
}

func TestArithmeticNegativePowerPromotesToFloat(t *testing.T) {
	c := qt.New(t)
	st := state.New(context.Background(), nil, t.TempDir(), nil)
	c.Assert(evalArithSrc(t, st, "$((2 ** -1))"), qt.Equals, FloatValue(0.5))
}

func TestArithmeticOverflowIsAnError(t *testing.T) {
	c := qt.New(t)
	st := state.New(context.Background(), nil, t.TempDir(), nil)
	list, err := syntax.Parse("t", []byte("$((9223372036854775807 + 1))"))
	c.Assert(err, qt.IsNil)
	ae := list.Items[0].Sequence.(*syntax.Pipeline).Inner.(*syntax.Command).Inner.(*syntax.ArithmeticExpression)
	_, _, err = EvalArithmetic(st, ae.X)
	c.Assert(err, qt.ErrorMatches, ".*overflow.*")
}

func TestArithmeticNegativeShiftIsAnError(t *testing.T) {
	c := qt.New(t)
	st := state.New(context.Background(), nil, t.TempDir(), nil)
	list, err := syntax.Parse("t", []byte("$((1 << -1))"))
	c.Assert(err, qt.IsNil)
	ae := list.Items[0].Sequence.(*syntax.Pipeline).Inner.(*syntax.Command).Inner.(*syntax.ArithmeticExpression)
	_, _, err = EvalArithmetic(st, ae.X)
	c.Assert(err, qt.ErrorMatches, ".*shift.*")
}
