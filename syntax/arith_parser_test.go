package syntax

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func parseArith(t *testing.T, src string) []ArithmeticPart {
	t.Helper()
	p := &arithParser{lexer: lexer{src: []byte(src)}}
	parts, err := p.parseCommaList()
	qt.New(t).Assert(err, qt.IsNil)
	return parts
}

func TestArithPrecedence(t *testing.T) {
	c := qt.New(t)
	parts := parseArith(t, "2 + 3 * 4")
	c.Assert(parts, qt.HasLen, 1)
	add, ok := parts[0].(*BinaryArithmeticExpr)
	c.Assert(ok, qt.IsTrue)
	c.Assert(add.Op, qt.Equals, OpAdd)
	mul, ok := add.Y.(*BinaryArithmeticExpr)
	c.Assert(ok, qt.IsTrue)
	c.Assert(mul.Op, qt.Equals, OpMul)
}

func TestArithPowerRightAssoc(t *testing.T) {
	c := qt.New(t)
	parts := parseArith(t, "2**3**2")
	pow, ok := parts[0].(*BinaryArithmeticExpr)
	c.Assert(ok, qt.IsTrue)
	c.Assert(pow.Op, qt.Equals, OpPow)
	_, ok = pow.Y.(*BinaryArithmeticExpr)
	c.Assert(ok, qt.IsTrue)
}

func TestArithAssignmentRightAssoc(t *testing.T) {
	c := qt.New(t)
	parts := parseArith(t, "a = b = 1")
	assign, ok := parts[0].(*VariableAssignment)
	c.Assert(ok, qt.IsTrue)
	c.Assert(assign.Name, qt.Equals, "a")
	_, ok = assign.Value.(*VariableAssignment)
	c.Assert(ok, qt.IsTrue)
}

func TestArithTernary(t *testing.T) {
	c := qt.New(t)
	parts := parseArith(t, "1 ? 2 : 3")
	tern, ok := parts[0].(*TripleConditionalExpr)
	c.Assert(ok, qt.IsTrue)
	c.Assert(tern.True.(*ArithNumber).Text, qt.Equals, "2")
}
