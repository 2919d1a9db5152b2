package expand

import (
	"fmt"

	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
)

// EvalArithmetic evaluates a $((...)) expression against st, returning the
// value of its last comma-separated part (spec.md §4.5) and any variable
// assignments it performed along the way. Grounded on the teacher's
// expand/arith.go, with two Open Question resolutions recorded in
// SPEC_FULL.md §9: arithmetic && and || use standard C short-circuit
// semantics (1 iff both/either operand is non-zero), and post-increment
// and post-decrement always emit a SetShellVar change, matching the
// teacher's unconditional env-set call regardless of Post. Every operator
// below is checked (spec.md §4.5 property #7): integer overflow, negative
// or out-of-range shifts, and non-finite float results are all reported as
// errors instead of wrapping silently.
func EvalArithmetic(st *state.State, a *syntax.Arithmetic) (Value, []state.EnvChange, error) {
	var changes []state.EnvChange
	var last Value
	for _, part := range a.Parts {
		v, cs, err := evalPart(st, part)
		if err != nil {
			return Value{}, nil, err
		}
		changes = append(changes, cs...)
		last = v
	}
	return last, changes, nil
}

func evalPart(st *state.State, part syntax.ArithmeticPart) (Value, []state.EnvChange, error) {
	switch p := part.(type) {
	case *syntax.ArithNumber:
		v, err := parseValue(p.Text)
		return v, nil, err
	case *syntax.ArithVariable:
		raw, _ := st.GetVar(p.Name)
		if raw == "" {
			return IntValue(0), nil, nil
		}
		v, err := parseValue(raw)
		if err != nil {
			return Value{}, nil, fmt.Errorf("arithmetic: variable %q holds non-numeric value %q", p.Name, raw)
		}
		return v, nil, nil
	case *syntax.ParenthesesExpr:
		return evalPart(st, p.X)
	case *syntax.VariableAssignment:
		return evalAssignment(st, p)
	case *syntax.UnaryArithmeticExpr:
		x, changes, err := evalPart(st, p.X)
		if err != nil {
			return Value{}, nil, err
		}
		switch p.Op {
		case syntax.UnaryPlus:
			return x, changes, nil
		case syntax.UnaryMinus:
			v, err := checkedNeg(x)
			return v, changes, err
		case syntax.UnaryNot:
			return boolValue(x.IsZero()), changes, nil
		case syntax.UnaryBitNeg:
			v, err := checkedBitNot(x)
			return v, changes, err
		}
		return x, changes, nil
	case *syntax.PostArithmeticExpr:
		return evalPost(st, p)
	case *syntax.BinaryArithmeticExpr:
		return evalBinaryArithmetic(st, p)
	case *syntax.BinaryConditionalExpr:
		return evalBinaryConditional(st, p)
	case *syntax.TripleConditionalExpr:
		cond, changes, err := evalPart(st, p.Cond)
		if err != nil {
			return Value{}, nil, err
		}
		if !cond.IsZero() {
			v, cs, err := evalPart(st, p.True)
			return v, append(changes, cs...), err
		}
		v, cs, err := evalPart(st, p.False)
		return v, append(changes, cs...), err
	default:
		return Value{}, nil, fmt.Errorf("arithmetic: unsupported expression %T", part)
	}
}

// arithVarName finds the lvalue name of a PostArithmeticExpr/assignment
// target, unwrapping parentheses.
func arithVarName(part syntax.ArithmeticPart) (string, bool) {
	switch p := part.(type) {
	case *syntax.ArithVariable:
		return p.Name, true
	case *syntax.ParenthesesExpr:
		return arithVarName(p.X)
	default:
		return "", false
	}
}

func evalPost(st *state.State, p *syntax.PostArithmeticExpr) (Value, []state.EnvChange, error) {
	old, changes, err := evalPart(st, p.X)
	if err != nil {
		return Value{}, nil, err
	}
	name, ok := arithVarName(p.X)
	if !ok {
		return Value{}, nil, fmt.Errorf("arithmetic: increment/decrement target is not a variable")
	}
	var next Value
	if p.Op == syntax.PostInc {
		next, err = checkedAdd(old, IntValue(1))
	} else {
		next, err = checkedSub(old, IntValue(1))
	}
	if err != nil {
		return Value{}, nil, err
	}
	change := state.SetShellVar{Name: name, Value: next.String()}
	st.ApplyChange(change)
	changes = append(changes, change)
	return old, changes, nil
}

func evalAssignment(st *state.State, p *syntax.VariableAssignment) (Value, []state.EnvChange, error) {
	rhs, changes, err := evalPart(st, p.Value)
	if err != nil {
		return Value{}, nil, err
	}
	var next Value
	switch p.Op {
	case syntax.Assign:
		next = rhs
	default:
		cur, _ := st.GetVar(p.Name)
		curVal, err := parseValue(cur)
		if err != nil {
			return Value{}, nil, fmt.Errorf("arithmetic: variable %q holds non-numeric value %q", p.Name, cur)
		}
		switch p.Op {
		case syntax.AddAssign:
			next, err = checkedAdd(curVal, rhs)
		case syntax.SubAssign:
			next, err = checkedSub(curVal, rhs)
		case syntax.MulAssign:
			next, err = checkedMul(curVal, rhs)
		case syntax.QuoAssign:
			next, err = checkedDiv(curVal, rhs)
		case syntax.RemAssign:
			next, err = checkedRem(curVal, rhs)
		case syntax.ShlAssign:
			next, err = checkedShl(curVal, rhs)
		case syntax.ShrAssign:
			next, err = checkedShr(curVal, rhs)
		case syntax.AndAssign:
			next, err = checkedAnd(curVal, rhs)
		case syntax.XorAssign:
			next, err = checkedXor(curVal, rhs)
		case syntax.OrAssign:
			next, err = checkedOr(curVal, rhs)
		}
		if err != nil {
			return Value{}, nil, err
		}
	}
	change := state.SetShellVar{Name: p.Name, Value: next.String()}
	st.ApplyChange(change)
	return next, append(changes, change), nil
}

func evalBinaryArithmetic(st *state.State, p *syntax.BinaryArithmeticExpr) (Value, []state.EnvChange, error) {
	// Logical && and || short-circuit: the right operand is only evaluated
	// (and its assignments only applied) when necessary, standard C
	// semantics per the Open Question decision in SPEC_FULL.md §9.
	if p.Op == syntax.OpLogAnd || p.Op == syntax.OpLogOr {
		x, changes, err := evalPart(st, p.X)
		if err != nil {
			return Value{}, nil, err
		}
		if p.Op == syntax.OpLogAnd && x.IsZero() {
			return IntValue(0), changes, nil
		}
		if p.Op == syntax.OpLogOr && !x.IsZero() {
			return IntValue(1), changes, nil
		}
		y, ys, err := evalPart(st, p.Y)
		if err != nil {
			return Value{}, nil, err
		}
		changes = append(changes, ys...)
		return boolValue(!y.IsZero()), changes, nil
	}

	x, changes, err := evalPart(st, p.X)
	if err != nil {
		return Value{}, nil, err
	}
	y, ys, err := evalPart(st, p.Y)
	if err != nil {
		return Value{}, nil, err
	}
	changes = append(changes, ys...)
	var v Value
	switch p.Op {
	case syntax.OpAdd:
		v, err = checkedAdd(x, y)
	case syntax.OpSub:
		v, err = checkedSub(x, y)
	case syntax.OpMul:
		v, err = checkedMul(x, y)
	case syntax.OpDiv:
		v, err = checkedDiv(x, y)
	case syntax.OpMod:
		v, err = checkedRem(x, y)
	case syntax.OpPow:
		v, err = checkedPow(x, y)
	case syntax.OpShl:
		v, err = checkedShl(x, y)
	case syntax.OpShr:
		v, err = checkedShr(x, y)
	case syntax.OpBitAnd:
		v, err = checkedAnd(x, y)
	case syntax.OpBitXor:
		v, err = checkedXor(x, y)
	case syntax.OpBitOr:
		v, err = checkedOr(x, y)
	default:
		return Value{}, nil, fmt.Errorf("arithmetic: unsupported operator")
	}
	if err != nil {
		return Value{}, nil, err
	}
	return v, changes, nil
}

func evalBinaryConditional(st *state.State, p *syntax.BinaryConditionalExpr) (Value, []state.EnvChange, error) {
	x, changes, err := evalPart(st, p.X)
	if err != nil {
		return Value{}, nil, err
	}
	y, ys, err := evalPart(st, p.Y)
	if err != nil {
		return Value{}, nil, err
	}
	changes = append(changes, ys...)
	cmp := compareValues(x, y)
	switch p.Op {
	case syntax.CondEq:
		return boolValue(cmp == 0), changes, nil
	case syntax.CondNe:
		return boolValue(cmp != 0), changes, nil
	case syntax.CondLt:
		return boolValue(cmp < 0), changes, nil
	case syntax.CondLe:
		return boolValue(cmp <= 0), changes, nil
	case syntax.CondGt:
		return boolValue(cmp > 0), changes, nil
	case syntax.CondGe:
		return boolValue(cmp >= 0), changes, nil
	default:
		return Value{}, nil, fmt.Errorf("arithmetic: unsupported comparison")
	}
}
