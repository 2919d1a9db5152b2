package expand

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Value is the result of evaluating one arithmetic part: spec.md §4.5's
// Integer(i64)|Float(f64) sum type. Grounded on the checked-operation
// contract observed at original_source's shell/execute.rs call sites
// (apply_binary_op/apply_unary_op over ArithmeticValue::Integer/Float);
// the Rust type's own field layout isn't in the retrieved sources, so the
// Go representation below is an independent, idiomatic design against that
// contract rather than a port.
type Value struct {
	isFloat bool
	i       int64
	f       float64
}

// IntValue wraps an integer arithmetic result.
func IntValue(i int64) Value { return Value{i: i} }

// FloatValue wraps a floating-point arithmetic result.
func FloatValue(f float64) Value { return Value{isFloat: true, f: f} }

func boolValue(b bool) Value {
	if b {
		return IntValue(1)
	}
	return IntValue(0)
}

// IsFloat reports whether v holds a floating-point result.
func (v Value) IsFloat() bool { return v.isFloat }

// Float returns v as a float64, promoting an integer value.
func (v Value) Float() float64 {
	if v.isFloat {
		return v.f
	}
	return float64(v.i)
}

// IsZero reports whether v is arithmetically zero, used for truthiness in
// conditions and logical operators.
func (v Value) IsZero() bool {
	if v.isFloat {
		return v.f == 0
	}
	return v.i == 0
}

// String renders v the way a shell variable assigned from it would read
// back, e.g. for `$((x = 2.50 + 0))` style compound assignments.
func (v Value) String() string {
	if v.isFloat {
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	return strconv.FormatInt(v.i, 10)
}

// parseValue parses a numeric literal (from ArithNumber.Text or from a
// variable's raw string value) into a Value, picking integer vs. float
// representation from the literal's own shape: a 0x/0X prefix is always
// integer (hex digits a-f would otherwise collide with a float exponent
// marker), and a decimal point or e/E exponent marker means float.
func parseValue(text string) (Value, error) {
	if text == "" {
		return IntValue(0), nil
	}
	unsigned := strings.TrimPrefix(text, "-")
	if len(unsigned) > 1 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		v, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return Value{}, fmt.Errorf("arithmetic: invalid numeric literal %q", text)
		}
		return IntValue(v), nil
	}
	if strings.ContainsAny(unsigned, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("arithmetic: invalid numeric literal %q", text)
		}
		return FloatValue(f), nil
	}
	v, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return Value{}, fmt.Errorf("arithmetic: invalid numeric literal %q", text)
	}
	return IntValue(v), nil
}

func checkedFloatResult(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("arithmetic: non-finite floating point result")
	}
	return FloatValue(f), nil
}

func bigIntResult(r *big.Int, format string, a, b any) (Value, error) {
	if !r.IsInt64() {
		return Value{}, fmt.Errorf("arithmetic: integer overflow in "+format, a, b)
	}
	return IntValue(r.Int64()), nil
}

func checkedAdd(x, y Value) (Value, error) {
	if x.isFloat || y.isFloat {
		return checkedFloatResult(x.Float() + y.Float())
	}
	return bigIntResult(new(big.Int).Add(big.NewInt(x.i), big.NewInt(y.i)), "%d + %d", x.i, y.i)
}

func checkedSub(x, y Value) (Value, error) {
	if x.isFloat || y.isFloat {
		return checkedFloatResult(x.Float() - y.Float())
	}
	return bigIntResult(new(big.Int).Sub(big.NewInt(x.i), big.NewInt(y.i)), "%d - %d", x.i, y.i)
}

func checkedMul(x, y Value) (Value, error) {
	if x.isFloat || y.isFloat {
		return checkedFloatResult(x.Float() * y.Float())
	}
	return bigIntResult(new(big.Int).Mul(big.NewInt(x.i), big.NewInt(y.i)), "%d * %d", x.i, y.i)
}

func checkedDiv(x, y Value) (Value, error) {
	if x.isFloat || y.isFloat {
		if y.Float() == 0 {
			return Value{}, fmt.Errorf("arithmetic: division by zero")
		}
		return checkedFloatResult(x.Float() / y.Float())
	}
	if y.i == 0 {
		return Value{}, fmt.Errorf("arithmetic: division by zero")
	}
	if x.i == math.MinInt64 && y.i == -1 {
		return Value{}, fmt.Errorf("arithmetic: integer overflow in %d / %d", x.i, y.i)
	}
	return IntValue(x.i / y.i), nil
}

func checkedRem(x, y Value) (Value, error) {
	if x.isFloat || y.isFloat {
		if y.Float() == 0 {
			return Value{}, fmt.Errorf("arithmetic: division by zero")
		}
		return checkedFloatResult(math.Mod(x.Float(), y.Float()))
	}
	if y.i == 0 {
		return Value{}, fmt.Errorf("arithmetic: division by zero")
	}
	return IntValue(x.i % y.i), nil
}

// checkedPow implements int ** non-negative-int as a checked integer
// power, promoting to a checked float result whenever either operand is
// already a float or the exponent is negative (spec.md §4.5: `2 ** -1`
// yields the float 0.5 rather than clamping to 0).
func checkedPow(x, y Value) (Value, error) {
	if !x.isFloat && !y.isFloat && y.i >= 0 {
		r := new(big.Int).Exp(big.NewInt(x.i), big.NewInt(y.i), nil)
		return bigIntResult(r, "%d ** %d", x.i, y.i)
	}
	return checkedFloatResult(math.Pow(x.Float(), y.Float()))
}

func shiftAmount(y Value) (uint, error) {
	if y.isFloat {
		return 0, fmt.Errorf("arithmetic: bitwise shift requires an integer operand")
	}
	if y.i < 0 || y.i >= 64 {
		return 0, fmt.Errorf("arithmetic: shift count %d out of range", y.i)
	}
	return uint(y.i), nil
}

func checkedShl(x, y Value) (Value, error) {
	if x.isFloat {
		return Value{}, fmt.Errorf("arithmetic: bitwise shift requires an integer operand")
	}
	n, err := shiftAmount(y)
	if err != nil {
		return Value{}, err
	}
	return bigIntResult(new(big.Int).Lsh(big.NewInt(x.i), n), "%d << %d", x.i, y.i)
}

func checkedShr(x, y Value) (Value, error) {
	if x.isFloat {
		return Value{}, fmt.Errorf("arithmetic: bitwise shift requires an integer operand")
	}
	n, err := shiftAmount(y)
	if err != nil {
		return Value{}, err
	}
	return IntValue(x.i >> n), nil
}

func requireInts(x, y Value, op string) error {
	if x.isFloat || y.isFloat {
		return fmt.Errorf("arithmetic: bitwise %s requires integer operands", op)
	}
	return nil
}

func checkedAnd(x, y Value) (Value, error) {
	if err := requireInts(x, y, "AND"); err != nil {
		return Value{}, err
	}
	return IntValue(x.i & y.i), nil
}

func checkedXor(x, y Value) (Value, error) {
	if err := requireInts(x, y, "XOR"); err != nil {
		return Value{}, err
	}
	return IntValue(x.i ^ y.i), nil
}

func checkedOr(x, y Value) (Value, error) {
	if err := requireInts(x, y, "OR"); err != nil {
		return Value{}, err
	}
	return IntValue(x.i | y.i), nil
}

func checkedNeg(x Value) (Value, error) {
	if x.isFloat {
		return checkedFloatResult(-x.f)
	}
	if x.i == math.MinInt64 {
		return Value{}, fmt.Errorf("arithmetic: integer overflow negating %d", x.i)
	}
	return IntValue(-x.i), nil
}

func checkedBitNot(x Value) (Value, error) {
	if x.isFloat {
		return Value{}, fmt.Errorf("arithmetic: bitwise NOT requires an integer operand")
	}
	return IntValue(^x.i), nil
}

func compareValues(x, y Value) int {
	if x.isFloat || y.isFloat {
		xf, yf := x.Float(), y.Float()
		switch {
		case xf < yf:
			return -1
		case xf > yf:
			return 1
		default:
			return 0
		}
	}
	switch {
	case x.i < y.i:
		return -1
	case x.i > y.i:
		return 1
	default:
		return 0
	}
}
