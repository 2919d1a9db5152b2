package interp

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/shellrun/shellrun/expand"
	"github.com/shellrun/shellrun/pipe"
	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
)

// runIfClause evaluates an IfClause's condition and runs the matching
// branch (spec.md §4.9, supplemented component). Grounded on the
// teacher's IfClause case in interp/runner.go, generalized to spec.md's
// `[[ ... ]]`-style binary/unary test Condition instead of the teacher's
// arbitrary-statement condition.
func (in *Interp) runIfClause(ctx context.Context, st *state.State, c *syntax.IfClause, stdin pipe.Reader, stdout, stderr pipe.Writer) state.ExecuteResult {
	ok, err := in.evalCondition(ctx, st, c.Condition)
	if err != nil {
		fprintfIgnoreErr(stderr, "shellrun: %v\n", err)
		return state.FromExitCode(1)
	}
	traceCompound(st, stderr, "if "+conditionText(c.Condition))
	if ok {
		return in.runSequentialList(ctx, st, c.Then, stdin, stdout, stderr)
	}
	switch e := c.ElsePart.(type) {
	case *syntax.ElifClause:
		return in.runIfClause(ctx, st, e.Clause, stdin, stdout, stderr)
	case *syntax.ElseClause:
		return in.runSequentialList(ctx, st, e.Body, stdin, stdout, stderr)
	default:
		return state.Continue(0, nil, state.NewHandles(nil))
	}
}

func conditionText(c *syntax.Condition) string {
	return "[[ ... ]]"
}

func (in *Interp) evalCondition(ctx context.Context, st *state.State, c *syntax.Condition) (bool, error) {
	if c.Binary != nil {
		return in.evalBinaryTest(ctx, st, c.Binary)
	}
	return in.evalUnaryTest(ctx, st, c.Unary)
}

func (in *Interp) evalBinaryTest(ctx context.Context, st *state.State, b *syntax.BinaryTest) (bool, error) {
	left, _, err := expand.WordOne(ctx, in, st, b.Left)
	if err != nil {
		return false, err
	}
	right, _, err := expand.WordOne(ctx, in, st, b.Right)
	if err != nil {
		return false, err
	}
	switch b.Op {
	case syntax.OpEq:
		return left == right, nil
	case syntax.OpNe:
		return left != right, nil
	case syntax.OpLt, syntax.OpLe, syntax.OpGt, syntax.OpGe:
		li, lerr := strconv.ParseInt(left, 10, 64)
		ri, rerr := strconv.ParseInt(right, 10, 64)
		if lerr != nil || rerr != nil {
			return false, fmt.Errorf("condition: %q/%q is not numeric", left, right)
		}
		switch b.Op {
		case syntax.OpLt:
			return li < ri, nil
		case syntax.OpLe:
			return li <= ri, nil
		case syntax.OpGt:
			return li > ri, nil
		default:
			return li >= ri, nil
		}
	}
	return false, nil
}

func (in *Interp) evalUnaryTest(ctx context.Context, st *state.State, u *syntax.UnaryTest) (bool, error) {
	right, _, err := expand.WordOne(ctx, in, st, u.Right)
	if err != nil {
		return false, err
	}
	if !u.HasOp || u.Op == syntax.TestNone {
		return right != "", nil
	}
	switch u.Op {
	case syntax.TestFileExists:
		_, err := os.Stat(right)
		return err == nil, nil
	case syntax.TestRegularFile:
		fi, err := os.Stat(right)
		return err == nil && fi.Mode().IsRegular(), nil
	case syntax.TestDirectory:
		fi, err := os.Stat(right)
		return err == nil && fi.IsDir(), nil
	case syntax.TestSymlink:
		fi, err := os.Lstat(right)
		return err == nil && fi.Mode()&os.ModeSymlink != 0, nil
	case syntax.TestReadable:
		f, err := os.Open(right)
		if err == nil {
			f.Close()
		}
		return err == nil, nil
	case syntax.TestWritable:
		return unixAccessWritable(right), nil
	case syntax.TestExecutable:
		fi, err := os.Stat(right)
		return err == nil && fi.Mode()&0111 != 0, nil
	case syntax.TestNonEmptyFile:
		fi, err := os.Stat(right)
		return err == nil && fi.Size() > 0, nil
	case syntax.TestStringEmpty:
		return right == "", nil
	case syntax.TestStringNonEmpty:
		return right != "", nil
	case syntax.TestVarSet:
		_, ok := st.GetVar(right)
		return ok, nil
	}
	return false, nil
}

func unixAccessWritable(path string) bool {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
