package interp

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/shellrun/shellrun/state"
)

func TestIfClauseTakesThenBranchOnTrueCondition(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	_, out := runSrc(t, st, `if [[ a == a ]]; then echo yes; else echo no; fi`)
	c.Assert(out, qt.Equals, "yes\n")
}

func TestIfClauseTakesElseBranchOnFalseCondition(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	_, out := runSrc(t, st, `if [[ a == b ]]; then echo yes; else echo no; fi`)
	c.Assert(out, qt.Equals, "no\n")
}

func TestIfClauseElifChain(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	_, out := runSrc(t, st, `if [[ a == b ]]; then echo first; elif [[ a == a ]]; then echo second; else echo third; fi`)
	c.Assert(out, qt.Equals, "second\n")
}

func TestIfClauseNumericComparison(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	_, out := runSrc(t, st, `if [[ 3 < 5 ]]; then echo yes; fi`)
	c.Assert(out, qt.Equals, "yes\n")
}

func TestIfClauseUnaryStringEmptyTest(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	_, out := runSrc(t, st, `if [[ -z "" ]]; then echo empty; fi`)
	c.Assert(out, qt.Equals, "empty\n")
}

func TestIfClauseDirectoryTest(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	st := state.New(context.Background(), nil, dir, nil)
	_, out := runSrc(t, st, `if [[ -d "`+dir+`" ]]; then echo isdir; fi`)
	c.Assert(out, qt.Equals, "isdir\n")
}
