package interp

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestForLoopIteratesWordlist(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	_, out := runSrc(t, st, "for i in a b c; do echo $i; done")
	c.Assert(out, qt.Equals, "a\nb\nc\n")
}

func TestForLoopBindingSurvivesAfterLastIteration(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	runSrc(t, st, "for i in x; do true; done")
	v, ok := st.GetVar("i")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, "x")
}

func TestForLoopWordlistExpandsVariable(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, map[string]string{"LIST": "one two"})
	_, out := runSrc(t, st, "for i in $LIST; do echo $i; done")
	c.Assert(out, qt.Equals, "one\ntwo\n")
}
