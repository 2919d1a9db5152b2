package interp

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestPipelineTwoStage(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	_, out := runSrc(t, st, "echo hello | cat")
	c.Assert(out, qt.Equals, "hello\n")
}

func TestPipelineThreeStage(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	_, out := runSrc(t, st, "echo hello | cat | cat")
	c.Assert(out, qt.Equals, "hello\n")
}

func TestPipelineNegationFlipsExitCode(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	res, _ := runSrc(t, st, "! false")
	c.Assert(res.Code, qt.Equals, 0)
}

func TestPipelineReportsLastStageExitCode(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	res, _ := runSrc(t, st, "true | false")
	c.Assert(res.Code, qt.Equals, 1)
}

func TestPipelineStderrMergeWithStdoutStderrOp(t *testing.T) {
	c := qt.New(t)
	st := newTestState(t, nil)
	_, out := runSrc(t, st, "cat missing-file-xyz |& cat")
	c.Assert(out, qt.Not(qt.Equals), "")
}
