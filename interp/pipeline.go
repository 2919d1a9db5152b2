package interp

import (
	"context"

	"github.com/shellrun/shellrun/pipe"
	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
	"golang.org/x/sync/errgroup"
)

// pipelineStage is one command of a flattened Pipeline plus how its
// output connects to the next stage.
type pipelineStage struct {
	cmd    *syntax.Command
	toNext syntax.PipeOp
}

func flattenPipeline(inner syntax.PipelineInner) []pipelineStage {
	var stages []pipelineStage
	for {
		switch v := inner.(type) {
		case *syntax.Command:
			stages = append(stages, pipelineStage{cmd: v})
			return stages
		case *syntax.PipeSequence:
			stages = append(stages, pipelineStage{cmd: v.Current, toNext: v.Op})
			inner = v.Next
		default:
			return stages
		}
	}
}

// runPipeline runs a Pipeline (spec.md §4.7): a single command runs
// directly against the caller's streams; a multi-stage pipeline connects
// each adjacent pair with an OS pipe and runs every stage concurrently as
// a goroutine, joining them with an errgroup before reporting the last
// stage's exit status (optionally complemented by a leading '!').
// Grounded on the teacher's interp Pipe/PipeAll case in runner.go.
func (in *Interp) runPipeline(ctx context.Context, st *state.State, p *syntax.Pipeline, stdin pipe.Reader, stdout, stderr pipe.Writer) state.ExecuteResult {
	stages := flattenPipeline(p.Inner)
	if len(stages) == 0 {
		return state.FromExitCode(2)
	}
	if len(stages) == 1 {
		res := in.runCommand(ctx, st, stages[0].cmd, stdin, stdout, stderr)
		return finishPipelineResult(res, p.Negated)
	}

	g, gctx := errgroup.WithContext(ctx)
	codes := make([]int, len(stages))
	curStdin := stdin

	for i, stage := range stages {
		i, stage := i, stage
		isLast := i == len(stages)-1

		var stageOut pipe.Writer
		var nextIn pipe.Reader
		if isLast {
			stageOut = stdout
		} else {
			r, w, err := pipe.New()
			if err != nil {
				return state.FromExitCode(1)
			}
			stageOut = w
			nextIn = r
		}

		stageStderr := stderr
		if stage.toNext == syntax.StdoutStderr && !isLast {
			stageStderr = stageOut
		}

		thisStdin := curStdin
		g.Go(func() error {
			scope := st.Clone()
			res := in.runCommand(gctx, scope, stage.cmd, thisStdin, stageOut, stageStderr)
			codes[i] = res.Code
			if !isLast {
				stageOut.Close()
			}
			if thisStdin != stdin {
				thisStdin.Close()
			}
			return res.Handles.Wait()
		})
		curStdin = nextIn
	}

	g.Wait()
	last := codes[len(codes)-1]
	return finishPipelineResult(state.Continue(last, nil, state.NewHandles(nil)), p.Negated)
}

func finishPipelineResult(res state.ExecuteResult, negated bool) state.ExecuteResult {
	if res.Exiting {
		return res
	}
	code := res.Code
	if negated {
		if code == 0 {
			code = 1
		} else {
			code = 0
		}
	}
	return state.Continue(code, res.Changes, res.Handles)
}
