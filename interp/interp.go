// Package interp implements the shell's execution engine: the sequential
// and boolean-list driver, the pipeline engine, the command dispatcher,
// and the compound-command forms (subshell, if, for, arithmetic command)
// spec.md §4.6-4.9 describe. It is grounded on the teacher's interp
// package (runner.go's Run/sub-run methods, the CallExpr/Pipe/PipeAll/
// IfClause/ForClause cases of its statement walker).
package interp

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/shellrun/shellrun/expand"
	"github.com/shellrun/shellrun/pipe"
	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
)

// Interp is the interpreter: stateless beyond the blocking-pool semaphore
// it owns across an invocation, since all mutable shell state lives in
// the *state.State threaded through every call (spec.md §3.2/§5).
type Interp struct {
	blocking *blockingPool
}

// New builds an Interp with the bounded blocking-task pool that limits how
// many external processes run at once.
func New() *Interp {
	return &Interp{blocking: newBlockingPool(defaultBlockingPoolSize)}
}

// Run executes list against st's top-level scope: the entry point for a
// shell invocation or a `source`-like recursive execution, spec.md §4.6's
// "driver" component.
func (in *Interp) Run(ctx context.Context, st *state.State, list *syntax.SequentialList, stdin pipe.Reader, stdout, stderr pipe.Writer) state.ExecuteResult {
	return in.runSequentialList(ctx, st, list, stdin, stdout, stderr)
}

// RunCaptured implements expand.Executor: it runs list against a cloned
// scope (so assignments and cwd changes stay local, per spec.md's
// subshell-isolation invariant) with stdout captured into a buffer, and
// returns that buffer with one trailing newline (bare or CRLF) trimmed and
// interior newlines mapped to spaces — the command substitution semantics
// of spec.md §4.4.
func (in *Interp) RunCaptured(ctx context.Context, st *state.State, list *syntax.SequentialList) (string, error) {
	scope := st.Clone()
	w := &bufferWriter{buf: &bytes.Buffer{}}
	result := in.runSequentialList(ctx, scope, list, pipe.NullReader, w, pipe.Null)
	if err := result.Handles.Wait(); err != nil {
		return "", err
	}
	return trimCommandSubstOutput(w.buf.String()), nil
}

// trimCommandSubstOutput applies spec.md §4.4.5's command-substitution
// trimming: exactly one trailing newline (bare or CRLF) is dropped, and
// any further, interior newlines become spaces.
func trimCommandSubstOutput(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		s = s[:len(s)-2]
	} else {
		s = strings.TrimSuffix(s, "\n")
	}
	return strings.ReplaceAll(s, "\n", " ")
}

// bufferWriter adapts a bytes.Buffer to pipe.Writer for in-process output
// capture (command substitution), avoiding a real OS pipe when the
// consumer is Go code rather than another process.
type bufferWriter struct {
	buf *bytes.Buffer
}

func (w *bufferWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }
func (w *bufferWriter) Close() error                { return nil }
func (w *bufferWriter) Clone() pipe.Writer           { return w }
func (w *bufferWriter) IntoFile() *os.File          { return nil }

var _ expand.Executor = (*Interp)(nil)
