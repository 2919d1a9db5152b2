package state

import "golang.org/x/sync/errgroup"

// CancellationExitCode is returned when execution is aborted via the
// cancellation token (SIGINT (2) + 128), matching original_source's
// CANCELLATION_EXIT_CODE.
const CancellationExitCode = 130

// Handles collects the background tasks spawned for `&`-suffixed sequence
// items. Callers merge handles upward until the root awaits them, per
// spec.md §3.4 and §5. It is a thin, named wrapper around
// *errgroup.Group (a real teacher dependency used for the same bgShells
// bookkeeping purpose) so ExecuteResult can carry it by value.
type Handles struct {
	g *errgroup.Group
}

// NewHandles returns an empty handle set bound to an errgroup.Group.
func NewHandles(g *errgroup.Group) Handles { return Handles{g: g} }

// Go schedules fn on the underlying errgroup, if one is set; otherwise it
// runs fn synchronously (used when background execution isn't available,
// e.g. inside a already-collecting subshell clone).
func (h Handles) Go(fn func() error) {
	if h.g != nil {
		h.g.Go(fn)
		return
	}
	_ = fn()
}

// Wait joins every handle registered through Go, returning the first
// error observed, if any.
func (h Handles) Wait() error {
	if h.g == nil {
		return nil
	}
	return h.g.Wait()
}

// ExecuteResult is the outcome of evaluating a part of the AST: either a
// terminal Exit (propagates up through the enclosing non-subshell scope)
// or a normal Continue. See spec.md §3.4.
type ExecuteResult struct {
	// Exiting is true when this result should terminate the enclosing
	// non-subshell scope (the Exit variant); false for Continue.
	Exiting bool
	Code    int
	Changes []EnvChange
	Handles Handles
}

// Exit builds the Exit variant of ExecuteResult.
func Exit(code int, handles Handles) ExecuteResult {
	return ExecuteResult{Exiting: true, Code: code, Handles: handles}
}

// Continue builds the Continue variant of ExecuteResult.
func Continue(code int, changes []EnvChange, handles Handles) ExecuteResult {
	return ExecuteResult{Code: code, Changes: changes, Handles: handles}
}

// ForCancellation is the result produced when the cancellation token has
// fired.
func ForCancellation(handles Handles) ExecuteResult {
	return Exit(CancellationExitCode, handles)
}

// FromExitCode builds a bare Continue result with no changes or handles,
// used by leaf evaluations that only need to report a code.
func FromExitCode(code int) ExecuteResult {
	return ExecuteResult{Code: code}
}
