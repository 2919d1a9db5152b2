package state

import "context"

// Token is the cancellation token carried by State (spec.md §3.2, §5). It
// wraps a context.Context/CancelFunc pair, the idiomatic Go equivalent of
// original_source's tokio_util::sync::CancellationToken, which the teacher
// itself replaces with plain context.Context threading throughout
// interp/runner.go.
type Token struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewToken creates a root cancellation token derived from parent.
func NewToken(parent context.Context) Token {
	ctx, cancel := context.WithCancel(parent)
	return Token{ctx: ctx, cancel: cancel}
}

// Child derives a new token whose cancellation is tied to this one, for
// subshells and command substitutions (spec.md §5: "a single cancellation
// token per shell invocation, derived per subshell/substitution").
func (t Token) Child() Token {
	return NewToken(t.ctx)
}

// Context returns the underlying context.Context, suitable for passing to
// blocking operations.
func (t Token) Context() context.Context { return t.ctx }

// Cancel fires the token, propagating to every descendant derived via Child.
func (t Token) Cancel() {
	if t.cancel != nil {
		t.cancel()
	}
}

// Fired reports whether the token has already been cancelled.
func (t Token) Fired() bool {
	select {
	case <-t.ctx.Done():
		return true
	default:
		return false
	}
}
