package interp

import (
	"fmt"

	"github.com/shellrun/shellrun/pipe"
)

// fprintfIgnoreErr writes a formatted diagnostic to w, discarding any
// write error: a closed stderr (the read end of a `2>&1 | head` pipeline
// hung up) must never crash the interpreter, matching the teacher's
// best-effort stderr writes throughout interp/runner.go.
func fprintfIgnoreErr(w pipe.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
