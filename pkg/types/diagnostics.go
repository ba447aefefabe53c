package types

import "fmt"

// Diagnostic is a non-fatal problem reported while processing a .reg
// stream. The reference tool recovers from almost everything at line or
// value granularity, so a parse can succeed while still producing
// diagnostics.
type Diagnostic struct {
	// Line is the 1-based logical line number the problem was noticed on,
	// or 0 if no line context applies.
	Line int

	// Message describes the problem.
	Message string
}

// String implements the Stringer interface for Diagnostic
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	}
	return d.Message
}
