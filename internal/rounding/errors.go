package rounding

import "fmt"

// InvalidNumberFormatError indicates a malformed numeric string reached
// the analyzer. This is a caller contract violation: the request fails
// but the session must survive it.
type InvalidNumberFormatError struct {
	Input  string
	Reason string
}

func (e *InvalidNumberFormatError) Error() string {
	return fmt.Sprintf("invalid number format %q: %s", e.Input, e.Reason)
}
