package client

import "fmt"

// TimeoutError reports that one function's generation request exceeded the
// configured timeout. Only that task fails; the underlying call is not
// retried and sibling tasks are unaffected.
type TimeoutError struct {
	Function string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("generation timed out for %s", e.Function)
}

// GenerationError reports any non-timeout provider failure for one function.
type GenerationError struct {
	Function string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed for %s: %v", e.Function, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
