package generate

import "fmt"

// ExhaustedError indicates no attempt within the budget yielded
// parseable structured data. It is fatal to the run.
type ExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("structured generation exhausted after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *ExhaustedError) Unwrap() error {
	return e.LastErr
}

// ParseError indicates one attempt's normalized output failed to parse
// as JSON.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
