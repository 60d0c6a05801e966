package db

import "fmt"

// PersistenceError indicates the store rejected a write. It is fatal to
// the run; already-streamed progress events are not compensated.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed (%s): %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
