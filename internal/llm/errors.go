package llm

import "fmt"

// CredentialMissingError indicates the selected credential slot is unset.
// It is fatal to the run.
type CredentialMissingError struct {
	Slot int
}

func (e *CredentialMissingError) Error() string {
	return fmt.Sprintf("API key is missing (slot %d)", e.Slot)
}
