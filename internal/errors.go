package internal

import "fmt"

// ValidationError reports a rejected field value. The operation that
// returned it has left the store untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a delete of an id that is not in the ledger.
type NotFoundError struct {
	Id int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no expense with id %d", e.Id)
}
