package domain

import (
	"errors"
	"fmt"
)

// ErrOrderNotFound is returned by book operations that target an order id no
// longer (or never) resting on the book. Absence is routine: cancelling or
// amending an already-consumed order reports it, it is not a defect.
var ErrOrderNotFound = errors.New("order not found")

// ValidationError rejects caller input that violates an order precondition.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order %s: %s", e.Field, e.Reason)
}
