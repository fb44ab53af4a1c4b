package domain

// Outcome classifies what an execution request did to the book.
type Outcome string

const (
	// OutcomeFull means the requested quantity was matched entirely.
	OutcomeFull Outcome = "FULL"
	// OutcomePartial means some quantity matched and the remainder was
	// entered as a new resting order.
	OutcomePartial Outcome = "PARTIAL"
	// OutcomeNone means nothing matched and the whole quantity was entered
	// as a new resting order.
	OutcomeNone Outcome = "NONE"
	// OutcomeError means the request was rejected before touching the book.
	OutcomeError Outcome = "ERROR"
)
