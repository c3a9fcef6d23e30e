package service

import "errors"

// Domain errors shared across services. Handlers translate these to the
// response error taxonomy.
var (
	ErrForbidden   = errors.New("action not permitted for this role")
	ErrNotFound    = errors.New("record not found")
	ErrOutOfScope  = errors.New("record outside the actor's visibility")
	ErrCrossSchool = errors.New("reference crosses the school boundary")

	ErrSectionMismatch    = errors.New("section does not belong to the class")
	ErrSectionFull        = errors.New("section is at maximum capacity")
	ErrMarksOutOfRange    = errors.New("marks exceed the exam maximum")
	ErrSubmissionGraded   = errors.New("submission is already graded")
	ErrPaymentNotPositive = errors.New("payment amount must be positive")
	ErrRecipientsInvalid  = errors.New("one or more recipients are not reachable")
)
