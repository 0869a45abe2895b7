package common

import "errors"

// Domain errors shared across services. Handlers map these to HTTP statuses
// with errors.Is; services wrap them with fmt.Errorf("...: %w", err) so the
// chain keeps both the sentinel and the context.
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrAlreadyAssigned     = errors.New("resource already assigned")
	ErrConstraintViolation = errors.New("constraint violation")
)
