package services

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP
// statuses with errors.Is; services wrap them with fmt.Errorf("...: %w")
// to keep the diagnostic detail on the inside.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
