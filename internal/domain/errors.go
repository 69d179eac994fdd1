package domain

import "errors"

// Sentinel errors shared across services. Repositories and services return
// these at the point of detection; the HTTP boundary maps them to status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)
