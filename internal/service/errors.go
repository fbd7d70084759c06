package service

import "errors"

// Domain error taxonomy. Services wrap these with context; handlers map them
// to HTTP statuses via errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
)
