package domain

import "errors"

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrContactNotFound = errors.New("contact not found")
	ErrNoContactEmail  = errors.New("contact has no email address")
)
