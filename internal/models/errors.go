package models

import "errors"

// Custom errors
var (
	ErrHorseNameRequired = errors.New("horse name is required")
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateKey      = errors.New("duplicate key violation")
	ErrInvalidID         = errors.New("invalid ID format")
	ErrEmptyCard         = errors.New("race card has no entries")
)
