package domain

import "errors"

var (
	// ErrNotFound is returned when an entry does not exist.
	ErrNotFound = errors.New("entry not found")

	// ErrDuplicateSoul is returned when the subject name is already recorded.
	ErrDuplicateSoul = errors.New("this name has already been recorded")
)
