package core

import "errors"

// ErrNotFound is returned when a user id is not in the local list
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned for rejected form values
var ErrInvalidInput = errors.New("invalid input")

var ErrExportNotConfigured = errors.New("spreadsheet export is not configured")

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
