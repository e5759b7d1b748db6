package services

import "errors"

var (
	// ErrInvalidConfig marks planning requests whose configuration cannot be used.
	ErrInvalidConfig = errors.New("invalid planning configuration")

	// ErrColumnOutOfRange marks a configured column index beyond the table width.
	ErrColumnOutOfRange = errors.New("column index out of range")
)
