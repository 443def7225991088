package domain

import "errors"

var (
	// Source errors
	ErrIO     = errors.New("source unreadable or unwritable")
	ErrFormat = errors.New("source content has unexpected shape")

	// Record errors
	ErrMalformedRecord = errors.New("malformed transaction record")
	ErrEmptyAmount     = errors.New("amount is empty")
	ErrInvalidAmount   = errors.New("amount is not a decimal number")

	// Report errors
	ErrReportNotFound = errors.New("report not found")
)
