package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")

	// ErrAuthExpired marks a token whose backing session has lapsed. It is
	// always handled by forcing a logout/redirect, never by crashing.
	ErrAuthExpired     = errors.New("session expired")
	ErrSessionNotFound = errors.New("session not found")

	// ErrStorageUnavailable reports a durable-store failure. Sessions keep
	// working in memory; they simply will not survive a restart.
	ErrStorageUnavailable = errors.New("session storage unavailable")

	ErrStudentNotFound  = errors.New("student not found")
	ErrChallanNotFound  = errors.New("challan not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMotherNameMismatch is the hall-ticket lookup failure. The verbatim
	// user-facing message lives in the HTTP error handler.
	ErrMotherNameMismatch = errors.New("mother name does not match")
)
