package app

import "errors"

var (
	// ErrEmptyMessage rejects blank chat input before it enters the pipeline.
	ErrEmptyMessage = errors.New("message required")
	// ErrEmptyEntry rejects blank journal submissions.
	ErrEmptyEntry = errors.New("journal entry required")
	// ErrInvalidProfileName means the name sanitizes to nothing usable.
	ErrInvalidProfileName = errors.New("invalid profile name")
	// ErrWrongPassphrase means the profile exists but the passphrase does not match.
	ErrWrongPassphrase = errors.New("wrong passphrase")
	// ErrProfileNotFound means no profile exists for the given ID.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrExportUnavailable means no object storage is configured.
	ErrExportUnavailable = errors.New("journal export unavailable")
)
