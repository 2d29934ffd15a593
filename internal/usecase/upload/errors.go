package upload

import "errors"

var (
	// ErrUploadInFlight rejects a second pipeline attempt for the same
	// owner while one is still running.
	ErrUploadInFlight = errors.New("an upload is already in progress")

	// ErrUploadNotFound is returned when a record ID resolves to nothing.
	ErrUploadNotFound = errors.New("upload not found")

	// ErrFileTooLarge is returned before any byte leaves the process.
	ErrFileTooLarge = errors.New("file exceeds the maximum upload size")

	// ErrTransfer wraps failures during the byte transfer; no record
	// exists when callers see it.
	ErrTransfer = errors.New("byte transfer failed")

	// ErrCommit wraps failures writing the record after a successful
	// transfer; the transferred object stays in the bucket until the
	// orphan sweep picks it up.
	ErrCommit = errors.New("record commit failed")
)
