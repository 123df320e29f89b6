package reconcile

import "errors"

var (
	// ErrUpdateFailed wraps any store rejection of a status update.
	ErrUpdateFailed = errors.New("failed to update complaint")
	// ErrInsertFailed wraps any store rejection of the sample insert.
	ErrInsertFailed = errors.New("failed to add sample complaint")

	ErrNotFound      = errors.New("complaint not found")
	ErrInvalidStatus = errors.New("invalid complaint status")
	ErrDisposed      = errors.New("controller disposed")
)
