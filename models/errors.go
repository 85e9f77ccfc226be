package models

import "errors"

// Domain error taxonomy. Controllers map these onto HTTP statuses and
// business codes; the service layer returns them unwrapped so callers can
// test with errors.Is.
var (
	// ErrConflict signals a business-rule violation such as starting a second
	// pack while one is still in progress.
	ErrConflict = errors.New("conflict")

	// ErrNotFound signals that a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfiguration signals a template whose pacing cannot be
	// satisfied, e.g. tasks_per_day larger than the task pool.
	ErrInvalidConfiguration = errors.New("invalid pack configuration")

	// ErrTaskAlreadyAnswered signals a duplicate submission for a task that
	// already has an entry in the current day record.
	ErrTaskAlreadyAnswered = errors.New("task already answered")
)
