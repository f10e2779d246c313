package domain

import "errors"

// Error classes surfaced at the HTTP boundary. Callers wrap them with
// fmt.Errorf("%w: ...") so the message stays specific while errors.Is still
// picks the class.
var (
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a duplicate slug or directory.
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates the target row is absent from the structured store.
	ErrNotFound = errors.New("not found")

	// ErrStorage indicates a filesystem failure other than a missing file.
	ErrStorage = errors.New("storage failure")
)
