package errors

import "errors"

var (
	ErrNotFound = errors.New("hotel not found")

	ErrDuplicateID = errors.New("hotel id already exists")

	ErrStoreUnavailable = errors.New("hotel store unavailable")
)
