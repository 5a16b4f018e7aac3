package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrHotelNotFound = errors.New("hotel not found")

	ErrRoomTypeNotFound = errors.New("room type not found")

	ErrSoldOut = errors.New("no room available for the selected dates")

	ErrInvalidDateRange = errors.New("end date must be after start date")

	ErrStoreUnavailable = errors.New("inventory store unavailable")

	// ErrWriteConflict is returned when optimistic retries of a contended room
	// are exhausted.
	ErrWriteConflict = errors.New("booking write conflict")
)
