package snapshot

import "errors"

var (
	// ErrInvalidDate indicates a malformed check-in or check-out date.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	// ErrInvalidStay indicates that checkout is not after checkin.
	ErrInvalidStay = errors.New("checkout must be after checkin")
)
