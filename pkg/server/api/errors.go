// Package api provides the HTTP and WebSocket endpoints for the price
// checker.
package api

import "errors"

var (
	// ErrInvalidRequestBody indicates that the request body could not be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrDestinationRequired indicates that the destination is missing.
	ErrDestinationRequired = errors.New("destination is required")
	// ErrInvalidDateFormat indicates a malformed check-in or check-out date.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	// ErrCheckoutNotAfterCheckin indicates invalid date ordering.
	ErrCheckoutNotAfterCheckin = errors.New("checkout must be after checkin")
	// ErrCheckinInPast indicates a check-in date that is not in the future.
	ErrCheckinInPast = errors.New("checkin must be in the future")
	// ErrGuestsMustBePositive indicates an invalid guest count.
	ErrGuestsMustBePositive = errors.New("guests must be positive")
	// ErrRoomsMustBePositive indicates an invalid room count.
	ErrRoomsMustBePositive = errors.New("rooms must be positive")
)
