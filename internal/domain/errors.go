package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repositories and services. The HTTP adapter
// maps them to status codes with the Is* helpers below; raw storage errors
// are logged but never surfaced to clients.
var (
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrFavoriteNotFound = errors.New("favorite not found")

	ErrInventoryExhausted = errors.New("no rooms available for this room type")
	ErrDuplicateFavorite  = errors.New("hotel is already in favorites")
	ErrDuplicateReview    = errors.New("a review was already submitted for this booking")

	ErrNotOwner      = errors.New("user does not own this hotel")
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrReviewNotEligible: review tied to a booking that is not completed,
	// or the user has no completed booking left to review.
	ErrReviewNotEligible = errors.New("booking is not completed")
)

// ValidationError reports a user-correctable input problem verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrReviewNotEligible)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrHotelNotFound) ||
		errors.Is(err, ErrRoomTypeNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrFavoriteNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrInventoryExhausted) ||
		errors.Is(err, ErrDuplicateFavorite) ||
		errors.Is(err, ErrDuplicateReview)
}

func IsUnauthorized(err error) bool { return errors.Is(err, ErrNotOwner) }
