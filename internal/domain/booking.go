package domain

import (
	"strings"
	"time"
)

// BookingStatus is stored lowercase. The upstream data mixes casings
// ("Confirmed"/"confirmed"), so parsing and occupancy matching are both
// case-insensitive; writes always persist the canonical form.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus normalizes s to a canonical status.
// Unknown values return ErrInvalidStatus.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCancelled:
		return StatusCancelled, nil
	}
	return "", ErrInvalidStatus
}

// Active reports whether the status consumes an inventory unit.
func (s BookingStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

type Booking struct {
	ID             string        `json:"id"`
	UserID         int64         `json:"user_id"`
	HotelID        int64         `json:"hotel_id"`
	HotelName      string        `json:"hotel_name"`
	RoomType       string        `json:"room_type"`
	CheckIn        time.Time     `json:"check_in"`
	CheckOut       time.Time     `json:"check_out"`
	TotalNights    int           `json:"total_nights"`
	TotalPrice     float64       `json:"total_price"`
	Status         BookingStatus `json:"status"`
	BookingDate    time.Time     `json:"booking_date"`
	GuestName      string        `json:"guest_name"`
	GuestPhone     string        `json:"guest_phone"`
	SpecialRequest string        `json:"special_request"`
}

// BookingDraft is the customer-facing creation payload. Dates stay strings
// until validation; admission is keyed on (HotelID, RoomType).
type BookingDraft struct {
	UserID         int64   `json:"user_id" validate:"required,gt=0"`
	HotelID        int64   `json:"hotel_id" validate:"required,gt=0"`
	HotelName      string  `json:"hotel_name"`
	RoomType       string  `json:"room_type" validate:"required"`
	CheckIn        string  `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut       string  `json:"check_out" validate:"required,datetime=2006-01-02"`
	TotalNights    int     `json:"total_nights" validate:"gte=0"`
	TotalPrice     float64 `json:"total_price" validate:"gte=0"`
	GuestName      string  `json:"guest_name" validate:"required"`
	GuestPhone     string  `json:"guest_phone"`
	SpecialRequest string  `json:"special_request"`
}
