package domain

import "time"

type Review struct {
	ID         int64     `json:"id"`
	HotelID    int64     `json:"hotel_id"`
	UserID     int64     `json:"user_id"`
	BookingID  *string   `json:"booking_id,omitempty"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar"`
	Rating     float64   `json:"rating"`
	Comment    string    `json:"comment"`
	Date       time.Time `json:"date"`
}

type ReviewDraft struct {
	HotelID    int64   `json:"hotel_id" validate:"required,gt=0"`
	UserID     int64   `json:"user_id" validate:"required,gt=0"`
	BookingID  *string `json:"booking_id,omitempty"`
	UserName   string  `json:"user_name"`
	UserAvatar string  `json:"user_avatar"`
	Rating     float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string  `json:"comment" validate:"required"`
}
