package domain

import "time"

type Hotel struct {
	ID             int64    `json:"id"`
	OwnerID        int64    `json:"owner_id"`
	Name           string   `json:"name"`
	Description    *string  `json:"description"`
	Address        *string  `json:"address"`
	City           *string  `json:"city"`
	Rating         *float64 `json:"rating"`
	PricePerNight  *float64 `json:"price_per_night"`
	RoomsAvailable int      `json:"rooms_available"`
}

type RoomType struct {
	HotelID    int64   `json:"-"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	Capacity   int     `json:"capacity"`
	TotalRooms int     `json:"total_rooms"`
}

// RoomInventory is a RoomType plus its live availability:
// total_rooms minus active bookings, floored at zero for reporting.
type RoomInventory struct {
	RoomType
	Available int `json:"available"`
}

// HotelView is the read model for a single hotel: the row itself plus
// facilities, images and per-room-type inventory.
type HotelView struct {
	Hotel
	Facilities []string        `json:"facilities"`
	Images     []string        `json:"images"`
	RoomTypes  []RoomInventory `json:"room_types"`
}

// HotelSummary is the listing/search row shape.
type HotelSummary struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	City          *string  `json:"city"`
	Rating        *float64 `json:"rating"`
	PricePerNight *float64 `json:"price_per_night"`
}

type HotelsQuery struct {
	City  *string
	Q     *string // matches name, city or description
	Limit int
}

// HotelPatch carries the optional fields of a hotel update. Each present
// field maps to its own static update clause; absent fields stay untouched.
type HotelPatch struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Address     *string         `json:"address"`
	City        *string         `json:"city"`
	RoomTypes   []RoomTypePatch `json:"room_types"`
	Facilities  *[]string       `json:"facilities"` // replace-all when present
}

type RoomTypePatch struct {
	Type       string   `json:"type" validate:"required"`
	Price      *float64 `json:"price" validate:"omitempty,gte=0"`
	Capacity   *int     `json:"capacity" validate:"omitempty,gte=0"`
	TotalRooms *int     `json:"total_rooms" validate:"omitempty,gte=0"`
}

type Favorite struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"user_id"`
	HotelID int64     `json:"hotel_id"`
	AddedAt time.Time `json:"added_at"`
}
