package domain

import "context"

// HotelRepository is the persistence boundary for hotels, room types and
// the derived hotel aggregates.
type HotelRepository interface {
	GetHotel(ctx context.Context, id int64) (HotelView, error)
	GetHotelByOwner(ctx context.Context, ownerID int64) (HotelView, error)
	ListHotels(ctx context.Context, q HotelsQuery) ([]HotelSummary, error)
	ListHotelIDs(ctx context.Context) ([]int64, error)

	// UpdateHotel applies the patch in one transaction: ownership check,
	// hotel field updates, room-type updates, facilities replace-all, then
	// aggregate resync. Rolls back entirely on any step's failure.
	UpdateHotel(ctx context.Context, ownerID, hotelID int64, p HotelPatch) error

	// SyncHotelAggregates recomputes price_per_night (min room-type price;
	// no-op with zero room types) and rooms_available (sum of total_rooms).
	SyncHotelAggregates(ctx context.Context, hotelID int64) error
	// SyncHotelRating recomputes rating as the mean review rating
	// (no-op with zero reviews).
	SyncHotelRating(ctx context.Context, hotelID int64) error
}

// InventoryStore reads per-(hotel, room type) capacity and occupancy.
// Read-only; admission serialization lives in BookingRepository.Admit.
type InventoryStore interface {
	Capacity(ctx context.Context, hotelID int64, roomType string) (int, error)
	// ActiveOccupancy counts bookings whose status is pending or confirmed,
	// matched case-insensitively.
	ActiveOccupancy(ctx context.Context, hotelID int64, roomType string) (int, error)
}

type BookingRepository interface {
	// Admit runs the admission sequence in one transaction, serialized per
	// (hotel, room type): room-type lookup, occupancy read, capacity check,
	// insert with status pending. Returns ErrRoomTypeNotFound or
	// ErrInventoryExhausted without creating a row.
	Admit(ctx context.Context, d BookingDraft) (Booking, error)

	GetBooking(ctx context.Context, id string) (Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, s BookingStatus) (Booking, error)
	ListBookingsByUser(ctx context.Context, userID int64) ([]Booking, error)
	ListBookingsByHotel(ctx context.Context, hotelID int64) ([]Booking, error)
	CompletedBookingCount(ctx context.Context, userID, hotelID int64) (int, error)
}

type ReviewRepository interface {
	InsertReview(ctx context.Context, d ReviewDraft) (Review, error)
	ReviewExistsForBooking(ctx context.Context, bookingID string) (bool, error)
	ReviewCount(ctx context.Context, userID, hotelID int64) (int, error)
	ListReviews(ctx context.Context, hotelID int64, limit int) ([]Review, error)
}

type FavoriteRepository interface {
	AddFavorite(ctx context.Context, userID, hotelID int64) (Favorite, error)
	RemoveFavorite(ctx context.Context, userID, hotelID int64) error
	FavoriteCount(ctx context.Context, hotelID int64) (int, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
