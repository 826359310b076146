package app

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"stayinn/internal/adapters/observability"
	"stayinn/internal/domain"
)

// BookingService is the booking lifecycle: admission-gated creation,
// status transitions, and listings.
type BookingService struct {
	repo domain.BookingRepository
}

func NewBookingService(r domain.BookingRepository) *BookingService {
	return &BookingService{repo: r}
}

// CreateBooking validates the draft and delegates to the repository's
// atomic admission. No row is created when inventory is exhausted or the
// room type is unknown.
func (s *BookingService) CreateBooking(ctx context.Context, d domain.BookingDraft) (domain.Booking, error) {
	d.RoomType = strings.TrimSpace(d.RoomType)
	d.GuestName = strings.TrimSpace(d.GuestName)
	if err := checkDraft(d); err != nil {
		return domain.Booking{}, err
	}

	b, err := s.repo.Admit(ctx, d)
	switch {
	case err == nil:
		observability.ObserveAdmission("admitted")
		log.Info().Str("booking_id", b.ID).Int64("hotel_id", b.HotelID).
			Str("room_type", b.RoomType).Msg("booking admitted")
		return b, nil
	case errors.Is(err, domain.ErrInventoryExhausted):
		observability.ObserveAdmission("exhausted")
		return domain.Booking{}, err
	case errors.Is(err, domain.ErrRoomTypeNotFound):
		observability.ObserveAdmission("room_type_not_found")
		return domain.Booking{}, err
	default:
		observability.ObserveAdmission("error")
		return domain.Booking{}, err
	}
}

// SetBookingStatus parses newStatus case-insensitively and applies it.
// Any status may move to any other; no transition table is enforced.
func (s *BookingService) SetBookingStatus(ctx context.Context, bookingID, newStatus string) (domain.Booking, error) {
	if strings.TrimSpace(bookingID) == "" {
		return domain.Booking{}, domain.Validationf("booking_id is required")
	}
	st, err := domain.ParseBookingStatus(newStatus)
	if err != nil {
		return domain.Booking{}, err
	}
	b, err := s.repo.UpdateBookingStatus(ctx, bookingID, st)
	if err != nil {
		return domain.Booking{}, err
	}
	log.Info().Str("booking_id", b.ID).Str("status", string(st)).Msg("booking status updated")
	return b, nil
}

func (s *BookingService) ListBookingsByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	if userID <= 0 {
		return nil, domain.Validationf("user_id is required")
	}
	return s.repo.ListBookingsByUser(ctx, userID)
}

func (s *BookingService) ListBookingsByHotel(ctx context.Context, hotelID int64) ([]domain.Booking, error) {
	if hotelID <= 0 {
		return nil, domain.Validationf("hotel_id is required")
	}
	return s.repo.ListBookingsByHotel(ctx, hotelID)
}
