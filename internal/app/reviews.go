package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"stayinn/internal/adapters/observability"
	"stayinn/internal/domain"
)

type ReviewService struct {
	reviews  domain.ReviewRepository
	bookings domain.BookingRepository
	hotels   domain.HotelRepository
	cache    domain.Cache
}

func NewReviewService(rv domain.ReviewRepository, bk domain.BookingRepository, ht domain.HotelRepository, c domain.Cache) *ReviewService {
	return &ReviewService{reviews: rv, bookings: bk, hotels: ht, cache: c}
}

// CreateReview checks eligibility, inserts the review, then resyncs the
// hotel rating. The resync runs after the insert commits: a failure there
// is logged and counted but does not fail the review.
func (s *ReviewService) CreateReview(ctx context.Context, d domain.ReviewDraft) (domain.Review, error) {
	d.Comment = strings.TrimSpace(d.Comment)
	if err := checkDraft(d); err != nil {
		return domain.Review{}, err
	}

	if err := s.checkEligibility(ctx, d); err != nil {
		return domain.Review{}, err
	}

	rv, err := s.reviews.InsertReview(ctx, d)
	if err != nil {
		return domain.Review{}, err
	}

	if err := s.hotels.SyncHotelRating(ctx, d.HotelID); err != nil {
		observability.ObserveAggregateSync("rating", "error")
		log.Error().Err(err).Int64("hotel_id", d.HotelID).
			Msg("rating resync failed after review insert; hotel rating is stale")
	} else {
		observability.ObserveAggregateSync("rating", "ok")
	}
	_ = s.cache.Del(ctx, hotelKey(d.HotelID))

	return rv, nil
}

// checkEligibility: with a booking reference the booking must belong to the
// reviewer and hotel, be completed, and not already be reviewed. Without
// one, the user gets one review per completed booking at the hotel.
func (s *ReviewService) checkEligibility(ctx context.Context, d domain.ReviewDraft) error {
	if d.BookingID != nil && *d.BookingID != "" {
		b, err := s.bookings.GetBooking(ctx, *d.BookingID)
		if err != nil {
			return err
		}
		if b.UserID != d.UserID || b.HotelID != d.HotelID {
			return domain.Validationf("booking does not belong to this user and hotel")
		}
		if b.Status != domain.StatusCompleted {
			return domain.ErrReviewNotEligible
		}
		exists, err := s.reviews.ReviewExistsForBooking(ctx, *d.BookingID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateReview
		}
		return nil
	}

	completed, err := s.bookings.CompletedBookingCount(ctx, d.UserID, d.HotelID)
	if err != nil {
		return err
	}
	written, err := s.reviews.ReviewCount(ctx, d.UserID, d.HotelID)
	if err != nil {
		return err
	}
	if written >= completed {
		return domain.ErrReviewNotEligible
	}
	return nil
}

func (s *ReviewService) ListReviews(ctx context.Context, hotelID int64, limit int) ([]domain.Review, error) {
	if hotelID <= 0 {
		return nil, domain.Validationf("hotel_id is required")
	}
	return s.reviews.ListReviews(ctx, hotelID, limit)
}
