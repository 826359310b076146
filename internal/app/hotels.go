package app

import (
	"context"
	"time"

	"stayinn/internal/adapters/observability"
	"stayinn/internal/domain"
)

type HotelService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewHotelService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *HotelService {
	return &HotelService{repo: r, cache: c, cacheTTL: ttl}
}

// GetHotel serves the hotel view (aggregates, facilities, images, live
// room-type availability) cache-aside.
func (s *HotelService) GetHotel(ctx context.Context, id int64) (domain.HotelView, error) {
	key := hotelKey(id)
	var hv domain.HotelView
	if ok, _ := s.cache.Get(ctx, key, &hv); ok {
		return hv, nil
	}
	hv, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.HotelView{}, err
	}
	_ = s.cache.Set(ctx, key, hv, int(s.cacheTTL.Seconds()))
	return hv, nil
}

func (s *HotelService) GetHotelByOwner(ctx context.Context, ownerID int64) (domain.HotelView, error) {
	if ownerID <= 0 {
		return domain.HotelView{}, domain.Validationf("user_id is required")
	}
	// owner dashboard reads bypass the cache: admins expect their own
	// writes back immediately
	return s.repo.GetHotelByOwner(ctx, ownerID)
}

func (s *HotelService) ListHotels(ctx context.Context, q domain.HotelsQuery) ([]domain.HotelSummary, error) {
	return s.repo.ListHotels(ctx, q)
}

// UpdateHotelAndRoomTypes applies an owner-checked transactional patch and
// evicts the hotel's cached view. The aggregate resync runs inside the
// repository transaction, so readers never observe half-applied derived
// fields after commit.
func (s *HotelService) UpdateHotelAndRoomTypes(ctx context.Context, ownerID, hotelID int64, p domain.HotelPatch) error {
	if ownerID <= 0 {
		return domain.Validationf("user_id is required")
	}
	if hotelID <= 0 {
		return domain.Validationf("hotel_id is required")
	}
	for _, rt := range p.RoomTypes {
		if err := checkDraft(rt); err != nil {
			return err
		}
	}

	if err := s.repo.UpdateHotel(ctx, ownerID, hotelID, p); err != nil {
		if !domain.IsNotFound(err) && !domain.IsUnauthorized(err) {
			observability.ObserveAggregateSync("room_types", "error")
		}
		return err
	}
	observability.ObserveAggregateSync("room_types", "ok")
	_ = s.cache.Del(ctx, hotelKey(hotelID))
	return nil
}
