package app

import (
	"context"
	"time"

	"stayinn/internal/domain"
)

type FavoriteService struct {
	repo     domain.FavoriteRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewFavoriteService(r domain.FavoriteRepository, c domain.Cache, ttl time.Duration) *FavoriteService {
	return &FavoriteService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *FavoriteService) AddFavorite(ctx context.Context, userID, hotelID int64) (domain.Favorite, error) {
	if userID <= 0 {
		return domain.Favorite{}, domain.Validationf("user_id is required")
	}
	if hotelID <= 0 {
		return domain.Favorite{}, domain.Validationf("hotel_id is required")
	}
	f, err := s.repo.AddFavorite(ctx, userID, hotelID)
	if err != nil {
		return domain.Favorite{}, err
	}
	_ = s.cache.Del(ctx, favCountKey(hotelID))
	return f, nil
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, hotelID int64) error {
	if userID <= 0 {
		return domain.Validationf("user_id is required")
	}
	if hotelID <= 0 {
		return domain.Validationf("hotel_id is required")
	}
	if err := s.repo.RemoveFavorite(ctx, userID, hotelID); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, favCountKey(hotelID))
	return nil
}

func (s *FavoriteService) GetFavoriteCount(ctx context.Context, hotelID int64) (int, error) {
	if hotelID <= 0 {
		return 0, domain.Validationf("hotel_id is required")
	}
	key := favCountKey(hotelID)
	var n int
	if ok, _ := s.cache.Get(ctx, key, &n); ok {
		return n, nil
	}
	n, err := s.repo.FavoriteCount(ctx, hotelID)
	if err != nil {
		return 0, err
	}
	_ = s.cache.Set(ctx, key, n, int(s.cacheTTL.Seconds()))
	return n, nil
}
