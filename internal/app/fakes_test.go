package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"stayinn/internal/domain"
)

// fakeStore is an in-memory stand-in for the MySQL repo. Admission runs
// under one mutex, mirroring the row lock the real repo takes, so the
// concurrency tests exercise the same serialization contract.
type fakeStore struct {
	mu sync.Mutex

	hotels     map[int64]*domain.Hotel
	roomTypes  map[int64]map[string]*domain.RoomType
	facilities map[int64][]string
	bookings   map[string]*domain.Booking
	reviews    []domain.Review
	favorites  map[string]domain.Favorite

	nextBookingID  int
	nextReviewID   int64
	nextFavoriteID int64

	failRatingSync bool
	ratingSyncs    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		hotels:     map[int64]*domain.Hotel{},
		roomTypes:  map[int64]map[string]*domain.RoomType{},
		facilities: map[int64][]string{},
		bookings:   map[string]*domain.Booking{},
		favorites:  map[string]domain.Favorite{},
	}
}

func (f *fakeStore) addHotel(h domain.Hotel) {
	f.hotels[h.ID] = &h
	if f.roomTypes[h.ID] == nil {
		f.roomTypes[h.ID] = map[string]*domain.RoomType{}
	}
}

func (f *fakeStore) addRoomType(rt domain.RoomType) {
	if f.roomTypes[rt.HotelID] == nil {
		f.roomTypes[rt.HotelID] = map[string]*domain.RoomType{}
	}
	f.roomTypes[rt.HotelID][rt.Type] = &rt
}

func (f *fakeStore) occupancyLocked(hotelID int64, roomType string) int {
	n := 0
	for _, b := range f.bookings {
		if b.HotelID == hotelID && b.RoomType == roomType && b.Status.Active() {
			n++
		}
	}
	return n
}

// ---- BookingRepository ----

func (f *fakeStore) Admit(ctx context.Context, d domain.BookingDraft) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rt, ok := f.roomTypes[d.HotelID][d.RoomType]
	if !ok {
		return domain.Booking{}, domain.ErrRoomTypeNotFound
	}
	capacity := rt.TotalRooms
	if capacity < 0 {
		capacity = 0
	}
	if f.occupancyLocked(d.HotelID, d.RoomType) >= capacity {
		return domain.Booking{}, domain.ErrInventoryExhausted
	}

	f.nextBookingID++
	checkIn, _ := time.Parse("2006-01-02", d.CheckIn)
	checkOut, _ := time.Parse("2006-01-02", d.CheckOut)
	b := domain.Booking{
		ID:             fmt.Sprintf("book_%d", f.nextBookingID),
		UserID:         d.UserID,
		HotelID:        d.HotelID,
		HotelName:      d.HotelName,
		RoomType:       d.RoomType,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		TotalNights:    d.TotalNights,
		TotalPrice:     d.TotalPrice,
		Status:         domain.StatusPending,
		BookingDate:    time.Now().UTC(),
		GuestName:      d.GuestName,
		GuestPhone:     d.GuestPhone,
		SpecialRequest: d.SpecialRequest,
	}
	f.bookings[b.ID] = &b
	return b, nil
}

func (f *fakeStore) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return *b, nil
}

func (f *fakeStore) UpdateBookingStatus(ctx context.Context, id string, s domain.BookingStatus) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	b.Status = s
	return *b, nil
}

func (f *fakeStore) ListBookingsByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeStore) ListBookingsByHotel(ctx context.Context, hotelID int64) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.HotelID == hotelID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeStore) CompletedBookingCount(ctx context.Context, userID, hotelID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.bookings {
		if b.UserID == userID && b.HotelID == hotelID && b.Status == domain.StatusCompleted {
			n++
		}
	}
	return n, nil
}

// ---- HotelRepository ----

func (f *fakeStore) GetHotel(ctx context.Context, id int64) (domain.HotelView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hotelViewLocked(id)
}

func (f *fakeStore) hotelViewLocked(id int64) (domain.HotelView, error) {
	h, ok := f.hotels[id]
	if !ok {
		return domain.HotelView{}, domain.ErrHotelNotFound
	}
	hv := domain.HotelView{Hotel: *h, Facilities: append([]string{}, f.facilities[id]...), Images: []string{}, RoomTypes: []domain.RoomInventory{}}
	for _, rt := range f.roomTypes[id] {
		avail := rt.TotalRooms - f.occupancyLocked(id, rt.Type)
		if avail < 0 {
			avail = 0
		}
		hv.RoomTypes = append(hv.RoomTypes, domain.RoomInventory{RoomType: *rt, Available: avail})
	}
	return hv, nil
}

func (f *fakeStore) GetHotelByOwner(ctx context.Context, ownerID int64) (domain.HotelView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, h := range f.hotels {
		if h.OwnerID == ownerID {
			return f.hotelViewLocked(id)
		}
	}
	return domain.HotelView{}, domain.ErrHotelNotFound
}

func (f *fakeStore) ListHotels(ctx context.Context, q domain.HotelsQuery) ([]domain.HotelSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.HotelSummary
	for _, h := range f.hotels {
		if q.City != nil && (h.City == nil || *h.City != *q.City) {
			continue
		}
		out = append(out, domain.HotelSummary{ID: h.ID, Name: h.Name, City: h.City, Rating: h.Rating, PricePerNight: h.PricePerNight})
	}
	return out, nil
}

func (f *fakeStore) ListHotelIDs(ctx context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int64
	for id := range f.hotels {
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeStore) UpdateHotel(ctx context.Context, ownerID, hotelID int64, p domain.HotelPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hotels[hotelID]
	if !ok {
		return domain.ErrHotelNotFound
	}
	if h.OwnerID != ownerID {
		return domain.ErrNotOwner
	}
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Description != nil {
		h.Description = p.Description
	}
	if p.Address != nil {
		h.Address = p.Address
	}
	if p.City != nil {
		h.City = p.City
	}
	for _, rtp := range p.RoomTypes {
		rt, ok := f.roomTypes[hotelID][rtp.Type]
		if !ok {
			return domain.ErrRoomTypeNotFound
		}
		if rtp.Price != nil {
			rt.Price = *rtp.Price
		}
		if rtp.Capacity != nil {
			rt.Capacity = *rtp.Capacity
		}
		if rtp.TotalRooms != nil {
			rt.TotalRooms = *rtp.TotalRooms
		}
	}
	if p.Facilities != nil {
		var fs []string
		for _, s := range *p.Facilities {
			if s = strings.TrimSpace(s); s != "" {
				fs = append(fs, s)
			}
		}
		f.facilities[hotelID] = fs
	}
	f.syncAggregatesLocked(hotelID)
	return nil
}

func (f *fakeStore) syncAggregatesLocked(hotelID int64) {
	rts := f.roomTypes[hotelID]
	if len(rts) == 0 {
		return // prior values stay untouched
	}
	minPrice := 0.0
	total := 0
	first := true
	for _, rt := range rts {
		if first || rt.Price < minPrice {
			minPrice = rt.Price
			first = false
		}
		total += rt.TotalRooms
	}
	h := f.hotels[hotelID]
	h.PricePerNight = &minPrice
	h.RoomsAvailable = total
}

func (f *fakeStore) SyncHotelAggregates(ctx context.Context, hotelID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.hotels[hotelID]; !ok {
		return domain.ErrHotelNotFound
	}
	f.syncAggregatesLocked(hotelID)
	return nil
}

func (f *fakeStore) SyncHotelRating(ctx context.Context, hotelID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ratingSyncs++
	if f.failRatingSync {
		return errors.New("rating sync unavailable")
	}
	var sum float64
	var n int
	for _, rv := range f.reviews {
		if rv.HotelID == hotelID {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	if h, ok := f.hotels[hotelID]; ok {
		h.Rating = &avg
	}
	return nil
}

// ---- ReviewRepository ----

func (f *fakeStore) InsertReview(ctx context.Context, d domain.ReviewDraft) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextReviewID++
	rv := domain.Review{
		ID:         f.nextReviewID,
		HotelID:    d.HotelID,
		UserID:     d.UserID,
		BookingID:  d.BookingID,
		UserName:   d.UserName,
		UserAvatar: d.UserAvatar,
		Rating:     d.Rating,
		Comment:    d.Comment,
		Date:       time.Now().UTC(),
	}
	f.reviews = append(f.reviews, rv)
	return rv, nil
}

func (f *fakeStore) ReviewExistsForBooking(ctx context.Context, bookingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rv := range f.reviews {
		if rv.BookingID != nil && *rv.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ReviewCount(ctx context.Context, userID, hotelID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, rv := range f.reviews {
		if rv.UserID == userID && rv.HotelID == hotelID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) ListReviews(ctx context.Context, hotelID int64, limit int) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Review
	for _, rv := range f.reviews {
		if rv.HotelID == hotelID {
			out = append(out, rv)
		}
	}
	return out, nil
}

// ---- FavoriteRepository ----

func favKey(userID, hotelID int64) string { return fmt.Sprintf("%d:%d", userID, hotelID) }

func (f *fakeStore) AddFavorite(ctx context.Context, userID, hotelID int64) (domain.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := favKey(userID, hotelID)
	if _, exists := f.favorites[k]; exists {
		return domain.Favorite{}, domain.ErrDuplicateFavorite
	}
	f.nextFavoriteID++
	fav := domain.Favorite{ID: f.nextFavoriteID, UserID: userID, HotelID: hotelID, AddedAt: time.Now().UTC()}
	f.favorites[k] = fav
	return fav, nil
}

func (f *fakeStore) RemoveFavorite(ctx context.Context, userID, hotelID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := favKey(userID, hotelID)
	if _, exists := f.favorites[k]; !exists {
		return domain.ErrFavoriteNotFound
	}
	delete(f.favorites, k)
	return nil
}

func (f *fakeStore) FavoriteCount(ctx context.Context, hotelID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, fav := range f.favorites {
		if fav.HotelID == hotelID {
			n++
		}
	}
	return n, nil
}

// ---- cache fake ----

// fakeCache round-trips values through JSON like the redis adapter does.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	dels  []string
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string][]byte{}} }

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

// ---- shared fixtures ----

func ptr[T any](v T) *T { return &v }

func seedHotel(f *fakeStore, totalRooms int) {
	f.addHotel(domain.Hotel{ID: 1, OwnerID: 10, Name: "Grand Komodo"})
	f.addRoomType(domain.RoomType{HotelID: 1, Type: "Deluxe", Price: 120, Capacity: 2, TotalRooms: totalRooms})
}

func draft(userID int64) domain.BookingDraft {
	return domain.BookingDraft{
		UserID:      userID,
		HotelID:     1,
		HotelName:   "Grand Komodo",
		RoomType:    "Deluxe",
		CheckIn:     "2026-09-01",
		CheckOut:    "2026-09-03",
		TotalNights: 2,
		TotalPrice:  240,
		GuestName:   "Guest",
	}
}
