package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayinn/internal/app"
	"stayinn/internal/domain"
)

type Handlers struct {
	Hotels    *app.HotelService
	Bookings  *app.BookingService
	Reviews   *app.ReviewService
	Favorites *app.FavoriteService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/hotels", h.listHotels)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)
	s.mux.Get("/v1/hotels/{id}/reviews", h.listReviews)

	s.mux.Post("/v1/bookings", h.createBooking)
	s.mux.Get("/v1/bookings", h.listBookingsByUser)
	s.mux.Post("/v1/bookings/{id}/status", h.setBookingStatus)

	s.mux.Post("/v1/reviews", h.createReview)

	s.mux.Post("/v1/favorites", h.addFavorite)
	s.mux.Delete("/v1/favorites", h.removeFavorite)
	s.mux.Get("/v1/favorites/count", h.favoriteCount)

	s.mux.Get("/v1/admin/hotel", h.myHotel)
	s.mux.Post("/v1/admin/hotels/{id}", h.updateHotel)
	s.mux.Get("/v1/admin/bookings", h.listBookingsByOwner)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service error kinds to status codes. Unexpected errors
// are logged with full detail but answered with a generic message.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case domain.IsUnauthorized(err):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case domain.IsNotFound(err):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case domain.IsConflict(err):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		log.Error().Err(err).Msg("internal error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "an internal error occurred")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Validationf("request body must be valid JSON")
	}
	return nil
}

func urlID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("id must be a positive number")
	}
	return id, nil
}

func queryID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("%s is required", key)
	}
	return id, nil
}

// ---- hotels ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	var q domain.HotelsQuery
	if c := r.URL.Query().Get("city"); c != "" {
		q.City = &c
	}
	if s := r.URL.Query().Get("q"); s != "" {
		q.Q = &s
	}
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "limit must be an integer between 1 and 200")
			return
		}
		q.Limit = l
	}
	out, err := h.Hotels.ListHotels(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	if out == nil {
		out = []domain.HotelSummary{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	hv, err := h.Hotels.GetHotel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hv)
}

func (h *Handlers) myHotel(w http.ResponseWriter, r *http.Request) {
	ownerID, err := queryID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}
	hv, err := h.Hotels.GetHotelByOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hv)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	hotelID, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		UserID int64 `json:"user_id"`
		domain.HotelPatch
	}
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Hotels.UpdateHotelAndRoomTypes(r.Context(), body.UserID, hotelID, body.HotelPatch); err != nil {
		writeError(w, err)
		return
	}
	hv, err := h.Hotels.GetHotel(r.Context(), hotelID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hv)
}

// ---- bookings ----

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var d domain.BookingDraft
	if err := decode(r, &d); err != nil {
		writeError(w, err)
		return
	}
	b, err := h.Bookings.CreateBooking(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handlers) setBookingStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Status string `json:"status"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	b, err := h.Bookings.SetBookingStatus(r.Context(), id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) listBookingsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Bookings.ListBookingsByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if out == nil {
		out = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, out)
}

// listBookingsByOwner resolves the caller's hotel, then lists its bookings.
func (h *Handlers) listBookingsByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := queryID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}
	hv, err := h.Hotels.GetHotelByOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Bookings.ListBookingsByHotel(r.Context(), hv.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if out == nil {
		out = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- reviews ----

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var d domain.ReviewDraft
	if err := decode(r, &d); err != nil {
		writeError(w, err)
		return
	}
	rv, err := h.Reviews.CreateReview(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	hotelID, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}
	out, err := h.Reviews.ListReviews(r.Context(), hotelID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if out == nil {
		out = []domain.Review{}
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- favorites ----

type favoriteBody struct {
	UserID  int64 `json:"user_id"`
	HotelID int64 `json:"hotel_id"`
}

func (h *Handlers) addFavorite(w http.ResponseWriter, r *http.Request) {
	var body favoriteBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	f, err := h.Favorites.AddFavorite(r.Context(), body.UserID, body.HotelID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *Handlers) removeFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}
	hotelID, err := queryID(r, "hotel_id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Favorites.RemoveFavorite(r.Context(), userID, hotelID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) favoriteCount(w http.ResponseWriter, r *http.Request) {
	hotelID, err := queryID(r, "hotel_id")
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := h.Favorites.GetFavoriteCount(r.Context(), hotelID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}
