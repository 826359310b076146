package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"stayinn/internal/domain"
)

// Admit performs the admission sequence atomically: lock the room-type row,
// count active bookings, check capacity, insert with status pending. The
// FOR UPDATE lock serializes concurrent attempts for the same room type, so
// two racers cannot both observe a free unit and overbook.
func (r *Repo) Admit(ctx context.Context, d domain.BookingDraft) (domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Booking{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var capacity int
	err = tx.QueryRowContext(ctx, roomTypeForUpdateSQL, d.HotelID, d.RoomType).Scan(&capacity)
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrRoomTypeNotFound
	}
	if err != nil {
		return domain.Booking{}, err
	}
	if capacity < 0 {
		capacity = 0
	}

	var occupied int
	if err := tx.QueryRowContext(ctx, activeOccupancySQL, d.HotelID, d.RoomType).Scan(&occupied); err != nil {
		return domain.Booking{}, err
	}
	if occupied >= capacity {
		return domain.Booking{}, domain.ErrInventoryExhausted
	}

	id := "book_" + uuid.NewString()
	if _, err := tx.ExecContext(ctx, insertBookingSQL,
		id, d.UserID, d.HotelID, d.HotelName, d.RoomType,
		d.CheckIn, d.CheckOut, d.TotalNights, d.TotalPrice,
		d.GuestName, d.GuestPhone, d.SpecialRequest,
	); err != nil {
		return domain.Booking{}, err
	}

	b, err := scanBooking(tx.QueryRowContext(ctx, selectBookingSQL+`WHERE id = ?`, id))
	if err != nil {
		return domain.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

func (r *Repo) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, selectBookingSQL+`WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, err
}

func (r *Repo) UpdateBookingStatus(ctx context.Context, id string, s domain.BookingStatus) (domain.Booking, error) {
	if _, err := r.GetBooking(ctx, id); err != nil {
		return domain.Booking{}, err
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, string(s), id); err != nil {
		return domain.Booking{}, err
	}
	return r.GetBooking(ctx, id)
}

func (r *Repo) ListBookingsByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.listBookings(ctx, selectBookingSQL+`WHERE user_id = ? ORDER BY booking_date DESC, id`, userID)
}

func (r *Repo) ListBookingsByHotel(ctx context.Context, hotelID int64) ([]domain.Booking, error) {
	return r.listBookings(ctx, selectBookingSQL+`WHERE hotel_id = ? ORDER BY booking_date DESC, id`, hotelID)
}

func (r *Repo) CompletedBookingCount(ctx context.Context, userID, hotelID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE user_id = ? AND hotel_id = ? AND LOWER(status) = 'completed'`,
		userID, hotelID).Scan(&n)
	return n, err
}

func (r *Repo) listBookings(ctx context.Context, query string, arg any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanBooking(row rowScanner) (domain.Booking, error) {
	var b domain.Booking
	var status string
	var checkIn, checkOut, bookingDate time.Time
	var special sql.NullString
	if err := row.Scan(
		&b.ID, &b.UserID, &b.HotelID, &b.HotelName, &b.RoomType,
		&checkIn, &checkOut, &b.TotalNights, &b.TotalPrice,
		&status, &bookingDate, &b.GuestName, &b.GuestPhone, &special,
	); err != nil {
		return domain.Booking{}, err
	}
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	b.BookingDate = bookingDate
	if special.Valid {
		b.SpecialRequest = special.String
	}
	// normalize legacy mixed-case rows on the way out
	if st, err := domain.ParseBookingStatus(status); err == nil {
		b.Status = st
	} else {
		b.Status = domain.BookingStatus(status)
	}
	return b, nil
}
