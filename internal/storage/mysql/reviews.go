package mysql

import (
	"context"
	"database/sql"
	"time"

	"stayinn/internal/domain"
)

func (r *Repo) InsertReview(ctx context.Context, d domain.ReviewDraft) (domain.Review, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		d.HotelID, d.UserID, valStr(d.BookingID), d.UserName, d.UserAvatar, d.Rating, d.Comment)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.Review{}, domain.ErrDuplicateReview
		}
		return domain.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Review{}, err
	}
	return r.getReview(ctx, id)
}

func (r *Repo) getReview(ctx context.Context, id int64) (domain.Review, error) {
	return scanReview(r.db.QueryRowContext(ctx, selectReviewSQL+`WHERE id = ?`, id))
}

func (r *Repo) ReviewExistsForBooking(ctx context.Context, bookingID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM reviews WHERE booking_id = ? LIMIT 1`, bookingID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repo) ReviewCount(ctx context.Context, userID, hotelID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE user_id = ? AND hotel_id = ?`, userID, hotelID).Scan(&n)
	return n, err
}

func (r *Repo) ListReviews(ctx context.Context, hotelID int64, limit int) ([]domain.Review, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		selectReviewSQL+`WHERE hotel_id = ? ORDER BY date DESC, id DESC LIMIT ?`, hotelID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func scanReview(row rowScanner) (domain.Review, error) {
	var rv domain.Review
	var bookingID sql.NullString
	var date time.Time
	if err := row.Scan(&rv.ID, &rv.HotelID, &rv.UserID, &bookingID,
		&rv.UserName, &rv.UserAvatar, &rv.Rating, &rv.Comment, &date); err != nil {
		return domain.Review{}, err
	}
	rv.BookingID = strPtr(bookingID)
	rv.Date = date
	return rv, nil
}
