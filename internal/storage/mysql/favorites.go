package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"stayinn/internal/domain"
)

// isDuplicateKey reports MySQL error 1062 (ER_DUP_ENTRY). Unique keys on
// (user_id, hotel_id) and reviews.booking_id turn racing duplicate writes
// into conflicts instead of extra rows.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func (r *Repo) AddFavorite(ctx context.Context, userID, hotelID int64) (domain.Favorite, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, hotel_id, added_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		userID, hotelID)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.Favorite{}, domain.ErrDuplicateFavorite
		}
		return domain.Favorite{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Favorite{}, err
	}

	var added time.Time
	if err := r.db.QueryRowContext(ctx,
		`SELECT added_at FROM favorites WHERE id = ?`, id).Scan(&added); err != nil {
		return domain.Favorite{}, err
	}
	return domain.Favorite{ID: id, UserID: userID, HotelID: hotelID, AddedAt: added}, nil
}

func (r *Repo) RemoveFavorite(ctx context.Context, userID, hotelID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND hotel_id = ?`, userID, hotelID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (r *Repo) FavoriteCount(ctx context.Context, hotelID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE hotel_id = ?`, hotelID).Scan(&n)
	return n, err
}
