package mysql

import (
	"context"
	"database/sql"

	"stayinn/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// querier is satisfied by both *sql.DB and *sql.Tx so the aggregate resync
// can run standalone or inside the hotel-update transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ---- null/pointer helpers ----

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func f64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

// ---- InventoryStore ----

// Capacity returns the room-type inventory count (total_rooms).
// Missing rows report ErrRoomTypeNotFound; negative counts clamp to zero.
func (r *Repo) Capacity(ctx context.Context, hotelID int64, roomType string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT total_rooms FROM room_types WHERE hotel_id = ? AND type = ?`,
		hotelID, roomType).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, domain.ErrRoomTypeNotFound
	}
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

func (r *Repo) ActiveOccupancy(ctx context.Context, hotelID int64, roomType string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, activeOccupancySQL, hotelID, roomType).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
