package mysql

import (
	"context"
	"database/sql"
	"strings"

	"stayinn/internal/domain"
)

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.HotelView, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getHotelSQL+`WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return domain.HotelView{}, domain.ErrHotelNotFound
	}
	if err != nil {
		return domain.HotelView{}, err
	}
	return r.loadHotelView(ctx, h)
}

func (r *Repo) GetHotelByOwner(ctx context.Context, ownerID int64) (domain.HotelView, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getHotelSQL+`WHERE owner_id = ? ORDER BY id LIMIT 1`, ownerID))
	if err == sql.ErrNoRows {
		return domain.HotelView{}, domain.ErrHotelNotFound
	}
	if err != nil {
		return domain.HotelView{}, err
	}
	return r.loadHotelView(ctx, h)
}

func (r *Repo) loadHotelView(ctx context.Context, h domain.Hotel) (domain.HotelView, error) {
	hv := domain.HotelView{Hotel: h, Facilities: []string{}, Images: []string{}, RoomTypes: []domain.RoomInventory{}}

	if err := r.stringColumn(ctx,
		`SELECT facility FROM hotel_facilities WHERE hotel_id = ? ORDER BY facility`, h.ID, &hv.Facilities); err != nil {
		return domain.HotelView{}, err
	}
	if err := r.stringColumn(ctx,
		`SELECT image_url FROM hotel_images WHERE hotel_id = ? ORDER BY id`, h.ID, &hv.Images); err != nil {
		return domain.HotelView{}, err
	}

	rows, err := r.db.QueryContext(ctx, hotelInventorySQL, h.ID)
	if err != nil {
		return domain.HotelView{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var ri domain.RoomInventory
		var occupied int
		if err := rows.Scan(&ri.Type, &ri.Price, &ri.Capacity, &ri.TotalRooms, &occupied); err != nil {
			return domain.HotelView{}, err
		}
		ri.HotelID = h.ID
		ri.Available = ri.TotalRooms - occupied
		if ri.Available < 0 {
			ri.Available = 0
		}
		hv.RoomTypes = append(hv.RoomTypes, ri)
	}
	return hv, rows.Err()
}

func (r *Repo) stringColumn(ctx context.Context, query string, arg any, dst *[]string) error {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return err
		}
		*dst = append(*dst, s)
	}
	return rows.Err()
}

func (r *Repo) ListHotels(ctx context.Context, q domain.HotelsQuery) ([]domain.HotelSummary, error) {
	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// static clauses only; the free-text filter matches name, city and description
	query := `SELECT id, name, city, rating, price_per_night FROM hotels`
	var where []string
	var args []any
	if q.City != nil {
		where = append(where, `city = ?`)
		args = append(args, *q.City)
	}
	if q.Q != nil {
		pat := "%" + *q.Q + "%"
		where = append(where, `(name LIKE ? OR city LIKE ? OR description LIKE ?)`)
		args = append(args, pat, pat, pat)
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY id LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelSummary
	for rows.Next() {
		var hs domain.HotelSummary
		var city sql.NullString
		var rating, price sql.NullFloat64
		if err := rows.Scan(&hs.ID, &hs.Name, &city, &rating, &price); err != nil {
			return nil, err
		}
		hs.City = strPtr(city)
		hs.Rating = f64Ptr(rating)
		hs.PricePerNight = f64Ptr(price)
		out = append(out, hs)
	}
	return out, rows.Err()
}

func (r *Repo) ListHotelIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM hotels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// UpdateHotel applies the patch in one transaction. Ownership is verified
// under a row lock first; any failure rolls the whole patch back, including
// the aggregate resync at the end.
func (r *Repo) UpdateHotel(ctx context.Context, ownerID, hotelID int64, p domain.HotelPatch) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var owner int64
	err = tx.QueryRowContext(ctx, `SELECT owner_id FROM hotels WHERE id = ? FOR UPDATE`, hotelID).Scan(&owner)
	if err == sql.ErrNoRows {
		return domain.ErrHotelNotFound
	}
	if err != nil {
		return err
	}
	if owner != ownerID {
		return domain.ErrNotOwner
	}

	// one static statement per present field
	fieldStmts := []struct {
		set string
		val *string
	}{
		{`UPDATE hotels SET name = ? WHERE id = ?`, p.Name},
		{`UPDATE hotels SET description = ? WHERE id = ?`, p.Description},
		{`UPDATE hotels SET address = ? WHERE id = ?`, p.Address},
		{`UPDATE hotels SET city = ? WHERE id = ?`, p.City},
	}
	for _, fs := range fieldStmts {
		if fs.val == nil {
			continue
		}
		if _, err := tx.ExecContext(ctx, fs.set, *fs.val, hotelID); err != nil {
			return err
		}
	}

	for _, rt := range p.RoomTypes {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM room_types WHERE hotel_id = ? AND type = ?`, hotelID, rt.Type).Scan(&exists)
		if err == sql.ErrNoRows {
			return domain.ErrRoomTypeNotFound
		}
		if err != nil {
			return err
		}
		if rt.Price != nil {
			if _, err := tx.ExecContext(ctx,
				`UPDATE room_types SET price = ? WHERE hotel_id = ? AND type = ?`, *rt.Price, hotelID, rt.Type); err != nil {
				return err
			}
		}
		if rt.Capacity != nil {
			if _, err := tx.ExecContext(ctx,
				`UPDATE room_types SET capacity = ? WHERE hotel_id = ? AND type = ?`, *rt.Capacity, hotelID, rt.Type); err != nil {
				return err
			}
		}
		if rt.TotalRooms != nil {
			if _, err := tx.ExecContext(ctx,
				`UPDATE room_types SET total_rooms = ? WHERE hotel_id = ? AND type = ?`, *rt.TotalRooms, hotelID, rt.Type); err != nil {
				return err
			}
		}
	}

	if p.Facilities != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM hotel_facilities WHERE hotel_id = ?`, hotelID); err != nil {
			return err
		}
		for _, f := range *p.Facilities {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO hotel_facilities (hotel_id, facility) VALUES (?, ?)`, hotelID, f); err != nil {
				return err
			}
		}
	}

	// same-transaction resync keeps derived fields read-your-writes consistent
	if err := syncAggregates(ctx, tx, hotelID); err != nil {
		return err
	}
	return tx.Commit()
}

// ---- aggregate synchronizer ----

func (r *Repo) SyncHotelAggregates(ctx context.Context, hotelID int64) error {
	return syncAggregates(ctx, r.db, hotelID)
}

func syncAggregates(ctx context.Context, q querier, hotelID int64) error {
	var minPrice sql.NullFloat64
	var totalRooms, count int
	if err := q.QueryRowContext(ctx, roomTypeAggregatesSQL, hotelID).Scan(&minPrice, &totalRooms, &count); err != nil {
		return err
	}
	if count == 0 {
		// no room types: prior values stay untouched
		return nil
	}
	_, err := q.ExecContext(ctx,
		`UPDATE hotels SET price_per_night = ?, rooms_available = ? WHERE id = ?`,
		minPrice.Float64, totalRooms, hotelID)
	return err
}

func (r *Repo) SyncHotelRating(ctx context.Context, hotelID int64) error {
	var avg sql.NullFloat64
	var count int
	if err := r.db.QueryRowContext(ctx, reviewAggregateSQL, hotelID).Scan(&avg, &count); err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `UPDATE hotels SET rating = ? WHERE id = ?`, avg.Float64, hotelID)
	return err
}

func scanHotel(row rowScanner) (domain.Hotel, error) {
	var h domain.Hotel
	var desc, addr, city sql.NullString
	var rating, price sql.NullFloat64
	if err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &desc, &addr, &city, &rating, &price, &h.RoomsAvailable); err != nil {
		return domain.Hotel{}, err
	}
	h.Description = strPtr(desc)
	h.Address = strPtr(addr)
	h.City = strPtr(city)
	h.Rating = f64Ptr(rating)
	h.PricePerNight = f64Ptr(price)
	return h, nil
}
