package mysql

// Occupancy matches status case-insensitively: legacy rows carry mixed
// casings ("Confirmed"/"confirmed") and must still count against inventory.
const activeOccupancySQL = `
SELECT COUNT(*)
FROM bookings
WHERE hotel_id = ? AND room_type = ?
  AND LOWER(status) IN ('pending', 'confirmed')
`

// Row lock on the room-type row serializes concurrent admissions for the
// same (hotel, room type); the occupancy read and the insert below happen
// under that lock.
const roomTypeForUpdateSQL = `
SELECT total_rooms
FROM room_types
WHERE hotel_id = ? AND type = ?
FOR UPDATE
`

const insertBookingSQL = `
INSERT INTO bookings
  (id, user_id, hotel_id, hotel_name, room_type, check_in, check_out,
   total_nights, total_price, status, booking_date, guest_name, guest_phone, special_request)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending', CURRENT_TIMESTAMP, ?, ?, ?)
`

const selectBookingSQL = `
SELECT id, user_id, hotel_id, hotel_name, room_type, check_in, check_out,
       total_nights, total_price, status, booking_date, guest_name, guest_phone, special_request
FROM bookings
`

const getHotelSQL = `
SELECT id, owner_id, name, description, address, city, rating, price_per_night, rooms_available
FROM hotels
`

// Room types with live occupancy for the hotel view.
const hotelInventorySQL = `
SELECT rt.type, rt.price, rt.capacity, rt.total_rooms,
       (SELECT COUNT(*) FROM bookings b
         WHERE b.hotel_id = rt.hotel_id AND b.room_type = rt.type
           AND LOWER(b.status) IN ('pending', 'confirmed')) AS occupied
FROM room_types rt
WHERE rt.hotel_id = ?
ORDER BY rt.price, rt.type
`

// Aggregate resync sources. COUNT(*) distinguishes "no room types" /
// "no reviews" (leave prior values untouched) from real aggregates.
const roomTypeAggregatesSQL = `
SELECT MIN(price), COALESCE(SUM(total_rooms), 0), COUNT(*)
FROM room_types
WHERE hotel_id = ?
`

const reviewAggregateSQL = `
SELECT AVG(rating), COUNT(*)
FROM reviews
WHERE hotel_id = ?
`

const insertReviewSQL = `
INSERT INTO reviews (hotel_id, user_id, booking_id, user_name, user_avatar, rating, comment, date)
VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
`

const selectReviewSQL = `
SELECT id, hotel_id, user_id, booking_id, user_name, user_avatar, rating, comment, date
FROM reviews
`
