package model

import "time"

// Favorite links a user to a car they have marked as a favorite.  The
// (UserID, CarID) pair is unique; the storage layer enforces this with a
// unique key so concurrent inserts cannot create duplicates.
type Favorite struct {
	ID        uint64    // favorites.id
	UserID    uint64    // favorites.user_id
	CarID     uint64    // favorites.car_id
	CreatedAt time.Time // favorites.created_at
}
