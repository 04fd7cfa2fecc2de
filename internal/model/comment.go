package model

import "time"

// Comment is a user-authored rating.  CarID is nil for general site
// comments.  Photo holds whichever reference string the client sent, an
// inline-encoded image or an uploaded-file URL; the store does not care
// which.  Comments are immutable once created.
type Comment struct {
	ID        uint64    // comments.id
	UserID    uint64    // comments.user_id
	CarID     *uint64   // comments.car_id (nullable)
	Comment   string    // comments.comment
	Rating    int       // comments.rating, 1..5 inclusive
	Photo     *string   // comments.photo (nullable)
	CreatedAt time.Time // comments.created_at
}
