// Package repository implements raw-SQL data access for the marketplace
// entities.  This file defines error values and helpers reused across the
// repositories.  Sentinel values let handlers distinguish failure modes
// without inspecting driver errors: ErrCarNotFound maps to HTTP 404,
// ErrFavoriteExists to the duplicate-favorite conflict, and so on.
package repository

import (
	"errors"
	"strings"
)

// ErrUserNotFound is returned when no user matches the given id or email.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when an insert or update collides with the
// unique key on users.email.
var ErrEmailExists = errors.New("email already exists")

// ErrCarNotFound is returned when a car id does not exist.
var ErrCarNotFound = errors.New("car not found")

// ErrFavoriteExists is returned when the (user_id, car_id) pair already has
// a favorite row.  The unique key on favorites enforces this even under
// concurrent inserts.
var ErrFavoriteExists = errors.New("favorite already exists")

// ErrFavoriteNotFound is returned when a favorite id does not exist or is
// not owned by the requesting user.
var ErrFavoriteNotFound = errors.New("favorite not found")

// ErrReservationNotFound is returned when a reservation id does not exist.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrReservationClosed is returned when a confirm or cancel targets a
// reservation that is already in a terminal state.
var ErrReservationClosed = errors.New("reservation already closed")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
