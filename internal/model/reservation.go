package model

import "time"

// Reservation records a user's request to buy a specific car.  It is
// created in the PENDING state by the requesting user; all later
// transitions are admin-driven.  Confirming a sale moves both the
// reservation and the car to SOLD; cancelling moves the reservation to
// CANCELLED and releases the car back to AVAILABLE.  SOLD and CANCELLED
// are terminal.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who requested the reservation.
//  CarID     – car being reserved.
//  Message   – optional free-text message to the dealer.
//  Status    – workflow state.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Reservation struct {
	ID        uint64            // reservations.id
	UserID    uint64            // reservations.user_id
	CarID     uint64            // reservations.car_id
	Message   string            // reservations.message
	Status    ReservationStatus // reservations.status
	CreatedAt time.Time         // reservations.created_at
	UpdatedAt time.Time         // reservations.updated_at
}
