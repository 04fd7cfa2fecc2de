// Package queue defines message payloads exchanged over the message broker.
package queue

// SaleConfirmedEvent is published when an admin confirms a reservation and
// the car is marked sold. It carries enough context for downstream consumers
// to log or notify without querying the primary database.
type SaleConfirmedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	UserID        uint64  `json:"user_id"`
	CarID         uint64  `json:"car_id"`
	Brand         string  `json:"brand"`
	Model         string  `json:"model"`
	Year          int     `json:"year"`
	Price         float64 `json:"price"`
	BuyerName     string  `json:"buyer_name"`
	BuyerEmail    string  `json:"buyer_email"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
