package model

// status.go canonicalizes the lifecycle enumerations.  Statuses are stored
// in the database as uppercase canonical values; the public API keeps the
// Portuguese labels that existing clients were built against, so each enum
// carries a fixed two-way mapping between the canonical value and its wire
// label.  Parsing accepts both forms because admin clients echo labels back
// on car updates.

import "strings"

// CarStatus is the lifecycle state of a listing.
type CarStatus string

const (
	CarAvailable CarStatus = "AVAILABLE"
	CarSold      CarStatus = "SOLD"
)

// Label returns the wire representation of the status.
func (s CarStatus) Label() string {
	switch s {
	case CarSold:
		return "Vendido"
	default:
		return "Disponível"
	}
}

// ParseCarStatus maps a canonical value or wire label onto a CarStatus.
// Unknown input reports ok=false so callers can reject it.
func ParseCarStatus(raw string) (CarStatus, bool) {
	switch strings.TrimSpace(raw) {
	case string(CarAvailable), "Disponível", "Disponivel":
		return CarAvailable, true
	case string(CarSold), "Vendido":
		return CarSold, true
	}
	return "", false
}

// ReservationStatus is the workflow state of a reservation.  PENDING is the
// only non-admin state; SOLD and CANCELLED are terminal.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationApproved  ReservationStatus = "APPROVED"
	ReservationRejected  ReservationStatus = "REJECTED"
	ReservationSold      ReservationStatus = "SOLD"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Label returns the wire representation of the status.
func (s ReservationStatus) Label() string {
	switch s {
	case ReservationApproved:
		return "Aprovado"
	case ReservationRejected:
		return "Rejeitado"
	case ReservationSold:
		return "Vendido"
	case ReservationCancelled:
		return "Cancelado"
	default:
		return "Pendente"
	}
}

// Terminal reports whether no further transition is defined from s.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationSold || s == ReservationCancelled
}
