package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusRejected  ReservationStatus = "REJECTED"
)

// Reservation is one confirmed seat on one flight held by one user.
// Rows are written once by the reservation engine and never mutated.
type Reservation struct {
	ID        int64
	UserID    int64
	FlightID  int64
	Status    ReservationStatus
	CreatedAt time.Time
}
