package domain

import "time"

type Flight struct {
	ID             int64
	Airline        string
	FlightNumber   string
	DepartureCity  string
	ArrivalCity    string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	PriceCents     int64
	TotalSeats     int
	AvailableSeats int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
