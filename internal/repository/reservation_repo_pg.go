package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationDetail is a reservation joined with its flight, shaped for the
// "my bookings" listing.
type ReservationDetail struct {
	ReservationID int64
	Status        domain.ReservationStatus
	CreatedAt     time.Time
	Airline       string
	FlightNumber  string
	DepartureCity string
	ArrivalCity   string
	DepartureTime time.Time
	ArrivalTime   time.Time
	PriceCents    int64
}

type CityStats struct {
	DepartureCity     string
	Bookings          int64
	AvgPriceCents     float64
	TotalRevenueCents int64
}

// InventoryDrift reports a flight whose remaining-seat counter disagrees with
// its confirmed reservation count.
type InventoryDrift struct {
	FlightID       int64
	TotalSeats     int
	AvailableSeats int
	Confirmed      int
}

type ReservationRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]ReservationDetail, error)
	StatsByDepartureCity(ctx context.Context) ([]CityStats, error)
	AuditInventory(ctx context.Context) ([]InventoryDrift, error)
}

type PGReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) ReservationRepository {
	return &PGReservationRepository{db: db}
}

func (r *PGReservationRepository) ListByUser(ctx context.Context, userID int64) ([]ReservationDetail, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.status, b.created_at,
		       f.airline, f.flight_number, f.departure_city, f.arrival_city,
		       f.departure_time, f.arrival_time, f.price_cents
		FROM bookings b
		JOIN flights f ON b.flight_id = f.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(&d.ReservationID, &d.Status, &d.CreatedAt, &d.Airline, &d.FlightNumber, &d.DepartureCity, &d.ArrivalCity, &d.DepartureTime, &d.ArrivalTime, &d.PriceCents); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *PGReservationRepository) StatsByDepartureCity(ctx context.Context) ([]CityStats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.departure_city,
		       COUNT(b.id) AS bookings,
		       COALESCE(AVG(f.price_cents), 0) AS avg_price_cents,
		       COALESCE(SUM(f.price_cents) FILTER (WHERE b.id IS NOT NULL), 0) AS total_revenue_cents
		FROM flights f
		LEFT JOIN bookings b ON f.id = b.flight_id AND b.status = $1
		GROUP BY f.departure_city
		ORDER BY f.departure_city`, domain.ReservationStatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]CityStats, 0)
	for rows.Next() {
		var s CityStats
		if err := rows.Scan(&s.DepartureCity, &s.Bookings, &s.AvgPriceCents, &s.TotalRevenueCents); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *PGReservationRepository) AuditInventory(ctx context.Context) ([]InventoryDrift, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.id, f.total_seats, f.available_seats, COUNT(b.id) AS confirmed
		FROM flights f
		LEFT JOIN bookings b ON f.id = b.flight_id AND b.status = $1
		GROUP BY f.id, f.total_seats, f.available_seats
		HAVING f.available_seats <> f.total_seats - COUNT(b.id)`, domain.ReservationStatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drift []InventoryDrift
	for rows.Next() {
		var d InventoryDrift
		if err := rows.Scan(&d.FlightID, &d.TotalSeats, &d.AvailableSeats, &d.Confirmed); err != nil {
			return nil, err
		}
		drift = append(drift, d)
	}
	return drift, rows.Err()
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
