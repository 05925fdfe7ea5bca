package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlightFilter narrows a search. Zero values mean "no constraint".
type FlightFilter struct {
	DepartureCity string
	ArrivalCity   string
	Date          time.Time
	MinPriceCents int64
	MaxPriceCents int64
}

func (f FlightFilter) Empty() bool {
	return f.DepartureCity == "" && f.ArrivalCity == "" && f.Date.IsZero() && f.MinPriceCents == 0 && f.MaxPriceCents == 0
}

type FlightRepository interface {
	Search(ctx context.Context, filter FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, airline, flight_number, departure_city, arrival_city, departure_time, arrival_time, price_cents, total_seats, available_seats, created_at, updated_at`

func (r *PGFlightRepository) Search(ctx context.Context, filter FlightFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE available_seats > 0`
	args := make([]any, 0, 5)

	if filter.DepartureCity != "" {
		args = append(args, "%"+filter.DepartureCity+"%")
		query += fmt.Sprintf(" AND departure_city ILIKE $%d", len(args))
	}
	if filter.ArrivalCity != "" {
		args = append(args, "%"+filter.ArrivalCity+"%")
		query += fmt.Sprintf(" AND arrival_city ILIKE $%d", len(args))
	}
	if !filter.Date.IsZero() {
		args = append(args, filter.Date)
		query += fmt.Sprintf(" AND departure_time::date = $%d::date", len(args))
	}
	if filter.MinPriceCents > 0 {
		args = append(args, filter.MinPriceCents)
		query += fmt.Sprintf(" AND price_cents >= $%d", len(args))
	}
	if filter.MaxPriceCents > 0 {
		args = append(args, filter.MaxPriceCents)
		query += fmt.Sprintf(" AND price_cents <= $%d", len(args))
	}

	query += " ORDER BY departure_time ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.Airline, &f.FlightNumber, &f.DepartureCity, &f.ArrivalCity, &f.DepartureTime, &f.ArrivalTime, &f.PriceCents, &f.TotalSeats, &f.AvailableSeats, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.Airline, &f.FlightNumber, &f.DepartureCity, &f.ArrivalCity, &f.DepartureTime, &f.ArrivalTime, &f.PriceCents, &f.TotalSeats, &f.AvailableSeats, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
