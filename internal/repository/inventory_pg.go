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

// InventoryStore opens the unit of work the reservation engine runs its
// critical section in. Implementations must guarantee that SeatsForUpdate
// holds an exclusive lock on the flight row until Commit or Rollback, and
// that a committed decrement is visible to the next lock acquirer.
type InventoryStore interface {
	Begin(ctx context.Context) (InventoryTx, error)
}

type InventoryTx interface {
	// SeatsForUpdate reads the remaining seat count under an exclusive row
	// lock. Returns domain.ErrFlightNotFound for an unknown flight id.
	SeatsForUpdate(ctx context.Context, flightID int64) (int, error)
	DecrementSeats(ctx context.Context, flightID int64) error
	InsertReservation(ctx context.Context, r *domain.Reservation) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type PGInventoryStore struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

func NewInventoryStore(db *pgxpool.Pool, lockTimeout time.Duration) *PGInventoryStore {
	return &PGInventoryStore{db: db, lockTimeout: lockTimeout}
}

func (s *PGInventoryStore) Begin(ctx context.Context) (InventoryTx, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, &domain.TransientError{Cause: err}
	}

	// Bound the wait on the flight row lock. SET LOCAL dies with the
	// transaction, so no connection-level state leaks back into the pool.
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())); err != nil {
		_ = tx.Rollback(ctx)
		return nil, &domain.TransientError{Cause: err}
	}

	return &pgInventoryTx{tx: tx}, nil
}

type pgInventoryTx struct {
	tx pgx.Tx
}

func (t *pgInventoryTx) SeatsForUpdate(ctx context.Context, flightID int64) (int, error) {
	var remaining int
	err := t.tx.QueryRow(ctx, `SELECT available_seats FROM flights WHERE id=$1 FOR UPDATE`, flightID).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrFlightNotFound
		}
		// Lock timeout (55P03), deadlock (40P01), dropped connection and the
		// rest are all infrastructure: the caller may retry the whole call.
		return 0, &domain.TransientError{Cause: err}
	}
	return remaining, nil
}

func (t *pgInventoryTx) DecrementSeats(ctx context.Context, flightID int64) error {
	cmd, err := t.tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1, updated_at = now() WHERE id=$1`, flightID)
	if err != nil {
		return &domain.TransientError{Cause: err}
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func (t *pgInventoryTx) InsertReservation(ctx context.Context, r *domain.Reservation) error {
	err := t.tx.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id, status) VALUES ($1, $2, $3) RETURNING id, created_at`,
		r.UserID, r.FlightID, r.Status).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return &domain.TransientError{Cause: err}
	}
	return nil
}

func (t *pgInventoryTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return &domain.TransientError{Cause: err}
	}
	return nil
}

func (t *pgInventoryTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return &domain.TransientError{Cause: err}
	}
	return nil
}

var _ InventoryStore = (*PGInventoryStore)(nil)
var _ InventoryTx = (*pgInventoryTx)(nil)
