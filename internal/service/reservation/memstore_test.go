package reservation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

// memInventory implements the inventory store contract in memory for
// concurrency tests: SeatsForUpdate takes a per-flight mutex that is held
// until Commit or Rollback, mirroring the row lock the Postgres store
// provides. Writes are staged and applied atomically on Commit.
type memInventory struct {
	mu           sync.Mutex
	flights      map[int64]*memFlight
	reservations []domain.Reservation
	nextID       int64

	failBegin  bool
	failCommit bool
}

type memFlight struct {
	mu        sync.Mutex
	total     int
	remaining int
}

func newMemInventory() *memInventory {
	return &memInventory{flights: map[int64]*memFlight{}}
}

func (s *memInventory) addFlight(id int64, total, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flights[id] = &memFlight{total: total, remaining: remaining}
}

func (s *memInventory) remaining(id int64) int {
	s.mu.Lock()
	f := s.flights[id]
	s.mu.Unlock()
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remaining
}

func (s *memInventory) confirmedCount(flightID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.reservations {
		if r.FlightID == flightID && r.Status == domain.ReservationStatusConfirmed {
			n++
		}
	}
	return n
}

func (s *memInventory) Begin(ctx context.Context) (repository.InventoryTx, error) {
	if s.failBegin {
		return nil, &domain.TransientError{Cause: context.DeadlineExceeded}
	}
	return &memTx{store: s}, nil
}

type memTx struct {
	store     *memInventory
	locked    *memFlight
	decrement bool
	staged    []*domain.Reservation
	done      bool
}

func (t *memTx) SeatsForUpdate(ctx context.Context, flightID int64) (int, error) {
	t.store.mu.Lock()
	f, ok := t.store.flights[flightID]
	t.store.mu.Unlock()
	if !ok {
		return 0, domain.ErrFlightNotFound
	}
	f.mu.Lock() // held until Commit/Rollback, like FOR UPDATE
	t.locked = f
	return f.remaining, nil
}

func (t *memTx) DecrementSeats(ctx context.Context, flightID int64) error {
	t.decrement = true
	return nil
}

func (t *memTx) InsertReservation(ctx context.Context, r *domain.Reservation) error {
	t.staged = append(t.staged, r)
	return nil
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	if t.store.failCommit {
		t.release()
		return &domain.TransientError{Cause: context.DeadlineExceeded}
	}

	t.store.mu.Lock()
	for _, r := range t.staged {
		t.store.nextID++
		r.ID = t.store.nextID
		r.CreatedAt = time.Now()
		t.store.reservations = append(t.store.reservations, *r)
	}
	t.store.mu.Unlock()

	if t.decrement && t.locked != nil {
		t.locked.remaining--
	}
	t.release()
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.staged = nil
	t.decrement = false
	t.release()
	return nil
}

func (t *memTx) release() {
	if t.locked != nil {
		t.locked.mu.Unlock()
		t.locked = nil
	}
	t.done = true
}

// The mem store also satisfies ReservationRepository so a single fake backs
// the whole engine in tests.

func (s *memInventory) ListByUser(ctx context.Context, userID int64) ([]repository.ReservationDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []repository.ReservationDetail
	for _, r := range s.reservations {
		if r.UserID == userID {
			out = append(out, repository.ReservationDetail{
				ReservationID: r.ID,
				Status:        r.Status,
				CreatedAt:     r.CreatedAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memInventory) StatsByDepartureCity(ctx context.Context) ([]repository.CityStats, error) {
	return nil, nil
}

func (s *memInventory) AuditInventory(ctx context.Context) ([]repository.InventoryDrift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var drift []repository.InventoryDrift
	for id, f := range s.flights {
		confirmed := 0
		for _, r := range s.reservations {
			if r.FlightID == id && r.Status == domain.ReservationStatusConfirmed {
				confirmed++
			}
		}
		if f.remaining != f.total-confirmed {
			drift = append(drift, repository.InventoryDrift{
				FlightID:       id,
				TotalSeats:     f.total,
				AvailableSeats: f.remaining,
				Confirmed:      confirmed,
			})
		}
	}
	return drift, nil
}

var _ repository.InventoryStore = (*memInventory)(nil)
var _ repository.ReservationRepository = (*memInventory)(nil)
