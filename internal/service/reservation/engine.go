package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ReservationUseCase interface {
	Reserve(ctx context.Context, userID, flightID int64) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]repository.ReservationDetail, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// FlightCacheInvalidator drops cached flight listings after a committed seat
// decrement. Best-effort: the cache has a TTL either way.
type FlightCacheInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

// Engine is the seat inventory reservation engine. It is the sole writer of
// flight seat counters and the sole creator of reservation rows. Correctness
// under concurrent calls rests entirely on the inventory store's row lock:
// the engine holds no in-process lock and assumes nothing about its host
// being single-threaded.
type Engine struct {
	inventory          repository.InventoryStore
	reservations       repository.ReservationRepository
	producer           Producer
	cache              FlightCacheInvalidator
	reservationsTopic  string
	notificationsTopic string
}

type EngineOption func(*Engine)

func WithNotificationsTopic(topic string) EngineOption {
	return func(e *Engine) {
		e.notificationsTopic = topic
	}
}

func WithFlightCache(cache FlightCacheInvalidator) EngineOption {
	return func(e *Engine) {
		e.cache = cache
	}
}

func NewEngine(
	inventory repository.InventoryStore,
	reservations repository.ReservationRepository,
	producer Producer,
	reservationsTopic string,
	opts ...EngineOption,
) *Engine {
	engine := &Engine{
		inventory:         inventory,
		reservations:      reservations,
		producer:          producer,
		reservationsTopic: reservationsTopic,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Reserve atomically checks remaining capacity, appends a confirmed
// reservation and decrements the seat counter, all inside one unit of work
// against the store. Either both writes commit or neither does. The engine
// never retries; a *domain.TransientError tells the caller the whole call is
// safe to retry.
func (e *Engine) Reserve(ctx context.Context, userID, flightID int64) (*domain.Reservation, error) {
	tx, err := e.inventory.Begin(ctx)
	if err != nil {
		observeOutcome(err)
		return nil, err
	}
	// No-op once the tx committed; any other exit path rolls back in full.
	defer func() { _ = tx.Rollback(ctx) }()

	remaining, err := tx.SeatsForUpdate(ctx, flightID)
	if err != nil {
		_ = tx.Rollback(ctx)
		observeOutcome(err)
		e.publishRejected(ctx, userID, flightID, err)
		return nil, err
	}
	if remaining <= 0 {
		_ = tx.Rollback(ctx)
		observeOutcome(domain.ErrNoCapacity)
		e.publishRejected(ctx, userID, flightID, domain.ErrNoCapacity)
		return nil, domain.ErrNoCapacity
	}

	res := &domain.Reservation{
		UserID:   userID,
		FlightID: flightID,
		Status:   domain.ReservationStatusConfirmed,
	}
	if err := tx.InsertReservation(ctx, res); err != nil {
		observeOutcome(err)
		return nil, err
	}
	if err := tx.DecrementSeats(ctx, flightID); err != nil {
		observeOutcome(err)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		observeOutcome(err)
		return nil, err
	}

	observeOutcome(nil)
	if e.cache != nil {
		if err := e.cache.InvalidateFlights(ctx); err != nil {
			log.Warn().Err(err).Msg("invalidate flights cache failed")
		}
	}
	e.publish(ctx, kafka.EventReservationConfirmed, res, "")
	return res, nil
}

func (e *Engine) ListByUser(ctx context.Context, userID int64) ([]repository.ReservationDetail, error) {
	return e.reservations.ListByUser(ctx, userID)
}

// publishRejected records a failed attempt on the event stream. It runs after
// the unit of work ended, so a slow broker can never widen the critical
// section, and a broker failure never turns a clean rejection into an error.
func (e *Engine) publishRejected(ctx context.Context, userID, flightID int64, cause error) {
	if errors.Is(cause, domain.ErrTransient) {
		// Transient aborts are not outcomes; the caller will retry.
		return
	}
	rejected := &domain.Reservation{
		UserID:   userID,
		FlightID: flightID,
		Status:   domain.ReservationStatusRejected,
	}
	e.publish(ctx, kafka.EventReservationRejected, rejected, cause.Error())
}

func (e *Engine) publish(ctx context.Context, eventType string, res *domain.Reservation, reason string) {
	if e.producer == nil || e.reservationsTopic == "" {
		return
	}
	created := res.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	event := kafka.ReservationEvent{
		Type:          eventType,
		EventID:       uuid.NewString(),
		ReservationID: res.ID,
		UserID:        res.UserID,
		FlightID:      res.FlightID,
		Status:        string(res.Status),
		Reason:        reason,
		CreatedAt:     created,
	}
	if err := e.producer.Publish(ctx, e.reservationsTopic, event.EventID, event); err != nil {
		log.Warn().Err(err).Str("type", eventType).Int64("flight_id", res.FlightID).Msg("publish reservation event failed")
		return
	}
	if e.notificationsTopic != "" {
		if err := e.producer.Publish(ctx, e.notificationsTopic, event.EventID, event); err != nil {
			log.Warn().Err(err).Str("type", eventType).Int64("flight_id", res.FlightID).Msg("publish notification failed")
		}
	}
}

var _ ReservationUseCase = (*Engine)(nil)
