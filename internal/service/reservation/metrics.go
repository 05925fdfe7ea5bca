package reservation

import (
	"errors"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var outcomeCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "flightbooking_reservation_outcomes_total",
	Help: "Reservation attempts by outcome kind.",
}, []string{"outcome"})

func observeOutcome(err error) {
	outcomeCounter.WithLabelValues(outcomeLabel(err)).Inc()
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "confirmed"
	case errors.Is(err, domain.ErrNoCapacity):
		return "no_capacity"
	case errors.Is(err, domain.ErrFlightNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrTransient):
		return "transient"
	default:
		return "error"
	}
}
