package email

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/rs/zerolog/log"
)

// Sender is the notification sink for settled reservation attempts. Delivery
// is a log line until a real mail transport is wired in.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	log.Info().
		Str("type", event.Type).
		Int64("user_id", event.UserID).
		Int64("flight_id", event.FlightID).
		Str("status", event.Status).
		Msg("reservation notification")
	return nil
}
