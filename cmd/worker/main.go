package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/email"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zlog.Logger = zlog.With().Str("service", "flightbooking-worker").Logger()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		zlog.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	reservationRepo := repository.NewReservationRepository(pool)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.ReservationEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				zlog.Warn().Err(err).Msg("decode event")
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			zlog.Warn().Err(err).Msg("consumer stopped")
		}
	}()

	sweep := time.Duration(cfg.Worker.AuditSweepMinutes) * time.Minute
	if sweep <= 0 {
		sweep = 5 * time.Minute
	}
	auditTicker := time.NewTicker(sweep)
	defer auditTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-auditTicker.C:
			// The inventory invariant the engine guarantees, checked against
			// the live store: remaining == total - confirmed for every flight.
			drift, err := reservationRepo.AuditInventory(ctx)
			if err != nil {
				zlog.Error().Err(err).Msg("inventory audit failed")
				continue
			}
			for _, d := range drift {
				zlog.Error().
					Int64("flight_id", d.FlightID).
					Int("total_seats", d.TotalSeats).
					Int("available_seats", d.AvailableSeats).
					Int("confirmed", d.Confirmed).
					Msg("inventory drift detected")
			}
			if len(drift) == 0 {
				zlog.Debug().Msg("inventory audit clean")
			}
		case s := <-sig:
			zlog.Info().Str("signal", s.String()).Msg("shutting down")
			return
		}
	}
}
