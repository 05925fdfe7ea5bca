package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/auth"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/service/reservation"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Auth         auth.AuthUseCase
	Flights      flights.FlightUseCase
	Reservations reservation.ReservationUseCase
	Stats        repository.ReservationRepository
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(deps),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.NoRoute(api.NotFoundHandler)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	root := router.Group("/api")
	api.NewAuthHandler(deps.Auth).Register(root)
	api.NewFlightHandler(deps.Flights).Register(root)
	api.NewStatsHandler(deps.Stats).Register(root)

	protected := router.Group("/api")
	protected.Use(api.AuthRequired(deps.Auth))
	api.NewBookingHandler(deps.Reservations).Register(protected)

	return router
}
