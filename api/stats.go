package api

import (
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type StatsHandler struct {
	reservations repository.ReservationRepository
}

type cityStatsResponse struct {
	DepartureCity     string  `json:"departure_city"`
	Bookings          int64   `json:"bookings"`
	AvgPriceCents     float64 `json:"avg_price_cents"`
	TotalRevenueCents int64   `json:"total_revenue_cents"`
}

func NewStatsHandler(reservations repository.ReservationRepository) *StatsHandler {
	return &StatsHandler{reservations: reservations}
}

func (h *StatsHandler) Register(router *gin.RouterGroup) {
	router.GET("/booking-stats", h.stats)
}

func (h *StatsHandler) stats(c *gin.Context) {
	stats, err := h.reservations.StatsByDepartureCity(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("booking stats failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": message(c, "stats_failed")})
		return
	}

	var total int64
	resp := make([]cityStatsResponse, 0, len(stats))
	for _, s := range stats {
		total += s.Bookings
		resp = append(resp, cityStatsResponse{
			DepartureCity:     s.DepartureCity,
			Bookings:          s.Bookings,
			AvgPriceCents:     s.AvgPriceCents,
			TotalRevenueCents: s.TotalRevenueCents,
		})
	}
	if total == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": message(c, "no_data_found")})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": resp})
}
