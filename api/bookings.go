package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/reservation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type BookingHandler struct {
	service reservation.ReservationUseCase
}

type createBookingRequest struct {
	FlightID int64 `json:"flight_id"`
}

type bookingResponse struct {
	BookingID int64  `json:"booking_id"`
	UserID    int64  `json:"user_id"`
	FlightID  int64  `json:"flight_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type bookingDetailResponse struct {
	BookingID     int64  `json:"booking_id"`
	BookingDate   string `json:"booking_date"`
	Status        string `json:"status"`
	Airline       string `json:"airline"`
	FlightNumber  string `json:"flight_number"`
	DepartureCity string `json:"departure_city"`
	ArrivalCity   string `json:"arrival_city"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	PriceCents    int64  `json:"price_cents"`
}

func NewBookingHandler(service reservation.ReservationUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.create)
	router.GET("/my-bookings", h.listMine)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FlightID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": message(c, "flight_id_required")})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": message(c, "token_invalid")})
		return
	}

	res, err := h.service.Reserve(c.Request.Context(), userID, req.FlightID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoCapacity):
			c.JSON(http.StatusBadRequest, gin.H{"message": message(c, "no_seats")})
		case errors.Is(err, domain.ErrFlightNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": message(c, "flight_not_found")})
		case errors.Is(err, domain.ErrTransient):
			// Safe to retry: the engine left no partial state behind.
			c.Header("Retry-After", "1")
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": message(c, "booking_retry")})
		default:
			log.Error().Err(err).Int64("flight_id", req.FlightID).Msg("booking failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": message(c, "booking_failed")})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": message(c, "booking_success"),
		"booking": bookingResponse{
			BookingID: res.ID,
			UserID:    res.UserID,
			FlightID:  res.FlightID,
			Status:    string(res.Status),
			CreatedAt: res.CreatedAt.Format(time.RFC3339),
		},
	})
}

func (h *BookingHandler) listMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": message(c, "token_invalid")})
		return
	}

	details, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("list bookings failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": message(c, "bookings_failed")})
		return
	}

	resp := make([]bookingDetailResponse, 0, len(details))
	for _, d := range details {
		resp = append(resp, bookingDetailResponse{
			BookingID:     d.ReservationID,
			BookingDate:   d.CreatedAt.Format(time.RFC3339),
			Status:        string(d.Status),
			Airline:       d.Airline,
			FlightNumber:  d.FlightNumber,
			DepartureCity: d.DepartureCity,
			ArrivalCity:   d.ArrivalCity,
			DepartureTime: d.DepartureTime.Format(time.RFC3339),
			ArrivalTime:   d.ArrivalTime.Format(time.RFC3339),
			PriceCents:    d.PriceCents,
		})
	}
	c.JSON(http.StatusOK, resp)
}
