package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightResponse struct {
	ID             int64  `json:"id"`
	Airline        string `json:"airline"`
	FlightNumber   string `json:"flight_number"`
	DepartureCity  string `json:"departure_city"`
	ArrivalCity    string `json:"arrival_city"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	PriceCents     int64  `json:"price_cents"`
	AvailableSeats int    `json:"available_seats"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights", h.search)
	router.GET("/flights/:id", h.get)
}

func (h *FlightHandler) search(c *gin.Context) {
	filter := repository.FlightFilter{
		DepartureCity: c.Query("departure"),
		ArrivalCity:   c.Query("arrival"),
	}
	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid date, expected YYYY-MM-DD"})
			return
		}
		filter.Date = parsed
	}
	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid min_price"})
			return
		}
		filter.MinPriceCents = v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid max_price"})
			return
		}
		filter.MaxPriceCents = v
	}

	list, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("flight search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": message(c, "flight_search_failed")})
		return
	}

	resp := make([]flightResponse, 0, len(list))
	for _, f := range list {
		resp = append(resp, toFlightResponse(f))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": message(c, "flight_not_found")})
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(*flight))
}

func toFlightResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:             f.ID,
		Airline:        f.Airline,
		FlightNumber:   f.FlightNumber,
		DepartureCity:  f.DepartureCity,
		ArrivalCity:    f.ArrivalCity,
		DepartureTime:  f.DepartureTime.Format(time.RFC3339),
		ArrivalTime:    f.ArrivalTime.Format(time.RFC3339),
		PriceCents:     f.PriceCents,
		AvailableSeats: f.AvailableSeats,
	}
}
