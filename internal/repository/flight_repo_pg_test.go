package repository

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewFlightRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewFlightRepository(pool)
	assert.NotNil(t, repo)
}

func TestFlightFilter_Empty(t *testing.T) {
	assert.True(t, FlightFilter{}.Empty())
	assert.False(t, FlightFilter{DepartureCity: "Tehran"}.Empty())
	assert.False(t, FlightFilter{ArrivalCity: "Mashhad"}.Empty())
	assert.False(t, FlightFilter{Date: time.Now()}.Empty())
	assert.False(t, FlightFilter{MinPriceCents: 1}.Empty())
	assert.False(t, FlightFilter{MaxPriceCents: 1}.Empty())
}
