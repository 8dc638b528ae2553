package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/travelbook/flightbooking/config"
	"github.com/travelbook/flightbooking/internal/domain"
)

func TestFlightSearchKey(t *testing.T) {
	q := domain.FlightQuery{DepartureIATA: "JFK", ArrivalIATA: "LAX", FlightDate: "2026-10-20"}
	assert.Equal(t, "cache:flights:JFK:LAX:2026-10-20", flightSearchKey(q))
}

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379"}, time.Minute)
	assert.NotNil(t, c)
	assert.Equal(t, time.Minute, c.searchTTL)
	assert.NoError(t, c.Close())
}
