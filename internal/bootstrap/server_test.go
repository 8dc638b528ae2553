package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/travelbook/flightbooking/config"
	"github.com/travelbook/flightbooking/internal/domain"
)

type stubVerifier struct{}

func (stubVerifier) Verify(raw string) (domain.Session, error) {
	if raw == "" {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	if raw != "valid" {
		return domain.Session{}, domain.ErrTokenInvalid
	}
	return domain.Session{UserID: 7}, nil
}

type stubBookings struct{}

func (stubBookings) CreateBooking(context.Context, int64, domain.FlightDetails) (int64, error) {
	return 1, nil
}

func (stubBookings) ListBookings(context.Context, int64) ([]domain.Booking, error) {
	return []domain.Booking{}, nil
}

func (stubBookings) GetUpcoming(context.Context, int64) (*domain.Booking, error) { return nil, nil }

func (stubBookings) GetSummary(context.Context, int64) (int64, error) { return 4, nil }

func (stubBookings) CancelBooking(_ context.Context, bookingID, _ int64) (domain.CancelResult, error) {
	return domain.CancelResult{BookingID: bookingID}, nil
}

type stubFlights struct{}

func (stubFlights) Search(context.Context, domain.FlightQuery) ([]byte, error) {
	return []byte(`{"data":[]}`), nil
}

func newTestRouter(t *testing.T, swaggerDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{HTTP: config.HTTPConfig{SwaggerDir: swaggerDir, CORSOrigins: []string{"*"}}}
	return NewRouter(cfg, zap.NewNop().Sugar(), Services{
		Bookings: stubBookings{},
		Flights:  stubFlights{},
		Tokens:   stubVerifier{},
	})
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_BookingsRequireToken(t *testing.T) {
	r := newTestRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/bookings/summary", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/bookings/summary", nil)
	req.Header.Set("Authorization", "Bearer valid")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4", w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest("PATCH", "/api/bookings/9/cancel", nil)
	req.Header.Set("x-auth-token", "valid")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_FlightSearchIsPublic(t *testing.T) {
	r := newTestRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/flights/search-flights?departure_iata=JFK&arrival_iata=LAX&flight_date=2026-11-01", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestRouter_ServesOpenAPIDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openapi.json"), []byte(`{"openapi":"3.0.3"}`), 0o600))
	r := newTestRouter(t, dir)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", openAPIPath, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"openapi":"3.0.3"}`, w.Body.String())
}
