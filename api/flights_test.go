package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/travelbook/flightbooking/internal/domain"
)

func newFlightContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", target, nil)
	return c, w
}

func TestFlightHandler_search(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	c, w := newFlightContext("/api/flights/search-flights?departure_iata=JFK&arrival_iata=LAX&flight_date=2026-11-01")
	payload := []byte(`{"pagination":{"count":1},"data":[{"flight_date":"2026-11-01"}]}`)
	q := domain.FlightQuery{DepartureIATA: "JFK", ArrivalIATA: "LAX", FlightDate: "2026-11-01"}
	mockService.On("Search", c.Request.Context(), q).Return(payload, nil).Once()

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(payload), w.Body.String())
	mockService.AssertExpectations(t)
}

func TestFlightHandler_search_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "missing params", err: domain.NewValidationError("Missing required search parameters."), wantStatus: http.StatusBadRequest, wantMsg: "Missing required search parameters."},
		{name: "provider rejected", err: &domain.UpstreamError{Info: "You have exceeded your monthly usage limit."}, wantStatus: http.StatusBadRequest, wantMsg: "You have exceeded your monthly usage limit."},
		{name: "transport failure", err: errors.New("dial tcp: timeout"), wantStatus: http.StatusInternalServerError, wantMsg: msgFlightFetchError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockFlightUseCase{}
			handler := NewFlightHandler(mockService)

			c, w := newFlightContext("/api/flights/search-flights?departure_iata=JFK")
			mockService.On("Search", c.Request.Context(), domain.FlightQuery{DepartureIATA: "JFK"}).Return(nil, tc.err).Once()

			handler.search(c)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantMsg, decodeMessage(t, w))
		})
	}
}
