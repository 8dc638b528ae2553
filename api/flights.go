package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelbook/flightbooking/internal/domain"
	"github.com/travelbook/flightbooking/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/search-flights", h.search)
}

// search relays the provider's response body unchanged.
func (h *FlightHandler) search(c *gin.Context) {
	payload, err := h.service.Search(c.Request.Context(), domain.FlightQuery{
		DepartureIATA: c.Query("departure_iata"),
		ArrivalIATA:   c.Query("arrival_iata"),
		FlightDate:    c.Query("flight_date"),
	})
	if err != nil {
		writeError(c, err, withInternalMessage(msgFlightFetchError))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
