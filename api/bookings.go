package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/travelbook/flightbooking/internal/domain"
	"github.com/travelbook/flightbooking/internal/service/booking"
)

const (
	msgBookingCreated   = "Booking created successfully"
	msgBookingCancelled = "Booking successfully cancelled."
	msgHistoryCleared   = "Booking successfully cancelled and old cancelled bookings have been cleared."
)

type BookingHandler struct {
	service booking.BookingUseCase
}

// createBookingRequest accepts the snapshot under flightDetails or flight_details.
type createBookingRequest struct {
	FlightDetails domain.FlightDetails `json:"flightDetails"`
	Snapshot      domain.FlightDetails `json:"flight_details"`
}

func (r createBookingRequest) details() domain.FlightDetails {
	if !r.FlightDetails.Absent() {
		return r.FlightDetails
	}
	return r.Snapshot
}

type bookingRef struct {
	ID int64 `json:"id"`
}

type createBookingResponse struct {
	Message string     `json:"message"`
	Booking bookingRef `json:"booking"`
}

type cancelBookingResponse struct {
	Message        string `json:"message"`
	HistoryCleared bool   `json:"history_cleared"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/details", h.upcoming)
	router.GET("/summary", h.summary)
	router.PATCH("/:id/cancel", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		writeError(c, domain.ErrUnauthenticated)
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.service.CreateBooking(c.Request.Context(), session.UserID, req.details())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createBookingResponse{
		Message: msgBookingCreated,
		Booking: bookingRef{ID: id},
	})
}

func (h *BookingHandler) list(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		writeError(c, domain.ErrUnauthenticated)
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), session.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// upcoming answers with a list holding at most one booking.
func (h *BookingHandler) upcoming(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		writeError(c, domain.ErrUnauthenticated)
		return
	}

	next, err := h.service.GetUpcoming(c.Request.Context(), session.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	result := make([]domain.Booking, 0, 1)
	if next != nil {
		result = append(result, *next)
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) summary(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		writeError(c, domain.ErrUnauthenticated)
		return
	}

	count, err := h.service.GetSummary(c.Request.Context(), session.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		writeError(c, domain.ErrUnauthenticated)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeMessage(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	result, err := h.service.CancelBooking(c.Request.Context(), id, session.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	message := msgBookingCancelled
	if result.HistoryCleared {
		message = msgHistoryCleared
	}
	c.JSON(http.StatusOK, cancelBookingResponse{Message: message, HistoryCleared: result.HistoryCleared})
}
