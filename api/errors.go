package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelbook/flightbooking/internal/domain"
	"github.com/travelbook/flightbooking/internal/logger"
)

const (
	msgNoToken          = "No token, authorization denied"
	msgTokenExpired     = "Token has expired. Please log in again."
	msgTokenInvalid     = "Token is not valid."
	msgBookingNotFound  = "Booking not found or you do not have permission to cancel it."
	msgInvalidCreds     = "Invalid credentials"
	msgNotFound         = "Resource not found."
	msgConflict         = "Email or username already in use."
	msgServerError      = "Server error"
	msgFlightFetchError = "Error fetching flight data"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, messageResponse{Message: message})
}

// routeMessage replaces the default message of one error kind on a single route.
type routeMessage struct {
	kind    error
	message string
}

func withMessage(kind error, message string) routeMessage {
	return routeMessage{kind: kind, message: message}
}

// withInternalMessage rewords the generic server error.
func withInternalMessage(message string) routeMessage {
	return routeMessage{message: message}
}

func (o routeMessage) matches(err error, status int) bool {
	if o.kind == nil {
		return status == http.StatusInternalServerError
	}
	return errors.Is(err, o.kind)
}

// writeError maps err to a status and a {"message"} body. Overrides change the
// wording only, never the status. Unrecognised errors are logged and reported
// as a generic server error.
func writeError(c *gin.Context, err error, overrides ...routeMessage) {
	status, message := classifyError(err)
	if status == http.StatusInternalServerError {
		logger.Errorf(c.Request.Context(), "%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	for _, o := range overrides {
		if o.matches(err, status) {
			message = o.message
			break
		}
	}
	writeMessage(c, status, message)
}

func classifyError(err error) (int, string) {
	var (
		validation *domain.ValidationError
		upstream   *domain.UpstreamError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message
	case errors.As(err, &upstream):
		return http.StatusBadRequest, upstream.Info
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, msgInvalidCreds
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, msgNoToken
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, msgTokenExpired
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, msgTokenInvalid
	case errors.Is(err, domain.ErrNotFoundOrForbidden):
		return http.StatusNotFound, msgBookingNotFound
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, msgConflict
	default:
		return http.StatusInternalServerError, msgServerError
	}
}
