package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/service/booking"
	"github.com/Domenick1991/airdesk/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

var errInvalidPosition = errors.New("position must be a non-negative integer")

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAirlineNotFound),
		errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrTicketNotFound),
		errors.Is(err, domain.ErrInvalidFlight),
		errors.Is(err, domain.ErrInvalidIndex):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAirlineNotEmpty):
		return http.StatusConflict
	case errors.Is(err, domain.ErrMalformedSnapshot):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownFlightType),
		errors.Is(err, flights.ErrEmptyAirlineName),
		errors.Is(err, flights.ErrInvalidDistance),
		errors.Is(err, flights.ErrInvalidPrice),
		errors.Is(err, booking.ErrEmptyPassengerName),
		errors.Is(err, errInvalidPosition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func positionParam(c *gin.Context, name string) (int, error) {
	idx, err := strconv.Atoi(c.Param(name))
	if err != nil || idx < 0 {
		return 0, errors.Wrapf(errInvalidPosition, "%s %q", name, c.Param(name))
	}
	return idx, nil
}
