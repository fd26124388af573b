package domain

import "github.com/pkg/errors"

var (
	ErrUnknownFlightType = errors.New("unknown flight type")
	ErrInvalidFlight     = errors.New("invalid flight")
	ErrFlightNotFound    = errors.New("flight not found")
	ErrAirlineNotFound   = errors.New("airline not found")
	ErrAirlineNotEmpty   = errors.New("airline must be empty")
	ErrInvalidIndex      = errors.New("invalid index")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrMalformedSnapshot = errors.New("malformed snapshot")
	ErrSnapshotNotFound  = errors.New("snapshot not found")
)
