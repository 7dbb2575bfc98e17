package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer   = http.StatusInternalServerError
	ErrStatusClient           = http.StatusBadRequest
	ErrStatusNotLoggedIn      = http.StatusUnauthorized
	ErrStatusUnauthorized     = http.StatusUnauthorized
	ErrStatusNotFound         = http.StatusNotFound
	ErrStatusMethodNotAllowed = http.StatusMethodNotAllowed
	ErrStatusConflict         = http.StatusConflict
	ErrStatusBadGateway       = http.StatusBadGateway
	ErrStatusUnavailable      = http.StatusServiceUnavailable
)

var (
	ErrInternalServer          = errors.New("Internal server error")
	ErrClient                  = errors.New("Bad request")
	ErrValidation              = errors.New("Invalid request payload")
	ErrNotLoggedIn             = errors.New("Unauthorized access")
	ErrUnauthorized            = errors.New("Unauthorized")
	ErrInvalidCredentialsEmail = errors.New("Email or password is incorrect")
	ErrNotFound                = errors.New("Resource not found")
	ErrOrderNotFound           = errors.New("Order not found")
	ErrAddressNotFound         = errors.New("Address not found")
	ErrMethodNotAllowed        = errors.New("Method not allowed")
	ErrConflict                = errors.New("Conflicting record found")
	ErrUpstream                = errors.New("Upstream service error")
	ErrUpstreamUnavailable     = errors.New("Upstream service is temporarily unavailable")
	ErrNoShippingOption        = errors.New("No shipping option selected")
	ErrInvalidPrefix           = errors.New("Prefix is outside the cache namespace")
)

var errorMap = map[error]int{
	ErrInternalServer:          ErrStatusInternalServer,
	ErrClient:                  ErrStatusClient,
	ErrValidation:              ErrStatusClient,
	ErrNotLoggedIn:             ErrStatusNotLoggedIn,
	ErrUnauthorized:            ErrStatusUnauthorized,
	ErrInvalidCredentialsEmail: ErrStatusUnauthorized,
	ErrNotFound:                ErrStatusNotFound,
	ErrOrderNotFound:           ErrStatusNotFound,
	ErrAddressNotFound:         ErrStatusNotFound,
	ErrMethodNotAllowed:        ErrStatusMethodNotAllowed,
	ErrConflict:                ErrStatusConflict,
	ErrUpstream:                ErrStatusBadGateway,
	ErrUpstreamUnavailable:     ErrStatusUnavailable,
	ErrNoShippingOption:        ErrStatusClient,
	ErrInvalidPrefix:           ErrStatusClient,
}

// GetErrorStatusCode resolves wrapped errors as well, so callers can add
// context with fmt.Errorf("...: %w", errs.ErrUpstream).
func GetErrorStatusCode(err error) int {
	if errStatusCode, ok := errorMap[err]; ok {
		return errStatusCode
	}
	for known, status := range errorMap {
		if errors.Is(err, known) {
			return status
		}
	}
	return errorMap[ErrInternalServer]
}

// PublicMessage returns the message of the sentinel an error wraps so
// upstream details never reach the client.
func PublicMessage(err error) string {
	if _, ok := errorMap[err]; ok {
		return err.Error()
	}
	for known := range errorMap {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return ErrInternalServer.Error()
}
