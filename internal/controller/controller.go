package controller

import (
	"errors"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/middleware"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/validator"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	AccountOrdersPath    = "/account/orders"
	AccountAddressesPath = "/account/addresses"
)

// bindAndValidate reports malformed bodies and per-field failures as
// ErrValidation, the latter with the failing fields.
func bindAndValidate(e echo.Context, component string, payload interface{}) ([]response.ValidationError, error) {
	if err := e.Bind(payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", component).Msg("")
		return nil, errs.ErrValidation
	}

	if err := e.Validate(payload); err != nil {
		return validator.ValidationErrors(err), errs.ErrValidation
	}

	return nil, nil
}

// writePageError sends missing resources to a fallback page instead of an
// error body.
func writePageError(e echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrNotLoggedIn):
		return response.WriteRedirect(e, middleware.SignInPath)
	case errors.Is(err, errs.ErrOrderNotFound):
		return response.WriteRedirect(e, AccountOrdersPath)
	case errors.Is(err, errs.ErrAddressNotFound):
		return response.WriteRedirect(e, AccountAddressesPath)
	}

	return response.WriteErrorResponse(e, err, nil)
}

func sessionID(e echo.Context) string {
	if sess := middleware.GetSession(e); sess != nil {
		return sess.ID
	}
	return ""
}
