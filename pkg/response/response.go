package response

import (
	"net/http"

	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors"`
}

// RedirectResponse is returned to XHR callers that cannot follow a 303 into
// a page route.
type RedirectResponse struct {
	Status   string `json:"status"`
	Redirect string `json:"redirect"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(http.StatusOK, resp)
}

func WriteErrorResponse(c echo.Context, err error, errors interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Message = errs.PublicMessage(err)
	resp.Errors = errors

	return c.JSON(statusCode, resp)
}

func WriteRedirect(c echo.Context, location string) error {
	if c.Request().Header.Get(echo.HeaderXRequestedWith) == "XMLHttpRequest" {
		return c.JSON(http.StatusOK, RedirectResponse{Status: "redirect", Redirect: location})
	}
	return c.Redirect(http.StatusSeeOther, location)
}
