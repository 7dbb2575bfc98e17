package controller

import (
	"net/http"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/service"
	"github.com/labstack/echo/v4"
)

type CachePurgeController struct {
	service service.CachePurgeService
}

func CreateCachePurgeController(e *echo.Echo, service service.CachePurgeService) {
	c := CachePurgeController{
		service: service,
	}

	e.Any("/api/cache-purge", c.Purge)
}

// Purge answers every method so non-POST callers get a JSON 405.
func (c *CachePurgeController) Purge(e echo.Context) error {
	if e.Request().Method != http.MethodPost {
		e.Response().Header().Set(echo.HeaderAllow, http.MethodPost)
		return e.JSON(http.StatusMethodNotAllowed, dto.RouteErrorResponse{Error: "Method not allowed"})
	}

	if err := c.service.Authorize(e.Request().Header.Get(echo.HeaderAuthorization)); err != nil {
		return e.JSON(http.StatusUnauthorized, dto.RouteErrorResponse{Error: "Unauthorized"})
	}

	purged, err := c.service.Purge(e.Request().Context(), e.QueryParam("prefix"))
	if err != nil {
		return writeRouteError(e, err)
	}

	return e.JSON(http.StatusOK, dto.CachePurgeResponse{Success: true, PurgedKeys: purged})
}
