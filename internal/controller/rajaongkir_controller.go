package controller

import (
	"net/http"
	"strconv"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/service"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/labstack/echo/v4"
)

const (
	ActionSearchDestinations = "searchDestinations"
	ActionCalculateShipping  = "calculateShipping"
	ActionGetCouriers        = "getCouriers"
)

// RajaOngkirController serves the browser's shipping lookups. It answers
// with bare {destinations|shippingOptions|couriers|error} bodies rather than
// the /api/v1 envelope.
type RajaOngkirController struct {
	service service.ShippingService
}

func CreateRajaOngkirController(e *echo.Echo, service service.ShippingService) {
	c := RajaOngkirController{
		service: service,
	}

	e.GET("/api/rajaongkir", c.Handle)
}

func (c *RajaOngkirController) Handle(e echo.Context) error {
	ctx := e.Request().Context()

	switch e.QueryParam("action") {
	case ActionSearchDestinations:
		limit, _ := strconv.Atoi(e.QueryParam("limit"))
		offset, _ := strconv.Atoi(e.QueryParam("offset"))

		destinations, err := c.service.SearchDestinations(ctx, e.QueryParam("search"), limit, offset)
		if err != nil {
			return writeRouteError(e, err)
		}
		return e.JSON(http.StatusOK, dto.DestinationsResponse{Destinations: destinations})

	case ActionCalculateShipping:
		destinationID := e.QueryParam("destinationId")
		if destinationID == "" {
			return e.JSON(http.StatusBadRequest, dto.RouteErrorResponse{Error: "destinationId is required"})
		}
		weight, _ := strconv.Atoi(e.QueryParam("weight"))

		options, err := c.service.CalculateShipping(ctx, destinationID, weight)
		if err != nil {
			return writeRouteError(e, err)
		}
		return e.JSON(http.StatusOK, dto.ShippingOptionsResponse{ShippingOptions: options})

	case ActionGetCouriers:
		return e.JSON(http.StatusOK, dto.CouriersResponse{Couriers: c.service.GetCouriers()})
	}

	return e.JSON(http.StatusBadRequest, dto.RouteErrorResponse{Error: "Invalid action"})
}

func writeRouteError(e echo.Context, err error) error {
	return e.JSON(errs.GetErrorStatusCode(err), dto.RouteErrorResponse{Error: errs.PublicMessage(err)})
}
