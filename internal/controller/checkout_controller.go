package controller

import (
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/middleware"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/service"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
)

type CheckoutController struct {
	service service.CheckoutService
}

func CreateCheckoutController(g *echo.Group, service service.CheckoutService) {
	c := CheckoutController{
		service: service,
	}

	g.GET("/checkout/addresses", c.GetAddresses, middleware.RequireCustomer)
	g.POST("/checkout/addresses/:id/select", c.SelectAddress, middleware.RequireCustomer)
	g.GET("/checkout/shipping", c.GetShipping)
	g.GET("/checkout/shipping/destinations", c.SearchDestinations)
	g.POST("/checkout/shipping/destination", c.SelectDestination)
	g.POST("/checkout/shipping/option", c.SelectShippingOption)
	g.POST("/checkout/shipping", c.ConfirmShipping)
}

func (c *CheckoutController) GetAddresses(e echo.Context) error {
	resp, err := c.service.GetAddressSelection(e.Request().Context())
	if err != nil {
		return writePageError(e, err)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CheckoutController) SelectAddress(e echo.Context) error {
	order, err := c.service.SelectAddress(e.Request().Context(), e.Param("id"))
	if err != nil {
		return writePageError(e, err)
	}

	return response.WriteSuccessResponse(e, "shipping address set", order.ShippingAddress)
}

func (c *CheckoutController) GetShipping(e echo.Context) error {
	resp, err := c.service.GetShippingStep(e.Request().Context(), sessionID(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CheckoutController) SearchDestinations(e echo.Context) error {
	state, err := c.service.SearchDestinations(e.Request().Context(), sessionID(e), e.QueryParam("q"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", state)
}

func (c *CheckoutController) SelectDestination(e echo.Context) error {
	payload := dto.SelectDestinationRequest{}
	if fields, err := bindAndValidate(e, "SelectDestination", &payload); err != nil {
		return response.WriteErrorResponse(e, err, fields)
	}

	state, err := c.service.SelectDestination(e.Request().Context(), sessionID(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", state)
}

func (c *CheckoutController) SelectShippingOption(e echo.Context) error {
	payload := dto.SelectShippingOptionRequest{}
	if fields, err := bindAndValidate(e, "SelectShippingOption", &payload); err != nil {
		return response.WriteErrorResponse(e, err, fields)
	}

	state, err := c.service.SelectShippingOption(e.Request().Context(), sessionID(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", state)
}

func (c *CheckoutController) ConfirmShipping(e echo.Context) error {
	resp, err := c.service.ConfirmShipping(e.Request().Context(), sessionID(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "shipping option saved", resp)
}
