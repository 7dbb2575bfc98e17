package controller

import (
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/middleware"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/service"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type AccountController struct {
	service service.AccountService
}

func CreateAccountController(g *echo.Group, service service.AccountService) {
	c := AccountController{
		service: service,
	}

	g.POST("/account/sign-in", c.SignIn)
	g.POST("/account/sign-out", c.SignOut)

	account := g.Group("/account", middleware.RequireCustomer)
	account.GET("", c.GetProfile)
	account.GET("/addresses", c.GetAddresses)
	account.POST("/addresses", c.CreateAddress)
	account.PUT("/addresses/:id", c.UpdateAddress)
	account.DELETE("/addresses/:id", c.DeleteAddress)
	account.GET("/orders", c.GetOrders)
	account.GET("/orders/:code", c.GetOrder)
	account.GET("/wishlist", c.GetWishlist)
	account.POST("/wishlist", c.AddToWishlist)
	account.DELETE("/wishlist/:id", c.RemoveFromWishlist)
}

func (c *AccountController) SignIn(e echo.Context) error {
	payload := dto.SignInRequest{}
	if fields, err := bindAndValidate(e, "SignIn", &payload); err != nil {
		return response.WriteErrorResponse(e, err, fields)
	}

	result, err := c.service.SignIn(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "signed in", map[string]string{
		"identifier": result.Identifier,
	})
}

func (c *AccountController) SignOut(e echo.Context) error {
	if err := c.service.SignOut(e.Request().Context()); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "SignOut").Msg("")
	}

	if sess := middleware.GetSession(e); sess != nil {
		sess.ClearAuth()
	}

	return response.WriteRedirect(e, middleware.SignInPath)
}

func (c *AccountController) GetProfile(e echo.Context) error {
	resp, err := c.service.GetProfile(e.Request().Context())
	if err != nil {
		return writePageError(e, err)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *AccountController) GetAddresses(e echo.Context) error {
	resp, err := c.service.GetAddresses(e.Request().Context())
	if err != nil {
		return writePageError(e, err)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *AccountController) CreateAddress(e echo.Context) error {
	payload := dto.AddressInput{}
	if fields, err := bindAndValidate(e, "CreateAddress", &payload); err != nil {
		return response.WriteErrorResponse(e, err, fields)
	}

	resp, err := c.service.CreateAddress(e.Request().Context(), payload)
	if err != nil {
		return writePageError(e, err)
	}

	return response.WriteSuccessResponse(e, "address created", resp)
}

func (c *AccountController) UpdateAddress(e echo.Context) error {
	payload := dto.AddressInput{}
	if fields, err := bindAndValidate(e, "UpdateAddress", &payload); err != nil {
		return response.WriteErrorResponse(e, err, fields)
	}

	resp, err := c.service.UpdateAddress(e.Request().Context(), e.Param("id"), payload)
	if err != nil {
		return writePageError(e, err)
	}

	return response.WriteSuccessResponse(e, "address updated", resp)
}

func (c *AccountController) DeleteAddress(e echo.Context) error {
	if err := c.service.DeleteAddress(e.Request().Context(), e.Param("id")); err != nil {
		return writePageError(e, err)
	}

	return response.WriteSuccessResponse(e, "address deleted", nil)
}

func (c *AccountController) GetOrders(e echo.Context) error {
	pagination := dto.Pagination{}
	if err := e.Bind(&pagination); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetOrders").Msg("")
	}

	resp, err := c.service.GetOrders(e.Request().Context(), pagination)
	if err != nil {
		return writePageError(e, err)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved orders", resp)
}

func (c *AccountController) GetOrder(e echo.Context) error {
	resp, err := c.service.GetOrder(e.Request().Context(), e.Param("code"))
	if err != nil {
		return writePageError(e, err)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *AccountController) GetWishlist(e echo.Context) error {
	resp, err := c.service.GetWishlist(e.Request().Context())
	if err != nil {
		return writePageError(e, err)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *AccountController) AddToWishlist(e echo.Context) error {
	payload := dto.WishlistRequest{}
	if fields, err := bindAndValidate(e, "AddToWishlist", &payload); err != nil {
		return response.WriteErrorResponse(e, err, fields)
	}

	resp, err := c.service.AddToWishlist(e.Request().Context(), payload)
	if err != nil {
		return writePageError(e, err)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *AccountController) RemoveFromWishlist(e echo.Context) error {
	resp, err := c.service.RemoveFromWishlist(e.Request().Context(), e.Param("id"))
	if err != nil {
		return writePageError(e, err)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
