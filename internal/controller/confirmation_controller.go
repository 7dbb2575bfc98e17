package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/service"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type ConfirmationController struct {
	service service.ConfirmationService
	poller  *service.ConfirmationPoller
}

func CreateConfirmationController(g *echo.Group, svc service.ConfirmationService, poller *service.ConfirmationPoller) {
	c := ConfirmationController{
		service: svc,
		poller:  poller,
	}

	g.GET("/checkout/confirmation/:code", c.GetConfirmation)
	g.GET("/checkout/confirmation/:code/events", c.StreamConfirmation)
}

// GetConfirmation is the one-shot loader. The browser follows the polling
// directives in the view.
func (c *ConfirmationController) GetConfirmation(e echo.Context) error {
	code := e.Param("code")

	view, err := c.service.Load(e.Request().Context(), code)
	if err != nil {
		return response.WriteErrorResponse(e, err, service.ErrorView(code, err))
	}

	return response.WriteSuccessResponse(e, "", view)
}

// StreamConfirmation runs the polling server side and pushes every view as
// a Server-Sent Event named after its phase. The stream ends with an "end"
// event; a disconnecting client cancels the polling.
func (c *ConfirmationController) StreamConfirmation(e echo.Context) error {
	code := e.Param("code")
	ctx := e.Request().Context()

	w := e.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	err := c.poller.Run(ctx, code, func(view dto.ConfirmationView) error {
		return writeEvent(w, string(view.Phase), view)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Ctx(ctx).Warn().Err(err).Str("component", "StreamConfirmation").Str("order_code", code).Msg("")
	}

	if ctx.Err() == nil {
		_ = writeEvent(w, "end", struct{}{})
	}

	return nil
}

func writeEvent(w *echo.Response, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	w.Flush()

	return nil
}
