package shippingaggregator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	circuitbreaker "github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/httpclient"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

const requestTimeout = 10 * time.Second

// AggregatorError is an error payload reported in the response meta block.
type AggregatorError struct {
	Code    int
	Message string
}

func (e *AggregatorError) Error() string {
	return fmt.Sprintf("rajaongkir: %d %s", e.Code, e.Message)
}

func (e *AggregatorError) Unwrap() error {
	return errs.ErrUpstream
}

type upstreamStatus struct {
	code int
	body []byte
}

type RajaOngkirClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[upstreamStatus]
}

func CreateRajaOngkirClient(config *config.Config) *RajaOngkirClient {
	return NewRajaOngkirClient(config.RajaOngkirConfig.BaseURL, config.RajaOngkirConfig.APIKey, httpclient.NewClient(requestTimeout))
}

func NewRajaOngkirClient(baseURL, apiKey string, httpClient *http.Client) *RajaOngkirClient {
	return &RajaOngkirClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		breaker:    circuitbreaker.CreateCircuitBreaker[upstreamStatus]("rajaongkir"),
	}
}

func (c *RajaOngkirClient) SearchDestinations(ctx context.Context, search string, limit, offset int) ([]domain.Destination, error) {
	query := url.Values{}
	query.Set("search", search)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	body, err := c.send(ctx, httpclient.HttpRequest{
		URL:    c.baseURL + "/destination/domestic-destination",
		Method: http.MethodGet,
		Query:  query,
		Headers: map[string]string{
			"key": c.apiKey,
		},
	})
	if err != nil {
		return nil, err
	}

	var resp dto.RajaOngkirDestinationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SearchDestinations").Msg("")
		return nil, fmt.Errorf("rajaongkir: decoding destinations: %w", errs.ErrUpstream)
	}

	// No match is reported as a 404 meta block.
	if resp.Meta.Code == http.StatusNotFound {
		return []domain.Destination{}, nil
	}
	if resp.Meta.Code >= http.StatusBadRequest {
		return nil, &AggregatorError{Code: resp.Meta.Code, Message: resp.Meta.Message}
	}

	destinations := make([]domain.Destination, 0, len(resp.Data))
	for _, d := range resp.Data {
		destinations = append(destinations, domain.Destination{
			ID:              strconv.Itoa(d.ID),
			Label:           d.Label,
			ProvinceName:    d.ProvinceName,
			CityName:        d.CityName,
			DistrictName:    d.DistrictName,
			SubdistrictName: d.SubdistrictName,
			ZipCode:         d.ZipCode,
		})
	}

	return destinations, nil
}

func (c *RajaOngkirClient) CalculateCost(ctx context.Context, req dto.CostRequest) ([]domain.ShippingOption, error) {
	form := url.Values{}
	form.Set("origin", req.Origin)
	form.Set("destination", req.Destination)
	form.Set("weight", strconv.Itoa(req.Weight))
	form.Set("courier", strings.Join(req.Couriers, ":"))
	form.Set("price", "lowest")

	body, err := c.send(ctx, httpclient.HttpRequest{
		URL:    c.baseURL + "/calculate/domestic-cost",
		Method: http.MethodPost,
		Body:   []byte(form.Encode()),
		Headers: map[string]string{
			"key":          c.apiKey,
			"Content-Type": "application/x-www-form-urlencoded",
		},
	})
	if err != nil {
		return nil, err
	}

	var resp dto.RajaOngkirCostResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CalculateCost").Msg("")
		return nil, fmt.Errorf("rajaongkir: decoding costs: %w", errs.ErrUpstream)
	}

	if resp.Meta.Code >= http.StatusBadRequest {
		return nil, &AggregatorError{Code: resp.Meta.Code, Message: resp.Meta.Message}
	}

	options := make([]domain.ShippingOption, 0, len(resp.Data))
	for _, r := range resp.Data {
		minDays, maxDays := utils.ParseEstimatedDays(r.Etd)
		options = append(options, domain.ShippingOption{
			CourierCode:      strings.ToLower(r.Code),
			CourierName:      r.Name,
			Service:          r.Service,
			Description:      r.Description,
			Cost:             r.Cost,
			EstimatedDays:    r.Etd,
			MinEstimatedDays: minDays,
			MaxEstimatedDays: maxDays,
		})
	}

	return options, nil
}

// send returns the raw body. Server side failures count against the breaker,
// 4xx answers carry a meta block the caller decodes.
func (c *RajaOngkirClient) send(ctx context.Context, req httpclient.HttpRequest) ([]byte, error) {
	res, err := c.breaker.Execute(func() (upstreamStatus, error) {
		statusCode, body, err := httpclient.Do(ctx, c.httpClient, req)
		if err != nil {
			return upstreamStatus{}, err
		}
		if statusCode >= http.StatusInternalServerError {
			return upstreamStatus{}, fmt.Errorf("status %d", statusCode)
		}
		return upstreamStatus{code: statusCode, body: body}, nil
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, fmt.Errorf("rajaongkir: %w", errs.ErrUpstreamUnavailable)
	case err != nil:
		log.Ctx(ctx).Error().Err(err).Str("component", "RajaOngkirClient").Str("url", req.URL).Msg("")
		return nil, fmt.Errorf("rajaongkir: %w: %v", errs.ErrUpstream, err)
	}

	if res.code >= http.StatusBadRequest && len(res.body) == 0 {
		return nil, &AggregatorError{Code: res.code, Message: http.StatusText(res.code)}
	}

	return res.body, nil
}
