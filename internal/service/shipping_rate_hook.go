package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	shippingaggregator "github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/shipping-aggregator"
	"github.com/rs/zerolog/log"
)

const (
	msgSearchFailed      = "Unable to search destinations. Please try again."
	msgCalculationFailed = "Unable to calculate shipping cost. Please try again."
)

// ShippingRateHook drives the checkout shipping state. Every failure ends up
// in State().Error; none of its methods return an error. A hook is owned by a
// single request and is not safe for concurrent use.
type ShippingRateHook struct {
	fetcher  ShippingRateFetcher
	state    dto.ShippingRateState
	onChange func(dto.ShippingRateState)
}

func NewShippingRateHook(fetcher ShippingRateFetcher, state dto.ShippingRateState) *ShippingRateHook {
	if state.Destinations == nil {
		state.Destinations = []domain.Destination{}
	}
	if state.ShippingOptions == nil {
		state.ShippingOptions = []domain.ShippingOption{}
	}

	return &ShippingRateHook{
		fetcher: fetcher,
		state:   state,
	}
}

// OnChange registers a callback invoked with a copy of the state after every
// transition.
func (h *ShippingRateHook) OnChange(fn func(dto.ShippingRateState)) {
	h.onChange = fn
}

func (h *ShippingRateHook) State() dto.ShippingRateState {
	state := h.state
	state.Destinations = append(make([]domain.Destination, 0, len(h.state.Destinations)), h.state.Destinations...)
	state.ShippingOptions = append(make([]domain.ShippingOption, 0, len(h.state.ShippingOptions)), h.state.ShippingOptions...)
	return state
}

func (h *ShippingRateHook) SearchDestinations(ctx context.Context, query string) []domain.Destination {
	h.state.Query = query

	if len([]rune(strings.TrimSpace(query))) < MinDestinationQueryLength {
		h.state.Destinations = []domain.Destination{}
		h.changed()
		return h.state.Destinations
	}

	h.state.IsSearching = true
	h.state.Error = ""
	h.changed()

	destinations, err := h.fetcher.SearchDestinations(ctx, query, DefaultDestinationLimit, 0)
	h.state.IsSearching = false
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ShippingRateHook").Msg("destination search failed")
		h.state.Destinations = []domain.Destination{}
		h.state.Error = userMessage(err, msgSearchFailed)
		h.changed()
		return h.state.Destinations
	}

	if destinations == nil {
		destinations = []domain.Destination{}
	}
	h.state.Destinations = destinations
	h.changed()

	return destinations
}

// SelectDestination drops the previous selection and quote before asking
// for a new one.
func (h *ShippingRateHook) SelectDestination(ctx context.Context, destination domain.Destination, weight int) {
	h.state.SelectedDestination = &destination
	h.state.SelectedOption = nil
	h.state.ShippingOptions = []domain.ShippingOption{}
	h.changed()

	h.CalculateShipping(ctx, destination.ID, weight)
}

func (h *ShippingRateHook) CalculateShipping(ctx context.Context, destinationID string, weight int) {
	if weight <= 0 {
		weight = DefaultShippingWeight
	}

	h.state.Weight = weight
	h.state.IsLoadingShipping = true
	h.state.Error = ""
	h.changed()

	options, err := h.fetcher.CalculateShipping(ctx, destinationID, weight)
	h.state.IsLoadingShipping = false
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ShippingRateHook").Msg("shipping calculation failed")
		h.state.ShippingOptions = []domain.ShippingOption{}
		h.state.Error = userMessage(err, msgCalculationFailed)
		h.changed()
		return
	}

	if options == nil {
		options = []domain.ShippingOption{}
	}
	h.state.ShippingOptions = options
	h.changed()
}

// SelectShippingOption reports false for a key missing from the current
// quote.
func (h *ShippingRateHook) SelectShippingOption(key string) bool {
	for _, option := range h.state.ShippingOptions {
		if option.Key() == key {
			selected := option
			h.state.SelectedOption = &selected
			h.changed()
			return true
		}
	}

	return false
}

func (h *ShippingRateHook) Reset() {
	h.state = dto.ShippingRateState{
		Destinations:    []domain.Destination{},
		ShippingOptions: []domain.ShippingOption{},
	}
	h.changed()
}

func (h *ShippingRateHook) changed() {
	if h.onChange != nil {
		h.onChange(h.State())
	}
}

// userMessage prefers the aggregator's own message over the generic one.
func userMessage(err error, fallback string) string {
	var aggErr *shippingaggregator.AggregatorError
	if errors.As(err, &aggErr) && aggErr.Message != "" {
		return aggErr.Message
	}
	return fallback
}
