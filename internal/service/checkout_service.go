package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/repository"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const shippingStateTTL = 24 * time.Hour

type CheckoutServiceImpl struct {
	commerce  repository.CommerceRepository
	cache     repository.CacheRepository
	shipping  ShippingRateFetcher
	publisher EventPublisher
	config    *config.Config
}

func CreateCheckoutService(commerce repository.CommerceRepository, cache repository.CacheRepository, shipping ShippingRateFetcher, publisher EventPublisher, config *config.Config) CheckoutService {
	return &CheckoutServiceImpl{
		commerce:  commerce,
		cache:     cache,
		shipping:  shipping,
		publisher: publisher,
		config:    config,
	}
}

func (s *CheckoutServiceImpl) GetAddressSelection(ctx context.Context) (resp dto.AddressSelectionResponse, err error) {
	customer, err := s.commerce.GetActiveCustomer(ctx)
	if err != nil {
		return
	}
	if customer == nil {
		return resp, errs.ErrNotLoggedIn
	}

	order, err := s.commerce.GetActiveOrder(ctx)
	if err != nil {
		return
	}

	selectedID := ""
	for _, a := range customer.Addresses {
		if order != nil && a.SameDestination(order.ShippingAddress) {
			selectedID = a.ID
			break
		}
		if a.DefaultShippingAddress && selectedID == "" {
			selectedID = a.ID
		}
	}

	resp.Addresses = NewAddressSelector(customer.Addresses, selectedID, false).View()

	return
}

func (s *CheckoutServiceImpl) SelectAddress(ctx context.Context, addressID string) (*domain.Order, error) {
	customer, err := s.commerce.GetActiveCustomer(ctx)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errs.ErrNotLoggedIn
	}

	var chosen *domain.Address
	NewAddressSelector(customer.Addresses, "", false).Select(addressID, func(a domain.Address) {
		chosen = &a
	})
	if chosen == nil {
		return nil, errs.ErrAddressNotFound
	}

	result, err := s.commerce.SetOrderShippingAddress(ctx, dto.AddressInputFromAddress(*chosen))
	if err != nil {
		return nil, err
	}

	return orderFromResult(ctx, "SelectAddress", result)
}

func (s *CheckoutServiceImpl) GetShippingStep(ctx context.Context, sessionID string) (dto.ShippingStepResponse, error) {
	state := s.loadState(ctx, sessionID)

	selectedKey := ""
	if state.SelectedOption != nil {
		selectedKey = state.SelectedOption.Key()
	}

	return dto.ShippingStepResponse{
		State:    state,
		Shipping: NewShippingSelector(state.ShippingOptions, selectedKey, state.IsLoadingShipping).View(),
	}, nil
}

func (s *CheckoutServiceImpl) SearchDestinations(ctx context.Context, sessionID, query string) (dto.ShippingRateState, error) {
	hook := NewShippingRateHook(s.shipping, s.loadState(ctx, sessionID))
	hook.SearchDestinations(ctx, query)

	return s.saveState(ctx, sessionID, hook.State())
}

func (s *CheckoutServiceImpl) SelectDestination(ctx context.Context, sessionID string, req dto.SelectDestinationRequest) (dto.ShippingRateState, error) {
	state := s.loadState(ctx, sessionID)

	destination := domain.Destination{ID: req.ID, Label: req.Label}
	for _, d := range state.Destinations {
		if d.ID == req.ID {
			destination = d
			break
		}
	}

	hook := NewShippingRateHook(s.shipping, state)
	hook.SelectDestination(ctx, destination, req.Weight)

	return s.saveState(ctx, sessionID, hook.State())
}

func (s *CheckoutServiceImpl) SelectShippingOption(ctx context.Context, sessionID string, req dto.SelectShippingOptionRequest) (dto.ShippingRateState, error) {
	hook := NewShippingRateHook(s.shipping, s.loadState(ctx, sessionID))
	if !hook.SelectShippingOption(req.Key) {
		return hook.State(), fmt.Errorf("unknown shipping option %q: %w", req.Key, errs.ErrValidation)
	}

	return s.saveState(ctx, sessionID, hook.State())
}

// ConfirmShipping stores the selected option on the active order.
func (s *CheckoutServiceImpl) ConfirmShipping(ctx context.Context, sessionID string) (resp dto.ShippingConfirmedResponse, err error) {
	state := s.loadState(ctx, sessionID)
	if state.SelectedOption == nil || state.SelectedDestination == nil {
		return resp, errs.ErrNoShippingOption
	}

	option := *state.SelectedOption
	rate := domain.ShippingRate{
		CourierCode:   option.CourierCode,
		CourierName:   option.CourierName,
		Service:       option.Service,
		Cost:          option.Cost,
		EstimatedDays: option.EstimatedDays,
		DestinationID: state.SelectedDestination.ID,
	}

	result, err := s.commerce.SetOrderShippingRate(ctx, rate)
	if err != nil {
		return
	}

	order, err := orderFromResult(ctx, "ConfirmShipping", result)
	if err != nil {
		return
	}

	s.publish(ctx, dto.EventShippingOptionSelected, order.Code, dto.ShippingSelectedEvent{
		OrderCode:     order.Code,
		SessionID:     sessionID,
		CourierCode:   rate.CourierCode,
		Service:       rate.Service,
		Cost:          rate.Cost,
		DestinationID: rate.DestinationID,
	})

	resp.OrderCode = order.Code
	resp.ShippingRate = utils.FormatRupiah(decimal.NewFromInt(rate.Cost))
	resp.Total = utils.FormatRupiah(utils.MinorToDecimal(order.TotalWithTax))

	return
}

func (s *CheckoutServiceImpl) stateKey(sessionID string) string {
	return s.config.SessionConfig.KeyPrefix + sessionID + ":shipping"
}

// loadState falls back to an empty state when nothing usable is stored.
func (s *CheckoutServiceImpl) loadState(ctx context.Context, sessionID string) dto.ShippingRateState {
	var state dto.ShippingRateState

	raw, found, err := s.cache.Get(ctx, s.stateKey(sessionID))
	if err != nil || !found {
		return state
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "CheckoutShippingState").Msg("discarding unreadable state")
		return dto.ShippingRateState{}
	}

	// A stored loading flag belongs to a request that never finished.
	state.IsLoadingShipping = false
	state.IsSearching = false

	return state
}

func (s *CheckoutServiceImpl) saveState(ctx context.Context, sessionID string, state dto.ShippingRateState) (dto.ShippingRateState, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return state, fmt.Errorf("encoding shipping state: %w", err)
	}

	if err := s.cache.Set(ctx, s.stateKey(sessionID), raw, shippingStateTTL); err != nil {
		return state, fmt.Errorf("storing shipping state: %w", errs.ErrInternalServer)
	}

	return state, nil
}

func (s *CheckoutServiceImpl) publish(ctx context.Context, eventType, key string, data interface{}) {
	publishEvent(ctx, s.publisher, eventType, key, data)
}

func publishEvent(ctx context.Context, publisher EventPublisher, eventType, key string, data interface{}) {
	msg, err := json.Marshal(dto.KafkaMessage{EventType: eventType, Data: data})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", eventType).Msg("")
		return
	}

	if err := publisher.Publish(ctx, key, msg); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", eventType).Msg("failed to publish event")
	}
}

// orderFromResult turns the ErrorResult side of a union into a sentinel.
func orderFromResult(ctx context.Context, component string, result dto.OrderResult) (*domain.Order, error) {
	if result.Error == nil && result.Order != nil {
		return result.Order, nil
	}

	if result.Error == nil {
		return nil, errs.ErrInternalServer
	}

	log.Ctx(ctx).Warn().Str("component", component).Str("error_code", result.Error.ErrorCode).Msg(result.Error.Message)
	if strings.EqualFold(result.Error.ErrorCode, "NO_ACTIVE_ORDER_ERROR") {
		return nil, fmt.Errorf("%s: %w", result.Error.Message, errs.ErrOrderNotFound)
	}

	return nil, fmt.Errorf("%s: %w", result.Error.Message, errs.ErrClient)
}
