package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	svc       CheckoutService
	commerce  *fakeCommerceRepo
	fetcher   *fakeRateFetcher
	publisher *fakePublisher
}

func newCheckoutFixture(t *testing.T) checkoutFixture {
	t.Helper()

	cache, _ := newTestCache(t)
	f := checkoutFixture{
		commerce:  &fakeCommerceRepo{customer: &domain.Customer{ID: "c1", Addresses: testAddresses()}},
		fetcher:   &fakeRateFetcher{},
		publisher: &fakePublisher{},
	}
	f.svc = CreateCheckoutService(f.commerce, cache, f.fetcher, f.publisher, newTestConfig())

	return f
}

func TestCheckoutService_GetAddressSelection(t *testing.T) {
	t.Run("anonymous session", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.commerce.customer = nil

		_, err := f.svc.GetAddressSelection(context.Background())
		assert.ErrorIs(t, err, errs.ErrNotLoggedIn)
	})

	t.Run("default address without an order address", func(t *testing.T) {
		f := newCheckoutFixture(t)

		resp, err := f.svc.GetAddressSelection(context.Background())
		require.NoError(t, err)
		assert.Equal(t, dto.SelectorReady, resp.Addresses.State)
		assert.Equal(t, "2", resp.Addresses.SelectedID)
	})

	t.Run("order address wins over the default", func(t *testing.T) {
		f := newCheckoutFixture(t)
		orderAddress := testAddresses()[0]
		orderAddress.ID = ""
		f.commerce.activeOrder = &domain.Order{Code: "ORD1", ShippingAddress: orderAddress}

		resp, err := f.svc.GetAddressSelection(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "1", resp.Addresses.SelectedID)
	})

	t.Run("no saved addresses", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.commerce.customer.Addresses = nil

		resp, err := f.svc.GetAddressSelection(context.Background())
		require.NoError(t, err)
		assert.Equal(t, dto.SelectorEmpty, resp.Addresses.State)
	})
}

func TestCheckoutService_SelectAddress(t *testing.T) {
	t.Run("unknown address", func(t *testing.T) {
		f := newCheckoutFixture(t)

		_, err := f.svc.SelectAddress(context.Background(), "99")
		assert.ErrorIs(t, err, errs.ErrAddressNotFound)
		assert.Nil(t, f.commerce.addressInput)
	})

	t.Run("address is copied onto the order", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.commerce.orderResult = dto.OrderResult{Order: &domain.Order{Code: "ORD1"}}

		order, err := f.svc.SelectAddress(context.Background(), "2")
		require.NoError(t, err)
		assert.Equal(t, "ORD1", order.Code)
		require.NotNil(t, f.commerce.addressInput)
		assert.Equal(t, "Jl. Kemang 5", f.commerce.addressInput.StreetLine1)
		assert.Equal(t, "12730", f.commerce.addressInput.PostalCode)
	})

	t.Run("no active order", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.commerce.orderResult = dto.OrderResult{Error: &dto.ErrorResult{ErrorCode: "NO_ACTIVE_ORDER_ERROR", Message: "There is no active Order"}}

		_, err := f.svc.SelectAddress(context.Background(), "1")
		assert.ErrorIs(t, err, errs.ErrOrderNotFound)
	})

	t.Run("other union errors are client errors", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.commerce.orderResult = dto.OrderResult{Error: &dto.ErrorResult{ErrorCode: "ORDER_MODIFICATION_ERROR", Message: "Order cannot be modified"}}

		_, err := f.svc.SelectAddress(context.Background(), "1")
		assert.ErrorIs(t, err, errs.ErrClient)
	})
}

func TestCheckoutService_ShippingFlow(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.fetcher.destinations = []domain.Destination{{ID: "31555", Label: "CIBEUNYING, BANDUNG", CityName: "BANDUNG"}}
	f.fetcher.options = testOptions()

	state, err := f.svc.SearchDestinations(ctx, "sess-1", "bandung")
	require.NoError(t, err)
	require.Len(t, state.Destinations, 1)

	// Full destination details come from the stored search results.
	state, err = f.svc.SelectDestination(ctx, "sess-1", dto.SelectDestinationRequest{ID: "31555", Weight: 1500})
	require.NoError(t, err)
	require.NotNil(t, state.SelectedDestination)
	assert.Equal(t, "BANDUNG", state.SelectedDestination.CityName)
	assert.Equal(t, 1500, f.fetcher.lastWeight)
	assert.Len(t, state.ShippingOptions, 2)

	_, err = f.svc.SelectShippingOption(ctx, "sess-1", dto.SelectShippingOptionRequest{Key: "tiki:ONS"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = f.svc.SelectShippingOption(ctx, "sess-1", dto.SelectShippingOptionRequest{Key: "sicepat:BEST"})
	require.NoError(t, err)

	step, err := f.svc.GetShippingStep(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, dto.SelectorReady, step.Shipping.State)
	assert.Equal(t, "sicepat:BEST", step.Shipping.SelectedID)

	// Other sessions do not see this state.
	other, err := f.svc.GetShippingStep(ctx, "sess-2")
	require.NoError(t, err)
	assert.Equal(t, dto.SelectorEmpty, other.Shipping.State)

	f.commerce.orderResult = dto.OrderResult{Order: &domain.Order{Code: "ORD1", TotalWithTax: 15800000}}
	confirmed, err := f.svc.ConfirmShipping(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, dto.ShippingConfirmedResponse{OrderCode: "ORD1", ShippingRate: "Rp 12.000", Total: "Rp 158.000"}, confirmed)

	require.NotNil(t, f.commerce.shippingRate)
	assert.Equal(t, domain.ShippingRate{
		CourierCode:   "sicepat",
		CourierName:   "SiCepat",
		Service:       "BEST",
		Cost:          12000,
		EstimatedDays: "1 day",
		DestinationID: "31555",
	}, *f.commerce.shippingRate)

	published := f.publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, "ORD1", published[0].key)

	var msg struct {
		EventType string                    `json:"event_type"`
		Data      dto.ShippingSelectedEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(published[0].value, &msg))
	assert.Equal(t, dto.EventShippingOptionSelected, msg.EventType)
	assert.Equal(t, "sess-1", msg.Data.SessionID)
}

func TestCheckoutService_ConfirmShippingWithoutSelection(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.ConfirmShipping(context.Background(), "sess-1")
	assert.ErrorIs(t, err, errs.ErrNoShippingOption)
	assert.Nil(t, f.commerce.shippingRate)
	assert.Empty(t, f.publisher.published())
}

func TestCheckoutService_NewDestinationDropsSelection(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.fetcher.options = testOptions()

	_, err := f.svc.SelectDestination(ctx, "sess-1", dto.SelectDestinationRequest{ID: "31555"})
	require.NoError(t, err)
	_, err = f.svc.SelectShippingOption(ctx, "sess-1", dto.SelectShippingOptionRequest{Key: "jne:REG"})
	require.NoError(t, err)

	state, err := f.svc.SelectDestination(ctx, "sess-1", dto.SelectDestinationRequest{ID: "17000", Label: "SURABAYA"})
	require.NoError(t, err)
	assert.Nil(t, state.SelectedOption)
	assert.Equal(t, "SURABAYA", state.SelectedDestination.Label)

	_, err = f.svc.ConfirmShipping(ctx, "sess-1")
	assert.ErrorIs(t, err, errs.ErrNoShippingOption)
}
