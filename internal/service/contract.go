package service

import (
	"context"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
)

// ShippingAggregator is implemented by the RajaOngkir client.
type ShippingAggregator interface {
	SearchDestinations(ctx context.Context, search string, limit, offset int) ([]domain.Destination, error)
	CalculateCost(ctx context.Context, req dto.CostRequest) ([]domain.ShippingOption, error)
}

// PaymentStatusFetcher asks the payment gateway directly for a transaction.
type PaymentStatusFetcher interface {
	FetchPaymentMetadata(ctx context.Context, orderCode string) (domain.PaymentMetadata, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// ShippingRateFetcher is what the checkout shipping hook needs from the
// same-origin aggregator route.
type ShippingRateFetcher interface {
	SearchDestinations(ctx context.Context, search string, limit, offset int) ([]domain.Destination, error)
	CalculateShipping(ctx context.Context, destinationID string, weight int) ([]domain.ShippingOption, error)
}

type ShippingService interface {
	ShippingRateFetcher
	GetCouriers() []domain.Courier
}

type CheckoutService interface {
	GetAddressSelection(ctx context.Context) (dto.AddressSelectionResponse, error)
	SelectAddress(ctx context.Context, addressID string) (*domain.Order, error)
	GetShippingStep(ctx context.Context, sessionID string) (dto.ShippingStepResponse, error)
	SearchDestinations(ctx context.Context, sessionID, query string) (dto.ShippingRateState, error)
	SelectDestination(ctx context.Context, sessionID string, req dto.SelectDestinationRequest) (dto.ShippingRateState, error)
	SelectShippingOption(ctx context.Context, sessionID string, req dto.SelectShippingOptionRequest) (dto.ShippingRateState, error)
	ConfirmShipping(ctx context.Context, sessionID string) (dto.ShippingConfirmedResponse, error)
}

type ConfirmationService interface {
	Load(ctx context.Context, code string) (dto.ConfirmationView, error)
}

type CachePurgeService interface {
	Authorize(authorization string) error
	Purge(ctx context.Context, prefix string) (int64, error)
	PurgeAggregatorCache()
}

type AccountService interface {
	SignIn(ctx context.Context, req dto.SignInRequest) (dto.AuthResult, error)
	SignOut(ctx context.Context) error
	GetProfile(ctx context.Context) (dto.CustomerResponse, error)
	GetAddresses(ctx context.Context) ([]domain.Address, error)
	CreateAddress(ctx context.Context, req dto.AddressInput) (domain.Address, error)
	UpdateAddress(ctx context.Context, id string, req dto.AddressInput) (domain.Address, error)
	DeleteAddress(ctx context.Context, id string) error
	GetOrders(ctx context.Context, pagination dto.Pagination) (dto.OrderListResponse, error)
	GetOrder(ctx context.Context, code string) (dto.OrderDetailResponse, error)
	GetWishlist(ctx context.Context) ([]domain.WishlistItem, error)
	AddToWishlist(ctx context.Context, req dto.WishlistRequest) ([]domain.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, itemID string) ([]domain.WishlistItem, error)
}
