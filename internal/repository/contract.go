package repository

import (
	"context"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
)

// CommerceRepository reads and writes through the commerce backend's Shop
// API. The caller's auth token travels in ctx (see commerce.WithTokenHolder).
type CommerceRepository interface {
	SignIn(ctx context.Context, req dto.SignInRequest) (dto.AuthResult, error)
	SignOut(ctx context.Context) error
	GetActiveCustomer(ctx context.Context) (*domain.Customer, error)
	CreateCustomerAddress(ctx context.Context, input dto.AddressInput) (domain.Address, error)
	UpdateCustomerAddress(ctx context.Context, id string, input dto.AddressInput) (domain.Address, error)
	DeleteCustomerAddress(ctx context.Context, id string) (bool, error)
	GetCustomerOrders(ctx context.Context, take, skip int) (domain.OrderList, error)
	GetOrderByCode(ctx context.Context, code string) (*domain.Order, error)
	GetActiveOrder(ctx context.Context) (*domain.Order, error)
	SetOrderShippingAddress(ctx context.Context, input dto.AddressInput) (dto.OrderResult, error)
	SetOrderShippingRate(ctx context.Context, rate domain.ShippingRate) (dto.OrderResult, error)
	GetWishlist(ctx context.Context) ([]domain.WishlistItem, error)
	AddToWishlist(ctx context.Context, productVariantID string) ([]domain.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, itemID string) ([]domain.WishlistItem, error)
}

// CacheRepository is the key-value store shared by the aggregator cache, the
// checkout hook state and the purge endpoint.
type CacheRepository interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ScanKeys(ctx context.Context, match string, cursor uint64, count int64) (keys []string, next uint64, err error)
	DeleteKeys(ctx context.Context, keys ...string) (int64, error)
}
