package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

func newTestConfig() *config.Config {
	return &config.Config{
		RajaOngkirConfig: config.RajaOngkirConfig{
			OriginID: "17473",
			Couriers: []string{"jne", "sicepat", "wahyu"},
		},
		MidtransConfig: config.MidtransConfig{PaymentMethodCode: "midtrans"},
		SessionConfig:  config.SessionConfig{KeyPrefix: "storefront:session:"},
		CacheConfig:    config.CacheConfig{KeyPrefix: "storefront:cache:"},
	}
}

func newTestCache(t *testing.T) (repository.CacheRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return repository.CreateRedisRepository(client), mr
}

type fakeCommerceRepo struct {
	customer      *domain.Customer
	order         *domain.Order
	activeOrder   *domain.Order
	orders        domain.OrderList
	authResult    dto.AuthResult
	orderResult   dto.OrderResult
	deleteOK      bool
	wishlist      []domain.WishlistItem
	err           error
	orderErr      error
	orderCalls    int
	takeSkip      [2]int
	addressInput  *dto.AddressInput
	shippingRate  *domain.ShippingRate
	updatedID     string
	deletedID     string
	signedOut     bool
	addedVariant  string
	removedItemID string
}

func (f *fakeCommerceRepo) SignIn(ctx context.Context, req dto.SignInRequest) (dto.AuthResult, error) {
	return f.authResult, f.err
}

func (f *fakeCommerceRepo) SignOut(ctx context.Context) error {
	f.signedOut = true
	return f.err
}

func (f *fakeCommerceRepo) GetActiveCustomer(ctx context.Context) (*domain.Customer, error) {
	return f.customer, f.err
}

func (f *fakeCommerceRepo) CreateCustomerAddress(ctx context.Context, input dto.AddressInput) (domain.Address, error) {
	f.addressInput = &input
	return domain.Address{ID: "new", FullName: input.FullName}, f.err
}

func (f *fakeCommerceRepo) UpdateCustomerAddress(ctx context.Context, id string, input dto.AddressInput) (domain.Address, error) {
	f.updatedID = id
	f.addressInput = &input
	return domain.Address{ID: id, FullName: input.FullName}, f.err
}

func (f *fakeCommerceRepo) DeleteCustomerAddress(ctx context.Context, id string) (bool, error) {
	f.deletedID = id
	return f.deleteOK, f.err
}

func (f *fakeCommerceRepo) GetCustomerOrders(ctx context.Context, take, skip int) (domain.OrderList, error) {
	f.takeSkip = [2]int{take, skip}
	return f.orders, f.err
}

func (f *fakeCommerceRepo) GetOrderByCode(ctx context.Context, code string) (*domain.Order, error) {
	f.orderCalls++
	return f.order, f.orderErr
}

func (f *fakeCommerceRepo) GetActiveOrder(ctx context.Context) (*domain.Order, error) {
	return f.activeOrder, f.err
}

func (f *fakeCommerceRepo) SetOrderShippingAddress(ctx context.Context, input dto.AddressInput) (dto.OrderResult, error) {
	f.addressInput = &input
	return f.orderResult, f.err
}

func (f *fakeCommerceRepo) SetOrderShippingRate(ctx context.Context, rate domain.ShippingRate) (dto.OrderResult, error) {
	f.shippingRate = &rate
	return f.orderResult, f.err
}

func (f *fakeCommerceRepo) GetWishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	return f.wishlist, f.err
}

func (f *fakeCommerceRepo) AddToWishlist(ctx context.Context, productVariantID string) ([]domain.WishlistItem, error) {
	f.addedVariant = productVariantID
	return f.wishlist, f.err
}

func (f *fakeCommerceRepo) RemoveFromWishlist(ctx context.Context, itemID string) ([]domain.WishlistItem, error) {
	f.removedItemID = itemID
	return f.wishlist, f.err
}

type fakeAggregator struct {
	destinations []domain.Destination
	options      []domain.ShippingOption
	err          error
	searchCalls  int
	costCalls    int
	lastCost     dto.CostRequest
}

func (f *fakeAggregator) SearchDestinations(ctx context.Context, search string, limit, offset int) ([]domain.Destination, error) {
	f.searchCalls++
	return f.destinations, f.err
}

func (f *fakeAggregator) CalculateCost(ctx context.Context, req dto.CostRequest) ([]domain.ShippingOption, error) {
	f.costCalls++
	f.lastCost = req
	return f.options, f.err
}

// fakeRateFetcher stands in for the shipping service behind the hook.
type fakeRateFetcher struct {
	destinations []domain.Destination
	options      []domain.ShippingOption
	searchErr    error
	calcErr      error
	searchCalls  int
	calcCalls    int
	lastWeight   int
	onCalculate  func()
}

func (f *fakeRateFetcher) SearchDestinations(ctx context.Context, search string, limit, offset int) ([]domain.Destination, error) {
	f.searchCalls++
	return f.destinations, f.searchErr
}

func (f *fakeRateFetcher) CalculateShipping(ctx context.Context, destinationID string, weight int) ([]domain.ShippingOption, error) {
	f.calcCalls++
	f.lastWeight = weight
	if f.onCalculate != nil {
		f.onCalculate()
	}
	return f.options, f.calcErr
}

type publishedMessage struct {
	key   string
	value []byte
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, publishedMessage{key: key, value: value})
	return f.err
}

func (f *fakePublisher) published() []publishedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]publishedMessage(nil), f.messages...)
}

type fakeStatusFetcher struct {
	metadata domain.PaymentMetadata
	err      error
	calls    int
}

func (f *fakeStatusFetcher) FetchPaymentMetadata(ctx context.Context, orderCode string) (domain.PaymentMetadata, error) {
	f.calls++
	return f.metadata, f.err
}

func testOptions() []domain.ShippingOption {
	return []domain.ShippingOption{
		{CourierCode: "jne", CourierName: "JNE", Service: "REG", Cost: 18000, EstimatedDays: "2-3 day", MinEstimatedDays: 2, MaxEstimatedDays: 3},
		{CourierCode: "sicepat", CourierName: "SiCepat", Service: "BEST", Cost: 12000, EstimatedDays: "1 day", MinEstimatedDays: 1, MaxEstimatedDays: 1},
	}
}
