package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/repository"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/rs/zerolog/log"
)

const (
	defaultOrderPageSize = 10
	maxOrderPageSize     = 50
)

type AccountServiceImpl struct {
	commerce repository.CommerceRepository
	method   string
}

func CreateAccountService(commerce repository.CommerceRepository, paymentMethodCode string) AccountService {
	return &AccountServiceImpl{
		commerce: commerce,
		method:   paymentMethodCode,
	}
}

func (s *AccountServiceImpl) SignIn(ctx context.Context, req dto.SignInRequest) (dto.AuthResult, error) {
	result, err := s.commerce.SignIn(ctx, req)
	if err != nil {
		return result, err
	}

	if result.Error != nil {
		log.Ctx(ctx).Info().Str("component", "SignIn").Str("error_code", result.Error.ErrorCode).Msg("sign in rejected")
		if strings.EqualFold(result.Error.ErrorCode, "INVALID_CREDENTIALS_ERROR") {
			return result, errs.ErrInvalidCredentialsEmail
		}
		return result, fmt.Errorf("%s: %w", result.Error.Message, errs.ErrClient)
	}

	return result, nil
}

func (s *AccountServiceImpl) SignOut(ctx context.Context) error {
	return s.commerce.SignOut(ctx)
}

func (s *AccountServiceImpl) GetProfile(ctx context.Context) (resp dto.CustomerResponse, err error) {
	customer, err := s.activeCustomer(ctx)
	if err != nil {
		return
	}

	resp = dto.CustomerResponse{
		ID:           customer.ID,
		FirstName:    customer.FirstName,
		LastName:     customer.LastName,
		EmailAddress: customer.EmailAddress,
		PhoneNumber:  customer.PhoneNumber,
	}

	return
}

func (s *AccountServiceImpl) GetAddresses(ctx context.Context) ([]domain.Address, error) {
	customer, err := s.activeCustomer(ctx)
	if err != nil {
		return nil, err
	}

	if customer.Addresses == nil {
		return []domain.Address{}, nil
	}
	return customer.Addresses, nil
}

func (s *AccountServiceImpl) CreateAddress(ctx context.Context, req dto.AddressInput) (domain.Address, error) {
	return s.commerce.CreateCustomerAddress(ctx, req)
}

func (s *AccountServiceImpl) UpdateAddress(ctx context.Context, id string, req dto.AddressInput) (domain.Address, error) {
	if err := s.ownsAddress(ctx, id); err != nil {
		return domain.Address{}, err
	}

	return s.commerce.UpdateCustomerAddress(ctx, id, req)
}

func (s *AccountServiceImpl) DeleteAddress(ctx context.Context, id string) error {
	if err := s.ownsAddress(ctx, id); err != nil {
		return err
	}

	ok, err := s.commerce.DeleteCustomerAddress(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrAddressNotFound
	}

	return nil
}

func (s *AccountServiceImpl) GetOrders(ctx context.Context, pagination dto.Pagination) (resp dto.OrderListResponse, err error) {
	limit := pagination.Limit
	if limit <= 0 || limit > maxOrderPageSize {
		limit = defaultOrderPageSize
	}
	page := pagination.Page
	if page <= 0 {
		page = 1
	}

	list, err := s.commerce.GetCustomerOrders(ctx, limit, (page-1)*limit)
	if err != nil {
		return
	}

	resp.Records = make([]dto.OrderSummaryResponse, 0, len(list.Items))
	for _, order := range list.Items {
		resp.Records = append(resp.Records, s.summarize(order))
	}
	resp.TotalItems = list.TotalItems
	resp.Page = page
	resp.Limit = limit

	return
}

func (s *AccountServiceImpl) GetOrder(ctx context.Context, code string) (resp dto.OrderDetailResponse, err error) {
	order, err := s.commerce.GetOrderByCode(ctx, code)
	if err != nil {
		return
	}
	if order == nil {
		return resp, errs.ErrOrderNotFound
	}

	resp.OrderSummaryResponse = s.summarize(*order)
	resp.SubTotal = utils.FormatRupiah(utils.MinorToDecimal(order.SubTotalWithTax))
	resp.Shipping = utils.FormatRupiah(utils.MinorToDecimal(order.ShippingWithTax))
	resp.ShippingAddress = order.ShippingAddress
	resp.ShippingRate = order.ShippingRate
	resp.Lines = make([]dto.OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       utils.FormatRupiah(utils.MinorToDecimal(line.LinePriceWithTax)),
			ImageURL:    line.FeaturedAssetURL,
		})
	}

	return
}

func (s *AccountServiceImpl) GetWishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	return s.commerce.GetWishlist(ctx)
}

func (s *AccountServiceImpl) AddToWishlist(ctx context.Context, req dto.WishlistRequest) ([]domain.WishlistItem, error) {
	return s.commerce.AddToWishlist(ctx, req.ProductVariantID)
}

func (s *AccountServiceImpl) RemoveFromWishlist(ctx context.Context, itemID string) ([]domain.WishlistItem, error) {
	return s.commerce.RemoveFromWishlist(ctx, itemID)
}

func (s *AccountServiceImpl) activeCustomer(ctx context.Context) (*domain.Customer, error) {
	customer, err := s.commerce.GetActiveCustomer(ctx)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errs.ErrNotLoggedIn
	}
	return customer, nil
}

func (s *AccountServiceImpl) ownsAddress(ctx context.Context, id string) error {
	customer, err := s.activeCustomer(ctx)
	if err != nil {
		return err
	}

	for _, a := range customer.Addresses {
		if a.ID == id {
			return nil
		}
	}
	return errs.ErrAddressNotFound
}

func (s *AccountServiceImpl) summarize(order domain.Order) dto.OrderSummaryResponse {
	summary := dto.OrderSummaryResponse{
		Code:  order.Code,
		State: order.State,
		Total: utils.FormatRupiah(utils.MinorToDecimal(order.TotalWithTax)),
	}
	if order.OrderPlacedAt != nil {
		summary.PlacedAt = utils.ConvertDateTimeToHumanReadableFormat(*order.OrderPlacedAt)
	}
	if p := order.LatestPaymentForMethod(s.method); p != nil {
		summary.PaymentState = string(p.State)
	}
	for _, line := range order.Lines {
		summary.TotalQuantity += line.Quantity
	}

	return summary
}
