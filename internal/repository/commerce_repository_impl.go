package repository

import (
	"context"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/commerce"
	"github.com/rs/zerolog/log"
)

type graphqlRunner interface {
	Run(ctx context.Context, query string, vars map[string]interface{}, resp interface{}) error
}

type CommerceRepositoryImpl struct {
	client graphqlRunner
}

func CreateCommerceRepository(client graphqlRunner) CommerceRepository {
	return &CommerceRepositoryImpl{
		client: client,
	}
}

func (r *CommerceRepositoryImpl) SignIn(ctx context.Context, req dto.SignInRequest) (result dto.AuthResult, err error) {
	var resp struct {
		Login struct {
			Typename   string `json:"__typename"`
			ID         string `json:"id"`
			Identifier string `json:"identifier"`
			ErrorCode  string `json:"errorCode"`
			Message    string `json:"message"`
		} `json:"login"`
	}

	err = r.client.Run(ctx, loginMutation, map[string]interface{}{
		"username":   req.Email,
		"password":   req.Password,
		"rememberMe": req.RememberMe,
	}, &resp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SignIn").Msg("")
		return
	}

	if resp.Login.Typename != "CurrentUser" {
		result.Error = &dto.ErrorResult{ErrorCode: resp.Login.ErrorCode, Message: resp.Login.Message}
		return
	}

	result.UserID = resp.Login.ID
	result.Identifier = resp.Login.Identifier
	if holder := commerce.TokenHolderFromContext(ctx); holder != nil && holder.Refreshed() {
		result.AuthToken = holder.Token()
	}

	return
}

func (r *CommerceRepositoryImpl) SignOut(ctx context.Context) (err error) {
	var resp struct {
		Logout struct {
			Success bool `json:"success"`
		} `json:"logout"`
	}

	err = r.client.Run(ctx, logoutMutation, nil, &resp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SignOut").Msg("")
	}

	return
}

func (r *CommerceRepositoryImpl) GetActiveCustomer(ctx context.Context) (*domain.Customer, error) {
	var resp struct {
		ActiveCustomer *customerPayload `json:"activeCustomer"`
	}

	err := r.client.Run(ctx, activeCustomerQuery, nil, &resp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetActiveCustomer").Msg("")
		return nil, err
	}

	if resp.ActiveCustomer == nil {
		return nil, nil
	}

	return resp.ActiveCustomer.toDomain(), nil
}

func (r *CommerceRepositoryImpl) CreateCustomerAddress(ctx context.Context, input dto.AddressInput) (domain.Address, error) {
	var resp struct {
		CreateCustomerAddress addressPayload `json:"createCustomerAddress"`
	}

	err := r.client.Run(ctx, createAddressMutation, map[string]interface{}{
		"input": addressVariables(input, true),
	}, &resp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CreateCustomerAddress").Msg("")
		return domain.Address{}, err
	}

	return resp.CreateCustomerAddress.toDomain(), nil
}

func (r *CommerceRepositoryImpl) UpdateCustomerAddress(ctx context.Context, id string, input dto.AddressInput) (domain.Address, error) {
	var resp struct {
		UpdateCustomerAddress addressPayload `json:"updateCustomerAddress"`
	}

	vars := addressVariables(input, true)
	vars["id"] = id

	err := r.client.Run(ctx, updateAddressMutation, map[string]interface{}{
		"input": vars,
	}, &resp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateCustomerAddress").Msg("")
		return domain.Address{}, err
	}

	return resp.UpdateCustomerAddress.toDomain(), nil
}

func (r *CommerceRepositoryImpl) DeleteCustomerAddress(ctx context.Context, id string) (bool, error) {
	var resp struct {
		DeleteCustomerAddress struct {
			Success bool `json:"success"`
		} `json:"deleteCustomerAddress"`
	}

	err := r.client.Run(ctx, deleteAddressMutation, map[string]interface{}{"id": id}, &resp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteCustomerAddress").Msg("")
		return false, err
	}

	return resp.DeleteCustomerAddress.Success, nil
}

func (r *CommerceRepositoryImpl) GetCustomerOrders(ctx context.Context, take, skip int) (data domain.OrderList, err error) {
	var resp struct {
		ActiveCustomer *struct {
			Orders struct {
				Items      []orderPayload `json:"items"`
				TotalItems int            `json:"totalItems"`
			} `json:"orders"`
		} `json:"activeCustomer"`
	}

	err = r.client.Run(ctx, customerOrdersQuery, map[string]interface{}{
		"options": map[string]interface{}{
			"take":   take,
			"skip":   skip,
			"sort":   map[string]string{"orderPlacedAt": "DESC"},
			"filter": map[string]interface{}{"active": map[string]bool{"eq": false}},
		},
	}, &resp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetCustomerOrders").Msg("")
		return
	}

	if resp.ActiveCustomer == nil {
		return
	}

	data.TotalItems = resp.ActiveCustomer.Orders.TotalItems
	for _, o := range resp.ActiveCustomer.Orders.Items {
		data.Items = append(data.Items, *o.toDomain())
	}

	return
}

func (r *CommerceRepositoryImpl) GetOrderByCode(ctx context.Context, code string) (*domain.Order, error) {
	var resp struct {
		OrderByCode *orderPayload `json:"orderByCode"`
	}

	err := r.client.Run(ctx, orderByCodeQuery, map[string]interface{}{"code": code}, &resp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrderByCode").Str("order_code", code).Msg("")
		return nil, err
	}

	if resp.OrderByCode == nil {
		return nil, nil
	}

	return resp.OrderByCode.toDomain(), nil
}

func (r *CommerceRepositoryImpl) GetActiveOrder(ctx context.Context) (*domain.Order, error) {
	var resp struct {
		ActiveOrder *orderPayload `json:"activeOrder"`
	}

	err := r.client.Run(ctx, activeOrderQuery, nil, &resp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetActiveOrder").Msg("")
		return nil, err
	}

	if resp.ActiveOrder == nil {
		return nil, nil
	}

	return resp.ActiveOrder.toDomain(), nil
}

func (r *CommerceRepositoryImpl) SetOrderShippingAddress(ctx context.Context, input dto.AddressInput) (dto.OrderResult, error) {
	var resp struct {
		SetOrderShippingAddress orderResultPayload `json:"setOrderShippingAddress"`
	}

	err := r.client.Run(ctx, setShippingAddressMutation, map[string]interface{}{
		"input": addressVariables(input, false),
	}, &resp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SetOrderShippingAddress").Msg("")
		return dto.OrderResult{}, err
	}

	return resp.SetOrderShippingAddress.toResult(), nil
}

func (r *CommerceRepositoryImpl) SetOrderShippingRate(ctx context.Context, rate domain.ShippingRate) (dto.OrderResult, error) {
	var resp struct {
		SetOrderCustomFields orderResultPayload `json:"setOrderCustomFields"`
	}

	err := r.client.Run(ctx, setOrderCustomFieldsMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"customFields": map[string]interface{}{
				"courierCode":           rate.CourierCode,
				"courierName":           rate.CourierName,
				"courierService":        rate.Service,
				"shippingCost":          rate.Cost,
				"shippingEtd":           rate.EstimatedDays,
				"shippingDestinationId": rate.DestinationID,
			},
		},
	}, &resp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SetOrderShippingRate").Msg("")
		return dto.OrderResult{}, err
	}

	return resp.SetOrderCustomFields.toResult(), nil
}

func (r *CommerceRepositoryImpl) GetWishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	var resp struct {
		Wishlist *wishlistPayload `json:"activeCustomerWishlist"`
	}

	err := r.client.Run(ctx, wishlistQuery, nil, &resp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetWishlist").Msg("")
		return nil, err
	}

	return resp.Wishlist.toDomain(), nil
}

func (r *CommerceRepositoryImpl) AddToWishlist(ctx context.Context, productVariantID string) ([]domain.WishlistItem, error) {
	var resp struct {
		Wishlist *wishlistPayload `json:"addToWishlist"`
	}

	err := r.client.Run(ctx, addToWishlistMutation, map[string]interface{}{"productVariantId": productVariantID}, &resp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddToWishlist").Msg("")
		return nil, err
	}

	return resp.Wishlist.toDomain(), nil
}

func (r *CommerceRepositoryImpl) RemoveFromWishlist(ctx context.Context, itemID string) ([]domain.WishlistItem, error) {
	var resp struct {
		Wishlist *wishlistPayload `json:"removeFromWishlist"`
	}

	err := r.client.Run(ctx, removeFromWishlistMutation, map[string]interface{}{"itemId": itemID}, &resp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "RemoveFromWishlist").Msg("")
		return nil, err
	}

	return resp.Wishlist.toDomain(), nil
}

// addressVariables builds CreateAddressInput. Order addresses have no
// default flags.
func addressVariables(input dto.AddressInput, withDefaults bool) map[string]interface{} {
	vars := map[string]interface{}{
		"fullName":    input.FullName,
		"company":     input.Company,
		"streetLine1": input.StreetLine1,
		"streetLine2": input.StreetLine2,
		"city":        input.City,
		"province":    input.Province,
		"postalCode":  input.PostalCode,
		"countryCode": input.CountryCode,
		"phoneNumber": input.PhoneNumber,
	}
	if withDefaults {
		vars["defaultShippingAddress"] = input.DefaultShippingAddress
		vars["defaultBillingAddress"] = input.DefaultBillingAddress
	}

	return vars
}
