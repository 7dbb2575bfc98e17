package dto

import "github.com/alimikegami/point-of-sales/storefront-service/internal/domain"

// ShippingRateState is the checkout shipping hook's state, restored on every
// request of a checkout session.
type ShippingRateState struct {
	Query               string                  `json:"query"`
	Destinations        []domain.Destination    `json:"destinations"`
	SelectedDestination *domain.Destination     `json:"selectedDestination"`
	Weight              int                     `json:"weight"`
	ShippingOptions     []domain.ShippingOption `json:"shippingOptions"`
	SelectedOption      *domain.ShippingOption  `json:"selectedOption"`
	IsSearching         bool                    `json:"isSearching"`
	IsLoadingShipping   bool                    `json:"isLoadingShipping"`
	Error               string                  `json:"error,omitempty"`
}

type AddressSelectionResponse struct {
	Addresses SelectorView[domain.Address] `json:"addresses"`
}

type SelectDestinationRequest struct {
	ID     string `json:"id" validate:"required"`
	Label  string `json:"label"`
	Weight int    `json:"weight" validate:"gte=0"`
}

type SelectShippingOptionRequest struct {
	Key string `json:"key" validate:"required"`
}

type ShippingStepResponse struct {
	State    ShippingRateState                   `json:"state"`
	Shipping SelectorView[domain.ShippingOption] `json:"shipping"`
}

type ShippingConfirmedResponse struct {
	OrderCode    string `json:"orderCode"`
	ShippingRate string `json:"shippingRate"`
	Total        string `json:"total"`
}

type ShippingSelectedEvent struct {
	OrderCode     string `json:"order_code"`
	SessionID     string `json:"session_id"`
	CourierCode   string `json:"courier_code"`
	Service       string `json:"service"`
	Cost          int64  `json:"cost"`
	DestinationID string `json:"destination_id"`
}
