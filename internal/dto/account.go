package dto

import "github.com/alimikegami/point-of-sales/storefront-service/internal/domain"

type CustomerResponse struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
}

type OrderSummaryResponse struct {
	Code          string `json:"code"`
	State         string `json:"state"`
	PlacedAt      string `json:"placedAt,omitempty"`
	Total         string `json:"total"`
	PaymentState  string `json:"paymentState,omitempty"`
	TotalQuantity int    `json:"totalQuantity"`
}

type OrderListResponse struct {
	Records    []OrderSummaryResponse `json:"records"`
	TotalItems int                    `json:"totalItems"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}

type OrderLineResponse struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type OrderDetailResponse struct {
	OrderSummaryResponse
	SubTotal        string               `json:"subTotal"`
	Shipping        string               `json:"shipping"`
	ShippingAddress domain.Address       `json:"shippingAddress"`
	ShippingRate    *domain.ShippingRate `json:"shippingRate,omitempty"`
	Lines           []OrderLineResponse  `json:"lines"`
}
