package dto

import "github.com/alimikegami/point-of-sales/storefront-service/internal/domain"

// ErrorResult is the ErrorResult member of a Shop API union.
type ErrorResult struct {
	ErrorCode string
	Message   string
}

func (e *ErrorResult) Error() string {
	return e.ErrorCode + ": " + e.Message
}

// OrderResult is decoded from an Order-or-ErrorResult union. Exactly one of
// Order and Error is set.
type OrderResult struct {
	Order *domain.Order
	Error *ErrorResult
}

// AuthResult is decoded from the login union.
type AuthResult struct {
	UserID     string
	Identifier string
	AuthToken  string
	Error      *ErrorResult
}

type SignInRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type AddressInput struct {
	FullName    string `json:"fullName" validate:"required,max=100"`
	Company     string `json:"company" validate:"max=100"`
	StreetLine1 string `json:"streetLine1" validate:"required,max=255"`
	StreetLine2 string `json:"streetLine2" validate:"max=255"`
	City        string `json:"city" validate:"required,max=100"`
	Province    string `json:"province" validate:"required,max=100"`
	PostalCode  string `json:"postalCode" validate:"required,numeric,len=5"`
	CountryCode string `json:"countryCode" validate:"required,iso3166_1_alpha2"`
	PhoneNumber string `json:"phoneNumber" validate:"required,e164|numeric"`

	DefaultShippingAddress bool `json:"defaultShippingAddress"`
	DefaultBillingAddress  bool `json:"defaultBillingAddress"`
}

// AddressInputFromAddress is used when a stored address becomes the order's
// shipping address.
func AddressInputFromAddress(a domain.Address) AddressInput {
	return AddressInput{
		FullName:    a.FullName,
		Company:     a.Company,
		StreetLine1: a.StreetLine1,
		StreetLine2: a.StreetLine2,
		City:        a.City,
		Province:    a.Province,
		PostalCode:  a.PostalCode,
		CountryCode: a.CountryCode,
		PhoneNumber: a.PhoneNumber,
	}
}

type WishlistRequest struct {
	ProductVariantID string `json:"productVariantId" validate:"required"`
}

type Pagination struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}
