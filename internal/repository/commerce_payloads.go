package repository

import (
	"encoding/json"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
)

type customerPayload struct {
	ID           string           `json:"id"`
	FirstName    string           `json:"firstName"`
	LastName     string           `json:"lastName"`
	EmailAddress string           `json:"emailAddress"`
	PhoneNumber  string           `json:"phoneNumber"`
	Addresses    []addressPayload `json:"addresses"`
}

type addressPayload struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Company     string `json:"company"`
	StreetLine1 string `json:"streetLine1"`
	StreetLine2 string `json:"streetLine2"`
	City        string `json:"city"`
	Province    string `json:"province"`
	PostalCode  string `json:"postalCode"`
	PhoneNumber string `json:"phoneNumber"`
	CountryCode string `json:"countryCode"`
	Country     *struct {
		Code string `json:"code"`
	} `json:"country"`
	DefaultShippingAddress bool `json:"defaultShippingAddress"`
	DefaultBillingAddress  bool `json:"defaultBillingAddress"`
}

type assetPayload struct {
	Preview string `json:"preview"`
}

type paymentPayload struct {
	ID            string          `json:"id"`
	Method        string          `json:"method"`
	State         string          `json:"state"`
	Amount        int64           `json:"amount"`
	TransactionID *string         `json:"transactionId"`
	Metadata      json.RawMessage `json:"metadata"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type orderCustomFieldsPayload struct {
	CourierCode           *string `json:"courierCode"`
	CourierName           *string `json:"courierName"`
	CourierService        *string `json:"courierService"`
	ShippingCost          *int64  `json:"shippingCost"`
	ShippingEtd           *string `json:"shippingEtd"`
	ShippingDestinationID *string `json:"shippingDestinationId"`
}

type orderPayload struct {
	ID              string           `json:"id"`
	Code            string           `json:"code"`
	State           string           `json:"state"`
	Active          bool             `json:"active"`
	CurrencyCode    string           `json:"currencyCode"`
	SubTotalWithTax int64            `json:"subTotalWithTax"`
	ShippingWithTax int64            `json:"shippingWithTax"`
	TotalWithTax    int64            `json:"totalWithTax"`
	OrderPlacedAt   *time.Time       `json:"orderPlacedAt"`
	Customer        *customerPayload `json:"customer"`
	ShippingAddress *addressPayload  `json:"shippingAddress"`
	ShippingLines   []struct {
		ShippingMethod struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"shippingMethod"`
		PriceWithTax int64 `json:"priceWithTax"`
	} `json:"shippingLines"`
	Lines []struct {
		ID               string        `json:"id"`
		Quantity         int           `json:"quantity"`
		LinePriceWithTax int64         `json:"linePriceWithTax"`
		FeaturedAsset    *assetPayload `json:"featuredAsset"`
		ProductVariant   struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"productVariant"`
	} `json:"lines"`
	Payments     []paymentPayload          `json:"payments"`
	CustomFields *orderCustomFieldsPayload `json:"customFields"`
}

// orderResultPayload decodes an Order | ErrorResult union member.
type orderResultPayload struct {
	Typename string `json:"__typename"`
	orderPayload
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

type wishlistPayload struct {
	ID    string `json:"id"`
	Items []struct {
		ID             string `json:"id"`
		ProductVariant struct {
			ID            string        `json:"id"`
			Name          string        `json:"name"`
			PriceWithTax  int64         `json:"priceWithTax"`
			FeaturedAsset *assetPayload `json:"featuredAsset"`
			Product       struct {
				Name          string        `json:"name"`
				FeaturedAsset *assetPayload `json:"featuredAsset"`
			} `json:"product"`
		} `json:"productVariant"`
	} `json:"items"`
}

func (p customerPayload) toDomain() *domain.Customer {
	customer := &domain.Customer{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		EmailAddress: p.EmailAddress,
		PhoneNumber:  p.PhoneNumber,
	}
	for _, a := range p.Addresses {
		customer.Addresses = append(customer.Addresses, a.toDomain())
	}
	return customer
}

func (p addressPayload) toDomain() domain.Address {
	countryCode := p.CountryCode
	if p.Country != nil {
		countryCode = p.Country.Code
	}

	return domain.Address{
		ID:                     p.ID,
		FullName:               p.FullName,
		Company:                p.Company,
		StreetLine1:            p.StreetLine1,
		StreetLine2:            p.StreetLine2,
		City:                   p.City,
		Province:               p.Province,
		PostalCode:             p.PostalCode,
		CountryCode:            countryCode,
		PhoneNumber:            p.PhoneNumber,
		DefaultShippingAddress: p.DefaultShippingAddress,
		DefaultBillingAddress:  p.DefaultBillingAddress,
	}
}

func (p orderPayload) toDomain() *domain.Order {
	order := &domain.Order{
		ID:              p.ID,
		Code:            p.Code,
		State:           p.State,
		Active:          p.Active,
		CurrencyCode:    p.CurrencyCode,
		SubTotalWithTax: p.SubTotalWithTax,
		ShippingWithTax: p.ShippingWithTax,
		TotalWithTax:    p.TotalWithTax,
		OrderPlacedAt:   p.OrderPlacedAt,
	}

	if p.Customer != nil {
		order.Customer = p.Customer.toDomain()
	}
	if p.ShippingAddress != nil {
		order.ShippingAddress = p.ShippingAddress.toDomain()
	}

	for _, l := range p.ShippingLines {
		order.ShippingLines = append(order.ShippingLines, domain.ShippingLine{
			MethodID:     l.ShippingMethod.ID,
			MethodName:   l.ShippingMethod.Name,
			PriceWithTax: l.PriceWithTax,
		})
	}

	for _, l := range p.Lines {
		line := domain.OrderLine{
			ID:               l.ID,
			ProductVariantID: l.ProductVariant.ID,
			ProductName:      l.ProductVariant.Name,
			Quantity:         l.Quantity,
			LinePriceWithTax: l.LinePriceWithTax,
		}
		if l.FeaturedAsset != nil {
			line.FeaturedAssetURL = l.FeaturedAsset.Preview
		}
		order.Lines = append(order.Lines, line)
	}

	for _, pay := range p.Payments {
		payment := domain.Payment{
			ID:        pay.ID,
			Method:    pay.Method,
			State:     domain.PaymentState(pay.State),
			Amount:    pay.Amount,
			Metadata:  parsePaymentMetadata(pay.Metadata),
			CreatedAt: pay.CreatedAt,
		}
		if pay.TransactionID != nil {
			payment.TransactionID = *pay.TransactionID
		}
		order.Payments = append(order.Payments, payment)
	}

	if cf := p.CustomFields; cf != nil && cf.CourierCode != nil && *cf.CourierCode != "" {
		order.ShippingRate = &domain.ShippingRate{
			CourierCode:   *cf.CourierCode,
			CourierName:   deref(cf.CourierName),
			Service:       deref(cf.CourierService),
			EstimatedDays: deref(cf.ShippingEtd),
			DestinationID: deref(cf.ShippingDestinationID),
		}
		if cf.ShippingCost != nil {
			order.ShippingRate.Cost = *cf.ShippingCost
		}
	}

	return order
}

func (p orderResultPayload) toResult() dto.OrderResult {
	if p.Typename == "Order" {
		return dto.OrderResult{Order: p.orderPayload.toDomain()}
	}

	return dto.OrderResult{Error: &dto.ErrorResult{ErrorCode: p.ErrorCode, Message: p.Message}}
}

func (p *wishlistPayload) toDomain() []domain.WishlistItem {
	if p == nil {
		return []domain.WishlistItem{}
	}

	items := make([]domain.WishlistItem, 0, len(p.Items))
	for _, i := range p.Items {
		item := domain.WishlistItem{
			ID:               i.ID,
			ProductVariantID: i.ProductVariant.ID,
			ProductName:      i.ProductVariant.Product.Name,
			VariantName:      i.ProductVariant.Name,
			PriceWithTax:     i.ProductVariant.PriceWithTax,
		}
		switch {
		case i.ProductVariant.FeaturedAsset != nil:
			item.FeaturedAssetURL = i.ProductVariant.FeaturedAsset.Preview
		case i.ProductVariant.Product.FeaturedAsset != nil:
			item.FeaturedAssetURL = i.ProductVariant.Product.FeaturedAsset.Preview
		}
		items = append(items, item)
	}

	return items
}

// parsePaymentMetadata reads the gateway fields the payment handler stores.
// The Shop API only exposes the "public" part of the metadata, which some
// handlers nest and others flatten.
func parsePaymentMetadata(raw json.RawMessage) domain.PaymentMetadata {
	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil || fields == nil {
		return domain.PaymentMetadata{}
	}

	var public map[string]json.RawMessage
	if nested, ok := fields["public"]; ok && json.Unmarshal(nested, &public) == nil && public != nil {
		fields = public
	}

	str := func(keys ...string) string {
		for _, k := range keys {
			var s string
			if v, ok := fields[k]; ok && json.Unmarshal(v, &s) == nil && s != "" {
				return s
			}
		}
		return ""
	}

	meta := domain.PaymentMetadata{
		TransactionID:     str("transaction_id", "transactionId"),
		TransactionStatus: str("transaction_status", "transactionStatus"),
		PaymentType:       str("payment_type", "paymentType"),
		Bank:              str("bank"),
		VANumber:          str("va_number", "vaNumber"),
		ExpiryTime:        str("expiry_time", "expiryTime"),
	}

	var vaNumbers []struct {
		Bank     string `json:"bank"`
		VANumber string `json:"va_number"`
	}
	if v, ok := fields["va_numbers"]; ok && json.Unmarshal(v, &vaNumbers) == nil && len(vaNumbers) > 0 {
		meta.Bank = vaNumbers[0].Bank
		meta.VANumber = vaNumbers[0].VANumber
	} else if permata := str("permata_va_number"); permata != "" {
		meta.Bank = "permata"
		meta.VANumber = permata
	}

	return meta
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
