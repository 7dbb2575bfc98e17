package domain

import "time"

type PaymentState string

const (
	PaymentStateCreated          PaymentState = "Created"
	PaymentStateAuthorized       PaymentState = "Authorized"
	PaymentStateSettled          PaymentState = "Settled"
	PaymentStatePartiallySettled PaymentState = "PartiallySettled"
	PaymentStateDeclined         PaymentState = "Declined"
	PaymentStateCancelled        PaymentState = "Cancelled"
	PaymentStateError            PaymentState = "Error"
)

// PaymentMetadata holds the gateway specific fields attached to a payment
// after the gateway reports back.
type PaymentMetadata struct {
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	PaymentType       string `json:"payment_type"`
	Bank              string `json:"bank,omitempty"`
	VANumber          string `json:"va_number,omitempty"`
	ExpiryTime        string `json:"expiry_time,omitempty"`
}

func (m PaymentMetadata) HasTransactionID() bool {
	return m.TransactionID != ""
}

type Payment struct {
	ID            string
	Method        string
	State         PaymentState
	Amount        int64
	TransactionID string
	Metadata      PaymentMetadata
	CreatedAt     time.Time
}

type ShippingLine struct {
	MethodID     string
	MethodName   string
	PriceWithTax int64
}

// ShippingRate is the courier choice stored on the order's custom fields.
type ShippingRate struct {
	CourierCode   string `json:"courierCode"`
	CourierName   string `json:"courierName"`
	Service       string `json:"service"`
	Cost          int64  `json:"cost"`
	EstimatedDays string `json:"estimatedDays"`
	DestinationID string `json:"destinationId"`
}

type OrderLine struct {
	ID               string
	ProductVariantID string
	ProductName      string
	Quantity         int
	LinePriceWithTax int64
	FeaturedAssetURL string
}

type Order struct {
	ID              string
	Code            string
	State           string
	Active          bool
	CurrencyCode    string
	SubTotalWithTax int64
	ShippingWithTax int64
	TotalWithTax    int64
	OrderPlacedAt   *time.Time
	Customer        *Customer
	ShippingAddress Address
	ShippingLines   []ShippingLine
	ShippingRate    *ShippingRate
	Lines           []OrderLine
	Payments        []Payment
}

// LatestPaymentForMethod returns the most recent payment made with the given
// method. Payments are listed oldest first, so the scan runs backwards.
func (o Order) LatestPaymentForMethod(method string) *Payment {
	for i := len(o.Payments) - 1; i >= 0; i-- {
		if o.Payments[i].Method == method {
			return &o.Payments[i]
		}
	}
	return nil
}

type OrderList struct {
	Items      []Order
	TotalItems int
}
