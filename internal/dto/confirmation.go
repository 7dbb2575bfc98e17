package dto

import "github.com/alimikegami/point-of-sales/storefront-service/internal/domain"

type ConfirmationPhase string

const (
	PhaseWaiting ConfirmationPhase = "waiting"
	PhaseSuccess ConfirmationPhase = "success"
	PhaseFailed  ConfirmationPhase = "failed"
	PhaseError   ConfirmationPhase = "error"
)

type PollingDirective struct {
	IntervalMs  int64 `json:"intervalMs"`
	MaxAttempts int   `json:"maxAttempts,omitempty"`
}

type ConfirmationView struct {
	Phase         ConfirmationPhase       `json:"phase"`
	OrderCode     string                  `json:"orderCode"`
	PaymentMethod string                  `json:"paymentMethod,omitempty"`
	PaymentState  domain.PaymentState     `json:"paymentState,omitempty"`
	Metadata      *domain.PaymentMetadata `json:"metadata,omitempty"`
	Total         string                  `json:"total,omitempty"`
	Redirect      string                  `json:"redirect,omitempty"`
	RetryLink     string                  `json:"retryLink,omitempty"`
	Link          string                  `json:"link,omitempty"`
	Message       string                  `json:"message,omitempty"`
	MetadataRetry *PollingDirective       `json:"metadataRetry,omitempty"`
	StatePolling  *PollingDirective       `json:"statePolling,omitempty"`
}

// Terminal reports whether no further revalidation can change the view.
func (v ConfirmationView) Terminal() bool {
	return v.Phase == PhaseSuccess || v.Phase == PhaseFailed || v.Phase == PhaseError
}

type PaymentSettledEvent struct {
	OrderCode     string `json:"order_code"`
	PaymentState  string `json:"payment_state"`
	TransactionID string `json:"transaction_id"`
	PaymentType   string `json:"payment_type"`
	TotalWithTax  int64  `json:"total_with_tax"`
}
