package service

import (
	"context"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/repository"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/rs/zerolog/log"
)

const (
	MetadataRetryInterval    = 2 * time.Second
	MetadataRetryMaxAttempts = 5
	StatePollingInterval     = 15 * time.Second

	SuccessPathPrefix = "/checkout/success/"
	CheckoutRetryPath = "/checkout"
	OrderHistoryPath  = "/account/orders"

	settledEventKeyPrefix = "storefront:events:order_payment_settled:"
	settledEventTTL       = 7 * 24 * time.Hour
)

type ConfirmationServiceImpl struct {
	commerce  repository.CommerceRepository
	cache     repository.CacheRepository
	fetcher   PaymentStatusFetcher
	publisher EventPublisher
	config    *config.Config
}

func CreateConfirmationService(commerce repository.CommerceRepository, cache repository.CacheRepository, fetcher PaymentStatusFetcher, publisher EventPublisher, config *config.Config) ConfirmationService {
	return &ConfirmationServiceImpl{
		commerce:  commerce,
		cache:     cache,
		fetcher:   fetcher,
		publisher: publisher,
		config:    config,
	}
}

// Load builds the confirmation view for an order. The gateway is asked
// directly when the payment record carries no transaction id yet, since the
// order state can move before the webhook attaches the metadata.
func (s *ConfirmationServiceImpl) Load(ctx context.Context, code string) (view dto.ConfirmationView, err error) {
	order, err := s.commerce.GetOrderByCode(ctx, code)
	if err != nil {
		return
	}
	if order == nil {
		return view, errs.ErrOrderNotFound
	}

	method := s.config.MidtransConfig.PaymentMethodCode
	payment := order.LatestPaymentForMethod(method)

	var metadata domain.PaymentMetadata
	if payment != nil {
		metadata = payment.Metadata
	}

	if !metadata.HasTransactionID() {
		fresh, fetchErr := s.fetcher.FetchPaymentMetadata(ctx, order.Code)
		if fetchErr != nil {
			log.Ctx(ctx).Warn().Err(fetchErr).Str("component", "ConfirmationLoad").Str("order_code", order.Code).Msg("gateway lookup failed")
		} else if fresh.HasTransactionID() {
			metadata = fresh
		}
	}

	view = classify(order, payment, metadata, method)

	if view.Phase == dto.PhaseSuccess {
		s.publishSettled(ctx, order, payment, metadata)
	}

	return view, nil
}

func classify(order *domain.Order, payment *domain.Payment, metadata domain.PaymentMetadata, method string) dto.ConfirmationView {
	view := dto.ConfirmationView{
		Phase:         dto.PhaseWaiting,
		OrderCode:     order.Code,
		PaymentMethod: method,
		Total:         utils.FormatRupiah(utils.MinorToDecimal(order.TotalWithTax)),
	}
	if metadata.HasTransactionID() {
		m := metadata
		view.Metadata = &m
	}

	if payment != nil {
		view.PaymentState = payment.State
	}

	switch {
	case payment == nil:
	case payment.State == domain.PaymentStateSettled, payment.State == domain.PaymentStatePartiallySettled:
		view.Phase = dto.PhaseSuccess
		view.Redirect = SuccessPathPrefix + order.Code
		return view
	case payment.State == domain.PaymentStateDeclined, payment.State == domain.PaymentStateCancelled:
		view.Phase = dto.PhaseFailed
		view.RetryLink = CheckoutRetryPath
		view.Message = "Your payment was not completed."
		return view
	case payment.State == domain.PaymentStateCreated, payment.State == domain.PaymentStateAuthorized:
		view.StatePolling = &dto.PollingDirective{IntervalMs: StatePollingInterval.Milliseconds()}
	}

	if view.Metadata == nil {
		view.MetadataRetry = &dto.PollingDirective{
			IntervalMs:  MetadataRetryInterval.Milliseconds(),
			MaxAttempts: MetadataRetryMaxAttempts,
		}
	}

	return view
}

// ErrorView is rendered when the order cannot be loaded. It links back to
// the order history and is never retried automatically.
func ErrorView(code string, err error) dto.ConfirmationView {
	return dto.ConfirmationView{
		Phase:     dto.PhaseError,
		OrderCode: code,
		Message:   errs.PublicMessage(err),
		Link:      OrderHistoryPath,
	}
}

// publishSettled emits the settlement event once per order across loads.
func (s *ConfirmationServiceImpl) publishSettled(ctx context.Context, order *domain.Order, payment *domain.Payment, metadata domain.PaymentMetadata) {
	first, err := s.cache.SetIfAbsent(ctx, settledEventKeyPrefix+order.Code, settledEventTTL)
	if err != nil || !first {
		return
	}

	publishEvent(ctx, s.publisher, dto.EventOrderPaymentSettled, order.Code, dto.PaymentSettledEvent{
		OrderCode:     order.Code,
		PaymentState:  string(payment.State),
		TransactionID: metadata.TransactionID,
		PaymentType:   metadata.PaymentType,
		TotalWithTax:  order.TotalWithTax,
	})
}
