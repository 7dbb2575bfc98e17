package paymentgateway

import (
	"context"
	"strings"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/rs/zerolog/log"
)

func CreateMidtransClient(config *config.Config) *coreapi.Client {
	env := midtrans.Sandbox
	if strings.EqualFold(config.MidtransConfig.Environment, "production") {
		env = midtrans.Production
	}

	midtransClient := &coreapi.Client{}
	midtransClient.New(config.MidtransConfig.ServerKey, env)

	return midtransClient
}

// transactionChecker is the slice of the Midtrans core API used here.
type transactionChecker interface {
	CheckTransaction(param string) (*coreapi.TransactionStatusResponse, *midtrans.Error)
}

// StatusFetcher reads the gateway's own view of a transaction. The commerce
// backend receives the same data through the payment webhook, sometimes after
// the order state has already moved.
type StatusFetcher struct {
	client transactionChecker
}

func CreateStatusFetcher(client transactionChecker) *StatusFetcher {
	return &StatusFetcher{client: client}
}

// FetchPaymentMetadata uses the order code as the Midtrans order_id.
func (f *StatusFetcher) FetchPaymentMetadata(ctx context.Context, orderCode string) (domain.PaymentMetadata, error) {
	if err := ctx.Err(); err != nil {
		return domain.PaymentMetadata{}, err
	}

	resp, mErr := f.client.CheckTransaction(orderCode)
	if mErr != nil {
		log.Ctx(ctx).Error().Str("component", "FetchPaymentMetadata").Str("order_code", orderCode).Msg(mErr.GetMessage())
		return domain.PaymentMetadata{}, mErr
	}
	// Midtrans answers unknown orders with a 200 carrying status_code 404.
	if resp == nil || resp.StatusCode == "404" {
		return domain.PaymentMetadata{}, nil
	}

	return MapTransactionStatus(resp), nil
}

func MapTransactionStatus(resp *coreapi.TransactionStatusResponse) domain.PaymentMetadata {
	meta := domain.PaymentMetadata{
		TransactionID:     resp.TransactionID,
		TransactionStatus: resp.TransactionStatus,
		PaymentType:       resp.PaymentType,
	}

	if len(resp.VaNumbers) > 0 {
		meta.Bank = resp.VaNumbers[0].Bank
		meta.VANumber = resp.VaNumbers[0].VANumber
	} else if resp.PermataVaNumber != "" {
		meta.Bank = "permata"
		meta.VANumber = resp.PermataVaNumber
	}

	return meta
}
