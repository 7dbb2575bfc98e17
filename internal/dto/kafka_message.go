package dto

const (
	EventOrderPaymentSettled    = "order_payment_settled"
	EventShippingOptionSelected = "shipping_option_selected"
)

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}
