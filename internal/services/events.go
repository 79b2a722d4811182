package services

// EventPublisher publishes order lifecycle events to the message broker.
// Satisfied by *rabbitmq.Client; mocked in tests. A nil publisher disables
// publishing without disabling the flow.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Routing keys for order lifecycle events.
const (
	EventOrderCreated    = "order.created"
	EventOrderConfirmed  = "order.confirmed"
	EventPaymentCaptured = "payment.captured"
)
