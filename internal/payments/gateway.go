package payments

// IntentStatus mirrors the gateway-side lifecycle of a payment intent.
type IntentStatus string

const (
	StatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	StatusRequiresConfirmation  IntentStatus = "requires_confirmation"
	StatusRequiresAction        IntentStatus = "requires_action"
	StatusSucceeded             IntentStatus = "succeeded"
	StatusCanceled              IntentStatus = "canceled"
)

// Intent is the provider-neutral view of a gateway payment intent. Amount is in
// minor currency units. ClientSecret is transient; it must never be logged or
// persisted server-side.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       IntentStatus
}

// Usable reports whether an existing intent can still collect a payment.
func (i *Intent) Usable() bool {
	return i.Status != StatusSucceeded && i.Status != StatusCanceled
}

// CreateIntentParams carries the inputs for a new payment intent. Metadata is
// attached gateway-side for reconciliation and audit.
type CreateIntentParams struct {
	Amount   int64
	Currency string
	Metadata map[string]string
}

// Gateway abstracts the hosted payment processor. Implementations must wrap
// provider SDK errors into apperrors.GatewayError; raw SDK error types do not
// leak past this package.
type Gateway interface {
	CreateIntent(params CreateIntentParams) (*Intent, error)
	RetrieveIntent(id string) (*Intent, error)
	ConfirmIntent(id string, paymentMethodID string) (*Intent, error)
}
