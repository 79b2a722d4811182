package payments

import (
	"errors"
	"strings"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"petshop/internal/apperrors"
)

// StripeGateway implements Gateway on top of the Stripe API.
type StripeGateway struct {
	api *client.API
}

// Config holds the Stripe credentials.
type Config struct {
	SecretKey string
}

// NewStripeGateway creates a gateway client authenticated with the secret key.
func NewStripeGateway(cfg Config) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeGateway{api: api}
}

// CreateIntent creates a new payment intent with automatic payment methods
// enabled, mirroring the hosted checkout configuration.
func (g *StripeGateway) CreateIntent(params CreateIntentParams) (*Intent, error) {
	piParams := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(params.Amount),
		Currency: stripe.String(strings.ToLower(params.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range params.Metadata {
		piParams.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(piParams)
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	return fromStripe(pi), nil
}

// RetrieveIntent fetches an existing intent by id.
func (g *StripeGateway) RetrieveIntent(id string) (*Intent, error) {
	pi, err := g.api.PaymentIntents.Get(id, nil)
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	return fromStripe(pi), nil
}

// ConfirmIntent submits a payment method for the intent. The caller only ever
// passes a gateway payment-method id, never raw card details.
func (g *StripeGateway) ConfirmIntent(id string, paymentMethodID string) (*Intent, error) {
	pi, err := g.api.PaymentIntents.Confirm(id, &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethodID),
	})
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	return fromStripe(pi), nil
}

func fromStripe(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       IntentStatus(pi.Status),
	}
}

// wrapStripeErr converts a Stripe SDK error into the application taxonomy.
// Card errors carry user-facing decline messages and are safe to relay.
func wrapStripeErr(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &apperrors.GatewayError{
			Code:    string(stripeErr.Code),
			Message: stripeErr.Msg,
			Safe:    stripeErr.Type == stripe.ErrorTypeCard,
			Err:     err,
		}
	}
	return &apperrors.GatewayError{Code: "gateway_unreachable", Err: err}
}
