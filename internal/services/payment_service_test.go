package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petshop/internal/apperrors"
	"petshop/internal/models"
	"petshop/internal/payments"
	"petshop/internal/repositories"
	"petshop/internal/services"
)

// seedOrder creates a pending card order in the in-memory repository.
func seedOrder(t *testing.T, orderRepo *repositories.MockOrderRepository, total string) *models.Order {
	t.Helper()
	totalAmount := decimal.RequireFromString(total)
	order := &models.Order{
		UserID:        "user-1",
		OrderNumber:   services.GenerateOrderNumber(),
		Subtotal:      totalAmount.Sub(decimal.NewFromInt(150)),
		ShippingFee:   decimal.NewFromInt(150),
		TotalAmount:   totalAmount,
		Currency:      "PHP",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodCard,
	}
	assert.NoError(t, orderRepo.Create(order))
	return order
}

func TestPaymentService_ResolveIntent_CreatesIntentInMinorUnits(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()
	gateway := new(MockGateway)
	service := services.NewPaymentService(orderRepo, cartRepo, gateway, nil)

	order := seedOrder(t, orderRepo, "1150.00")

	gateway.On("CreateIntent", mock.MatchedBy(func(params payments.CreateIntentParams) bool {
		return params.Amount == 115000 &&
			params.Currency == "PHP" &&
			params.Metadata["orderId"] == order.ID &&
			params.Metadata["orderNumber"] == order.OrderNumber &&
			params.Metadata["userId"] == "user-1"
	})).Return(&payments.Intent{
		ID:           "pi_1",
		ClientSecret: "pi_1_secret_abc",
		Amount:       115000,
		Currency:     "php",
		Status:       payments.StatusRequiresPaymentMethod,
	}, nil).Once()

	intent, err := service.ResolveIntent("user-1", order.ID)

	assert.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "pi_1_secret_abc", intent.ClientSecret)

	// The intent reference must be attached before the secret is returned.
	stored, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, "pi_1", stored.PaymentIntentID)
	gateway.AssertExpectations(t)
}

func TestPaymentService_ResolveIntent_SequentialResolvesReuseIntent(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()
	gateway := new(MockGateway)
	service := services.NewPaymentService(orderRepo, cartRepo, gateway, nil)

	order := seedOrder(t, orderRepo, "2500.00")

	created := &payments.Intent{
		ID:           "pi_2",
		ClientSecret: "pi_2_secret_xyz",
		Amount:       250000,
		Currency:     "php",
		Status:       payments.StatusRequiresPaymentMethod,
	}
	gateway.On("CreateIntent", mock.Anything).Return(created, nil).Once()
	gateway.On("RetrieveIntent", "pi_2").Return(created, nil)

	first, err := service.ResolveIntent("user-1", order.ID)
	assert.NoError(t, err)
	second, err := service.ResolveIntent("user-1", order.ID)
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	// Exactly one intent created across both resolves.
	gateway.AssertNumberOfCalls(t, "CreateIntent", 1)
}

func TestPaymentService_ResolveIntent_ReplacesDeadIntent(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()
	gateway := new(MockGateway)
	service := services.NewPaymentService(orderRepo, cartRepo, gateway, nil)

	order := seedOrder(t, orderRepo, "800.00")
	assert.NoError(t, orderRepo.AttachPaymentIntent(order.ID, "pi_expired"))

	// Upstream deleted the intent: retrieval fails, the resolver replaces it
	// without raising an error.
	gateway.On("RetrieveIntent", "pi_expired").Return(nil, &apperrors.GatewayError{
		Code: "resource_missing",
	}).Once()
	gateway.On("CreateIntent", mock.Anything).Return(&payments.Intent{
		ID:           "pi_fresh",
		ClientSecret: "pi_fresh_secret",
		Amount:       80000,
		Currency:     "php",
		Status:       payments.StatusRequiresPaymentMethod,
	}, nil).Once()

	intent, err := service.ResolveIntent("user-1", order.ID)

	assert.NoError(t, err)
	assert.Equal(t, "pi_fresh", intent.ID)

	stored, _ := orderRepo.GetByID(order.ID)
	assert.Equal(t, "pi_fresh", stored.PaymentIntentID)
}

func TestPaymentService_ResolveIntent_ReplacesCanceledIntent(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()
	gateway := new(MockGateway)
	service := services.NewPaymentService(orderRepo, cartRepo, gateway, nil)

	order := seedOrder(t, orderRepo, "800.00")
	assert.NoError(t, orderRepo.AttachPaymentIntent(order.ID, "pi_canceled"))

	gateway.On("RetrieveIntent", "pi_canceled").Return(&payments.Intent{
		ID:     "pi_canceled",
		Status: payments.StatusCanceled,
	}, nil).Once()
	gateway.On("CreateIntent", mock.Anything).Return(&payments.Intent{
		ID:           "pi_new",
		ClientSecret: "pi_new_secret",
		Status:       payments.StatusRequiresPaymentMethod,
	}, nil).Once()

	intent, err := service.ResolveIntent("user-1", order.ID)

	assert.NoError(t, err)
	assert.Equal(t, "pi_new", intent.ID)
}

func TestPaymentService_ResolveIntent_OwnershipAndAbsence(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()
	gateway := new(MockGateway)
	service := services.NewPaymentService(orderRepo, cartRepo, gateway, nil)

	order := seedOrder(t, orderRepo, "500.00")

	var notFoundErr *apperrors.NotFoundError

	// Another user's order looks absent.
	intent, err := service.ResolveIntent("user-2", order.ID)
	assert.Nil(t, intent)
	assert.ErrorAs(t, err, &notFoundErr)

	// Unknown order id.
	intent, err = service.ResolveIntent("user-1", "no-such-order")
	assert.Nil(t, intent)
	assert.ErrorAs(t, err, &notFoundErr)

	gateway.AssertNotCalled(t, "CreateIntent", mock.Anything)
}

func TestPaymentService_ConfirmPayment_SucceededMarksPaidAndClearsCart(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()
	gateway := new(MockGateway)
	publisher := new(MockPublisher)
	service := services.NewPaymentService(orderRepo, cartRepo, gateway, publisher)

	order := seedOrder(t, orderRepo, "3147.00")
	assert.NoError(t, orderRepo.AttachPaymentIntent(order.ID, "pi_3"))
	assert.NoError(t, cartRepo.Add(&models.CartItem{UserID: "user-1", ProductID: "prod-1", Quantity: 3, Selected: true}))

	gateway.On("ConfirmIntent", "pi_3", "pm_card_visa").Return(&payments.Intent{
		ID:       "pi_3",
		Amount:   314700,
		Currency: "php",
		Status:   payments.StatusSucceeded,
	}, nil).Once()
	publisher.On("Publish", "order", services.EventPaymentCaptured, mock.Anything).Return(nil).Once()

	intent, err := service.ConfirmPayment("user-1", order.ID, "pm_card_visa")

	assert.NoError(t, err)
	assert.Equal(t, payments.StatusSucceeded, intent.Status)

	stored, _ := orderRepo.GetByID(order.ID)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, models.OrderStatusConfirmed, stored.Status)
	assert.NotNil(t, stored.PaidAt)

	items, _ := cartRepo.GetByUser("user-1")
	assert.Empty(t, items)
	publisher.AssertExpectations(t)
}

func TestPaymentService_ConfirmPayment_GatewayErrorLeavesOrderPending(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()
	gateway := new(MockGateway)
	service := services.NewPaymentService(orderRepo, cartRepo, gateway, nil)

	order := seedOrder(t, orderRepo, "3147.00")
	assert.NoError(t, orderRepo.AttachPaymentIntent(order.ID, "pi_4"))
	assert.NoError(t, cartRepo.Add(&models.CartItem{UserID: "user-1", ProductID: "prod-1", Quantity: 1, Selected: true}))

	gateway.On("ConfirmIntent", "pi_4", "pm_card_declined").Return(nil, &apperrors.GatewayError{
		Code:    "card_declined",
		Message: "Your card was declined.",
		Safe:    true,
	}).Once()

	intent, err := service.ConfirmPayment("user-1", order.ID, "pm_card_declined")

	assert.Nil(t, intent)
	var gatewayErr *apperrors.GatewayError
	assert.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, "Your card was declined.", gatewayErr.UserMessage())

	// Order and cart are untouched; the user may retry.
	stored, _ := orderRepo.GetByID(order.ID)
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, stored.Status)

	items, _ := cartRepo.GetByUser("user-1")
	assert.Len(t, items, 1)
}

func TestPaymentService_ConfirmPayment_RequiresActionLeavesOrderPending(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()
	gateway := new(MockGateway)
	service := services.NewPaymentService(orderRepo, cartRepo, gateway, nil)

	order := seedOrder(t, orderRepo, "999.00")
	assert.NoError(t, orderRepo.AttachPaymentIntent(order.ID, "pi_5"))

	gateway.On("ConfirmIntent", "pi_5", "pm_3ds").Return(&payments.Intent{
		ID:           "pi_5",
		ClientSecret: "pi_5_secret",
		Status:       payments.StatusRequiresAction,
	}, nil).Once()

	intent, err := service.ConfirmPayment("user-1", order.ID, "pm_3ds")

	assert.NoError(t, err)
	assert.Equal(t, payments.StatusRequiresAction, intent.Status)
	assert.Equal(t, "pi_5_secret", intent.ClientSecret)

	stored, _ := orderRepo.GetByID(order.ID)
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
}

func TestPaymentService_ConfirmPayment_ResolvesIntentWhenNoneAttached(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()
	gateway := new(MockGateway)
	service := services.NewPaymentService(orderRepo, cartRepo, gateway, nil)

	order := seedOrder(t, orderRepo, "450.00")

	gateway.On("CreateIntent", mock.Anything).Return(&payments.Intent{
		ID:           "pi_6",
		ClientSecret: "pi_6_secret",
		Amount:       45000,
		Status:       payments.StatusRequiresPaymentMethod,
	}, nil).Once()
	gateway.On("ConfirmIntent", "pi_6", "pm_card").Return(&payments.Intent{
		ID:     "pi_6",
		Status: payments.StatusSucceeded,
	}, nil).Once()

	intent, err := service.ConfirmPayment("user-1", order.ID, "pm_card")

	assert.NoError(t, err)
	assert.Equal(t, payments.StatusSucceeded, intent.Status)
	gateway.AssertExpectations(t)
}

func TestPaymentService_ConfirmPayment_MissingPaymentMethod(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()
	gateway := new(MockGateway)
	service := services.NewPaymentService(orderRepo, cartRepo, gateway, nil)

	intent, err := service.ConfirmPayment("user-1", "order-x", "")

	assert.Nil(t, intent)
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "PaymentMethodID", validationErr.Field)
}
