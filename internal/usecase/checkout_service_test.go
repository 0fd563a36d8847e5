package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	adapterRepo "github.com/ashwinbuilds/booking-engine/internal/adapter/repository"
	"github.com/ashwinbuilds/booking-engine/internal/domain/entity"
	domainErrors "github.com/ashwinbuilds/booking-engine/internal/domain/errors"
	"github.com/ashwinbuilds/booking-engine/internal/domain/gateway"
	"github.com/ashwinbuilds/booking-engine/internal/domain/model"
	"github.com/ashwinbuilds/booking-engine/internal/domain/repository"
)

// MockPaymentGateway is a mock implementation of gateway.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
	kind gateway.Kind
}

func (m *MockPaymentGateway) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, req *gateway.OrderRequest) (*gateway.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Order), args.Error(1)
}

func (m *MockPaymentGateway) VerifyPayment(ctx context.Context, proof *gateway.Proof) (bool, error) {
	args := m.Called(ctx, proof)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentGateway) Kind() gateway.Kind {
	return m.kind
}

// stubFactory returns a fixed gateway (or error) for every kind.
type stubFactory struct {
	gw  gateway.PaymentGateway
	err error
}

func (f *stubFactory) GatewayFor(kind gateway.Kind) (gateway.PaymentGateway, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.gw, nil
}

// MockPaymentOrderRepository is a mock implementation of repository.PaymentOrderRepository
type MockPaymentOrderRepository struct {
	mock.Mock
}

func (m *MockPaymentOrderRepository) Create(ctx context.Context, order *model.PaymentOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPaymentOrderRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockPaymentOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*model.PaymentOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentOrder), args.Error(1)
}

// stubInvoiceWriter records the call and returns a computed invoice.
type stubInvoiceWriter struct {
	saved  bool
	called bool
}

func (w *stubInvoiceWriter) Write(ctx context.Context, intent entity.BookingIntent, currency, paymentID, orderID string) (*entity.Invoice, bool) {
	w.called = true
	return entity.NewInvoice(intent, currency, paymentID, orderID, time.Now()), w.saved
}

// stubNotifier returns fixed outcomes.
type stubNotifier struct {
	outcomes entity.NotificationOutcomes
	called   bool
}

func (n *stubNotifier) Dispatch(ctx context.Context, invoice *entity.Invoice, intent entity.BookingIntent) entity.NotificationOutcomes {
	n.called = true
	return n.outcomes
}

type checkoutFixture struct {
	svc      *CheckoutService
	gw       *MockPaymentGateway
	orders   *MockPaymentOrderRepository
	invoices *stubInvoiceWriter
	notifier *stubNotifier
	attempts repository.AttemptRepository
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	gw := &MockPaymentGateway{kind: gateway.KindRazorpay}
	orders := new(MockPaymentOrderRepository)
	invoices := &stubInvoiceWriter{saved: true}
	notifier := &stubNotifier{outcomes: entity.NotificationOutcomes{
		BookingConfirmation: true, InvoiceEmail: true, OwnerAlert: true,
	}}
	attempts := adapterRepo.NewMemoryAttemptRepository(time.Minute)

	pricing, err := NewPricingService(testPricingConfig(), zap.NewNop())
	require.NoError(t, err)
	svc := NewCheckoutService(pricing, &stubFactory{gw: gw}, attempts, orders, invoices, notifier, zap.NewNop())

	return &checkoutFixture{svc: svc, gw: gw, orders: orders, invoices: invoices, notifier: notifier, attempts: attempts}
}

func validOrderRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		Region:        "IN",
		ServiceName:   "Business Website",
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "91 98765 43210",
	}
}

func (f *checkoutFixture) expectOrder(orderID string) {
	f.gw.On("Ready", mock.Anything).Return(nil)
	f.gw.On("CreateOrder", mock.Anything, mock.AnythingOfType("*gateway.OrderRequest")).
		Return(&gateway.Order{ID: orderID, Amount: 1000000, Currency: "INR", Status: "created"}, nil)
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*model.PaymentOrder")).Return(nil)
}

func TestCheckoutService_CreateOrder(t *testing.T) {
	t.Run("opens an attempt awaiting the user", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.expectOrder("order_abc")

		resp, err := f.svc.CreateOrder(context.Background(), validOrderRequest())

		require.NoError(t, err)
		assert.Equal(t, "order_abc", resp.OrderID)
		assert.Equal(t, int64(1000000), resp.Amount)
		assert.Equal(t, "INR", resp.Currency)
		assert.Equal(t, gateway.KindRazorpay, resp.GatewayKind)
		assert.Equal(t, "919876543210", resp.Prefill.Contact)

		attempt, err := f.attempts.Get(context.Background(), resp.AttemptID)
		require.NoError(t, err)
		require.NotNil(t, attempt)
		assert.Equal(t, entity.AttemptStatusAwaitingUser, attempt.Status)
		assert.Equal(t, "Asha Rao", attempt.Intent.CustomerName)
		f.orders.AssertExpectations(t)
	})

	t.Run("malformed email never reaches the gateway", func(t *testing.T) {
		f := newCheckoutFixture(t)

		req := validOrderRequest()
		req.CustomerEmail = "not-an-email"
		_, err := f.svc.CreateOrder(context.Background(), req)

		require.Error(t, err)
		var ce *domainErrors.CheckoutError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, domainErrors.ErrTypeValidation, ce.Type)
		f.gw.AssertNotCalled(t, "Ready", mock.Anything)
		f.gw.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("unconfigured gateway fails closed with a contact fallback", func(t *testing.T) {
		f := newCheckoutFixture(t)
		pricing, err := NewPricingService(testPricingConfig(), zap.NewNop())
		require.NoError(t, err)
		svc := NewCheckoutService(pricing, &stubFactory{
			err: domainErrors.NewConfigurationError("online payment is not available right now, please contact us to complete your booking"),
		}, f.attempts, f.orders, f.invoices, f.notifier, zap.NewNop())

		_, err = svc.CreateOrder(context.Background(), validOrderRequest())

		var ce *domainErrors.CheckoutError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, domainErrors.ErrTypeConfiguration, ce.Type)
	})

	t.Run("gateway that never becomes ready blocks checkout", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.gw.On("Ready", mock.Anything).Return(&gateway.GatewayError{
			Code: gateway.ErrCodeTimeout, Message: "payment gateway did not become ready in time",
		})

		_, err := f.svc.CreateOrder(context.Background(), validOrderRequest())

		var ce *domainErrors.CheckoutError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, domainErrors.ErrTypeGatewayUnavailable, ce.Type)
		f.gw.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("empty order id from the gateway is an error", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.gw.On("Ready", mock.Anything).Return(nil)
		f.gw.On("CreateOrder", mock.Anything, mock.Anything).
			Return(&gateway.Order{ID: ""}, nil)

		_, err := f.svc.CreateOrder(context.Background(), validOrderRequest())

		var ce *domainErrors.CheckoutError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, domainErrors.ErrTypeGateway, ce.Type)
	})

	t.Run("audit write failure does not block the order", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.gw.On("Ready", mock.Anything).Return(nil)
		f.gw.On("CreateOrder", mock.Anything, mock.Anything).
			Return(&gateway.Order{ID: "order_x", Amount: 1000000}, nil)
		f.orders.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		resp, err := f.svc.CreateOrder(context.Background(), validOrderRequest())

		require.NoError(t, err)
		assert.Equal(t, "order_x", resp.OrderID)
	})
}

func TestCheckoutService_Confirm(t *testing.T) {
	open := func(t *testing.T, f *checkoutFixture) string {
		t.Helper()
		f.expectOrder("order_abc")
		resp, err := f.svc.CreateOrder(context.Background(), validOrderRequest())
		require.NoError(t, err)
		return resp.AttemptID
	}

	t.Run("verified payment completes the pipeline", func(t *testing.T) {
		f := newCheckoutFixture(t)
		attemptID := open(t, f)

		var seen *gateway.Proof
		f.gw.On("VerifyPayment", mock.Anything, mock.AnythingOfType("*gateway.Proof")).
			Run(func(args mock.Arguments) { seen = args.Get(1).(*gateway.Proof) }).
			Return(true, nil)
		f.orders.On("UpdateStatus", mock.Anything, "order_abc", model.PaymentOrderStatusPaid).Return(nil)

		result, err := f.svc.Confirm(context.Background(), attemptID, &gateway.Proof{
			OrderID: "order_abc", PaymentID: "pay_1", Signature: "sig",
		})

		require.NoError(t, err)
		assert.Equal(t, SeveritySuccess, result.Summary.Severity)
		assert.True(t, result.Saved)
		assert.Equal(t, "pay_1", result.Invoice.PaymentID)
		assert.Equal(t, "success", result.Params.Get("emailStatus"))
		assert.True(t, f.invoices.called)
		assert.True(t, f.notifier.called)

		// Cross-check fields were filled from the stored attempt, not the
		// client payload.
		require.NotNil(t, seen)
		assert.Equal(t, int64(1000000), seen.Amount)
		assert.Equal(t, "Business Website", seen.ServiceName)
		assert.Equal(t, "asha@example.com", seen.CustomerEmail)

		attempt, _ := f.attempts.Get(context.Background(), attemptID)
		assert.Equal(t, entity.AttemptStatusSucceeded, attempt.Status)
		assert.Equal(t, "pay_1", attempt.PaymentID)
	})

	t.Run("failed verification is fatal and names the payment id", func(t *testing.T) {
		f := newCheckoutFixture(t)
		attemptID := open(t, f)
		f.gw.On("VerifyPayment", mock.Anything, mock.Anything).Return(false, nil)

		_, err := f.svc.Confirm(context.Background(), attemptID, &gateway.Proof{
			OrderID: "order_abc", PaymentID: "pay_bad", Signature: "forged",
		})

		var ce *domainErrors.CheckoutError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, domainErrors.ErrTypeVerificationFailed, ce.Type)
		assert.Equal(t, "pay_bad", ce.PaymentID)
		assert.False(t, f.invoices.called)
		assert.False(t, f.notifier.called)

		attempt, _ := f.attempts.Get(context.Background(), attemptID)
		assert.Equal(t, entity.AttemptStatusFailed, attempt.Status)
	})

	t.Run("verification error behaves like a failed verification", func(t *testing.T) {
		f := newCheckoutFixture(t)
		attemptID := open(t, f)
		f.gw.On("VerifyPayment", mock.Anything, mock.Anything).
			Return(false, errors.New("signature mismatch"))

		_, err := f.svc.Confirm(context.Background(), attemptID, &gateway.Proof{
			OrderID: "order_abc", PaymentID: "pay_2", Signature: "sig",
		})

		var ce *domainErrors.CheckoutError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, domainErrors.ErrTypeVerificationFailed, ce.Type)
	})

	t.Run("modal checkout cannot confirm without its signature", func(t *testing.T) {
		f := newCheckoutFixture(t)
		attemptID := open(t, f)

		_, err := f.svc.Confirm(context.Background(), attemptID, &gateway.Proof{
			OrderID: "order_abc", PaymentID: "pay_1",
		})

		var ce *domainErrors.CheckoutError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, domainErrors.ErrTypeValidation, ce.Type)
		f.gw.AssertNotCalled(t, "VerifyPayment", mock.Anything, mock.Anything)

		// The attempt survives for a retry with the full proof.
		attempt, _ := f.attempts.Get(context.Background(), attemptID)
		assert.Equal(t, entity.AttemptStatusAwaitingUser, attempt.Status)
	})

	t.Run("embedded buttons confirm with only the order id", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.gw.kind = gateway.KindPayPal
		f.gw.On("Ready", mock.Anything).Return(nil)
		f.gw.On("CreateOrder", mock.Anything, mock.Anything).
			Return(&gateway.Order{ID: "5O190127TN364715T", Amount: 15000, Currency: "USD", Status: "CREATED"}, nil)
		f.orders.On("Create", mock.Anything, mock.Anything).Return(nil)

		req := validOrderRequest()
		req.Region = "US"
		req.ServiceName = "Landing Page"
		resp, err := f.svc.CreateOrder(context.Background(), req)
		require.NoError(t, err)

		// Verification resolves the capture id server side.
		f.gw.On("VerifyPayment", mock.Anything, mock.AnythingOfType("*gateway.Proof")).
			Run(func(args mock.Arguments) { args.Get(1).(*gateway.Proof).PaymentID = "8XC90012AB345678C" }).
			Return(true, nil)
		f.orders.On("UpdateStatus", mock.Anything, "5O190127TN364715T", model.PaymentOrderStatusPaid).Return(nil)

		result, err := f.svc.Confirm(context.Background(), resp.AttemptID, &gateway.Proof{
			OrderID: "5O190127TN364715T",
		})

		require.NoError(t, err)
		assert.Equal(t, SeveritySuccess, result.Summary.Severity)
		assert.Equal(t, "8XC90012AB345678C", result.Invoice.PaymentID)
	})

	t.Run("unknown attempt", func(t *testing.T) {
		f := newCheckoutFixture(t)

		_, err := f.svc.Confirm(context.Background(), "missing", &gateway.Proof{OrderID: "o", PaymentID: "p"})

		var ce *domainErrors.CheckoutError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, domainErrors.ErrTypeAttemptNotFound, ce.Type)
	})

	t.Run("cancelled attempt cannot be confirmed", func(t *testing.T) {
		f := newCheckoutFixture(t)
		attemptID := open(t, f)
		f.orders.On("UpdateStatus", mock.Anything, "order_abc", model.PaymentOrderStatusAbandoned).Return(nil)
		_, err := f.svc.Cancel(context.Background(), attemptID)
		require.NoError(t, err)

		_, err = f.svc.Confirm(context.Background(), attemptID, &gateway.Proof{OrderID: "order_abc", PaymentID: "p", Signature: "sig"})

		var ce *domainErrors.CheckoutError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, domainErrors.ErrTypeAttemptConflict, ce.Type)
	})

	t.Run("degraded downstream still confirms with a warning", func(t *testing.T) {
		f := newCheckoutFixture(t)
		attemptID := open(t, f)
		f.invoices.saved = false
		f.notifier.outcomes = entity.NotificationOutcomes{OwnerAlert: true}
		f.gw.On("VerifyPayment", mock.Anything, mock.Anything).Return(true, nil)
		f.orders.On("UpdateStatus", mock.Anything, "order_abc", model.PaymentOrderStatusPaid).Return(nil)

		result, err := f.svc.Confirm(context.Background(), attemptID, &gateway.Proof{
			OrderID: "order_abc", PaymentID: "pay_3", Signature: "sig",
		})

		require.NoError(t, err)
		assert.Equal(t, SeverityWarning, result.Summary.Severity)
		assert.False(t, result.Saved)
	})
}

func TestCheckoutService_Cancel(t *testing.T) {
	open := func(t *testing.T, f *checkoutFixture, orderID string) string {
		t.Helper()
		f.gw.On("Ready", mock.Anything).Return(nil).Once()
		f.gw.On("CreateOrder", mock.Anything, mock.Anything).
			Return(&gateway.Order{ID: orderID, Amount: 1000000}, nil).Once()
		f.orders.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		resp, err := f.svc.CreateOrder(context.Background(), validOrderRequest())
		require.NoError(t, err)
		return resp.AttemptID
	}

	t.Run("cancel preserves the intent for retry", func(t *testing.T) {
		f := newCheckoutFixture(t)
		attemptID := open(t, f, "order_1")
		f.orders.On("UpdateStatus", mock.Anything, "order_1", model.PaymentOrderStatusAbandoned).Return(nil)

		attempt, err := f.svc.Cancel(context.Background(), attemptID)

		require.NoError(t, err)
		assert.Equal(t, entity.AttemptStatusCancelled, attempt.Status)
		assert.Equal(t, "Asha Rao", attempt.Intent.CustomerName)
		assert.Equal(t, "asha@example.com", attempt.Intent.CustomerEmail)
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		f := newCheckoutFixture(t)
		attemptID := open(t, f, "order_1")
		f.orders.On("UpdateStatus", mock.Anything, "order_1", model.PaymentOrderStatusAbandoned).Return(nil)

		_, err := f.svc.Cancel(context.Background(), attemptID)
		require.NoError(t, err)
		attempt, err := f.svc.Cancel(context.Background(), attemptID)

		require.NoError(t, err)
		assert.Equal(t, entity.AttemptStatusCancelled, attempt.Status)
		f.orders.AssertNumberOfCalls(t, "UpdateStatus", 1)
	})

	t.Run("retry after cancel gets a brand new order", func(t *testing.T) {
		f := newCheckoutFixture(t)
		firstID := open(t, f, "order_1")
		f.orders.On("UpdateStatus", mock.Anything, "order_1", model.PaymentOrderStatusAbandoned).Return(nil)
		_, err := f.svc.Cancel(context.Background(), firstID)
		require.NoError(t, err)

		secondID := open(t, f, "order_2")

		assert.NotEqual(t, firstID, secondID)
		second, _ := f.attempts.Get(context.Background(), secondID)
		assert.Equal(t, "order_2", second.OrderID)
		assert.Equal(t, entity.AttemptStatusAwaitingUser, second.Status)
	})
}

func TestCheckoutService_Fail(t *testing.T) {
	f := newCheckoutFixture(t)
	f.expectOrder("order_abc")
	resp, err := f.svc.CreateOrder(context.Background(), validOrderRequest())
	require.NoError(t, err)

	t.Run("known code maps to customer-facing text", func(t *testing.T) {
		message, err := f.svc.Fail(context.Background(), resp.AttemptID, &FailureReport{
			Code:        gateway.ErrCodeCardDeclined,
			Description: "issuer refused txn 0x91",
		})

		require.NoError(t, err)
		assert.Equal(t, "Your card was declined. Please try a different card or payment method.", message)

		attempt, _ := f.attempts.Get(context.Background(), resp.AttemptID)
		assert.Equal(t, entity.AttemptStatusFailed, attempt.Status)
		assert.Equal(t, gateway.ErrCodeCardDeclined, attempt.FailureCode)
	})

	t.Run("unknown code falls back to the gateway description", func(t *testing.T) {
		message, err := f.svc.Fail(context.Background(), resp.AttemptID, &FailureReport{
			Code:        "SOMETHING_ODD",
			Description: "the gateway said something odd",
		})

		require.NoError(t, err)
		assert.Equal(t, "the gateway said something odd", message)
	})
}
