package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ashwinbuilds/booking-engine/internal/domain/entity"
	domainErrors "github.com/ashwinbuilds/booking-engine/internal/domain/errors"
	"github.com/ashwinbuilds/booking-engine/internal/domain/gateway"
	"github.com/ashwinbuilds/booking-engine/internal/domain/model"
	"github.com/ashwinbuilds/booking-engine/internal/domain/repository"
)

// GatewayFactory hands out the gateway strategy for a kind. Returns a
// configuration error when the kind's credentials are missing, which the
// caller surfaces as a contact-us fallback.
type GatewayFactory interface {
	GatewayFor(kind gateway.Kind) (gateway.PaymentGateway, error)
}

// CreateOrderRequest carries the customer's purchase intent from the
// booking form.
type CreateOrderRequest struct {
	Region        string `json:"region"`
	ServiceName   string `json:"service" validate:"required"`
	CustomerName  string `json:"name"`
	CustomerEmail string `json:"email"`
	CustomerPhone string `json:"phone,omitempty"`
	ProjectBrief  string `json:"project_brief,omitempty"`
}

// CreateOrderResponse is everything the client needs to open the gateway's
// checkout surface.
type CreateOrderResponse struct {
	AttemptID   string       `json:"attempt_id"`
	OrderID     string       `json:"order_id"`
	Amount      int64        `json:"amount"`
	Currency    string       `json:"currency"`
	GatewayKind gateway.Kind `json:"gateway"`
	Prefill     Prefill      `json:"prefill"`
}

// Prefill is the customer detail snapshot the checkout overlay is opened
// with. Contact is digits only, as the gateways expect.
type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact,omitempty"`
}

// ConfirmationResult is the final outcome of a checkout attempt, consumed
// by the confirmation view.
type ConfirmationResult struct {
	Summary  Summary                     `json:"summary"`
	Invoice  *entity.Invoice             `json:"invoice"`
	Saved    bool                        `json:"saved"`
	Outcomes entity.NotificationOutcomes `json:"notifications"`
	Params   url.Values                  `json:"-"`
}

// FailureReport is the gateway-declared failure forwarded by the client's
// error callback.
type FailureReport struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// CheckoutService orchestrates the booking payment pipeline: order
// creation, verification, ledger write, notifications and the confirmation
// summary. One instance serves all attempts; each attempt owns its own
// order id and invoice id, so nothing here is shared across attempts.
type CheckoutService struct {
	pricing  *PricingService
	factory  GatewayFactory
	attempts repository.AttemptRepository
	orders   repository.PaymentOrderRepository
	invoices InvoiceWriter
	notifier NotificationDispatcher
	logger   *zap.Logger
	now      func() time.Time
}

func NewCheckoutService(
	pricing *PricingService,
	factory GatewayFactory,
	attempts repository.AttemptRepository,
	orders repository.PaymentOrderRepository,
	invoices InvoiceWriter,
	notifier NotificationDispatcher,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		pricing:  pricing,
		factory:  factory,
		attempts: attempts,
		orders:   orders,
		invoices: invoices,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateOrder validates the intent, registers a gateway order and opens a
// new checkout attempt. Validation happens before any network call; a
// customer with a typo never reaches the gateway.
func (s *CheckoutService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	plan, region, err := s.pricing.FindService(req.Region, req.ServiceName)
	if err != nil {
		return nil, err
	}

	intent := entity.BookingIntent{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		ProjectBrief:  strings.TrimSpace(req.ProjectBrief),
		Service:       *plan,
		Region:        region.Region,
	}
	if err := intent.Validate(); err != nil {
		return nil, err
	}

	gw, err := s.factory.GatewayFor(region.GatewayKind)
	if err != nil {
		return nil, err
	}
	if err := gw.Ready(ctx); err != nil {
		s.logger.Error("gateway not ready",
			zap.String("gateway", string(region.GatewayKind)),
			zap.Error(err))
		return nil, domainErrors.NewGatewayUnavailableError(err)
	}

	receipt := newReceipt(plan.Name, s.now())
	order, err := gw.CreateOrder(ctx, &gateway.OrderRequest{
		Receipt:  receipt,
		Amount:   plan.DepositAmount,
		Currency: region.Currency,
		Notes: map[string]string{
			"customer_name":  intent.CustomerName,
			"customer_email": intent.CustomerEmail,
			"service":        plan.Name,
			"project_brief":  intent.ProjectBrief,
		},
	})
	if err != nil {
		s.logger.Error("gateway order creation failed",
			zap.String("gateway", string(region.GatewayKind)),
			zap.String("receipt", receipt),
			zap.Error(err))
		return nil, domainErrors.NewGatewayError(
			"the payment order could not be created, please try again or contact us", err)
	}
	if order.ID == "" {
		return nil, domainErrors.NewGatewayError(
			"the payment order could not be created, please try again or contact us",
			fmt.Errorf("gateway returned an empty order id"))
	}

	// Audit copy of the gateway order. The gateway itself is the source of
	// truth for the money, so a failed audit write is logged, not fatal.
	if err := s.orders.Create(ctx, &model.PaymentOrder{
		OrderID:  order.ID,
		Gateway:  string(region.GatewayKind),
		Amount:   order.Amount,
		Currency: region.Currency,
		Receipt:  receipt,
		Status:   model.PaymentOrderStatusCreated,
		Notes: model.JSONB{
			"customer_name":  intent.CustomerName,
			"customer_email": intent.CustomerEmail,
			"service":        plan.Name,
		},
	}); err != nil {
		s.logger.Error("failed to record payment order",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	attempt := &entity.CheckoutAttempt{
		ID:          uuid.NewString(),
		Intent:      intent,
		GatewayKind: region.GatewayKind,
		Currency:    region.Currency,
		OrderID:     order.ID,
		Receipt:     receipt,
		Status:      entity.AttemptStatusAwaitingUser,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		s.logger.Error("failed to save checkout attempt",
			zap.String("order_id", order.ID),
			zap.Error(err))
		return nil, domainErrors.NewTransientError(
			"the checkout could not be started, please try again", err)
	}

	s.logger.Info("checkout attempt opened",
		zap.String("attempt_id", attempt.ID),
		zap.String("order_id", order.ID),
		zap.String("gateway", string(region.GatewayKind)),
		zap.Int64("amount", order.Amount))

	return &CreateOrderResponse{
		AttemptID:   attempt.ID,
		OrderID:     order.ID,
		Amount:      order.Amount,
		Currency:    region.Currency,
		GatewayKind: region.GatewayKind,
		Prefill: Prefill{
			Name:    intent.CustomerName,
			Email:   intent.CustomerEmail,
			Contact: intent.ContactDigits(),
		},
	}, nil
}

// Confirm takes the gateway's payment proof through verification, the
// ledger write, the notifications and the final summary. The current
// attempt is re-read from the store here, at the moment the callback fires,
// never from a snapshot captured at order time.
func (s *CheckoutService) Confirm(ctx context.Context, attemptID string, proof *gateway.Proof) (*ConfirmationResult, error) {
	attempt, err := s.loadAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	// The modal gateway's proof must arrive complete; the embedded-button
	// gateway only ever knows its order id, the capture id is obtained
	// server-side during verification.
	if attempt.GatewayKind == gateway.KindRazorpay && (proof.PaymentID == "" || proof.Signature == "") {
		return nil, domainErrors.NewValidationError("payment_id",
			"payment id and signature are required for this payment method")
	}

	if !attempt.Transition(entity.AttemptStatusVerifying, s.now()) {
		return nil, domainErrors.NewAttemptConflictError(
			fmt.Sprintf("attempt is %s and cannot be confirmed", attempt.Status))
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		s.logger.Warn("failed to persist verifying state", zap.Error(err))
	}

	// The proof is forwarded as received; only the cross-check fields the
	// embedded-button gateway needs are filled in from the attempt.
	if proof.Amount == 0 {
		proof.Amount = attempt.Intent.Service.DepositAmount
	}
	if proof.ServiceName == "" {
		proof.ServiceName = attempt.Intent.Service.Name
	}
	if proof.CustomerEmail == "" {
		proof.CustomerEmail = attempt.Intent.CustomerEmail
	}

	gw, err := s.factory.GatewayFor(attempt.GatewayKind)
	if err != nil {
		return nil, err
	}

	verified, err := gw.VerifyPayment(ctx, proof)
	if err != nil || !verified {
		attempt.Transition(entity.AttemptStatusFailed, s.now())
		attempt.FailureCode = domainErrors.ErrTypeVerificationFailed
		if saveErr := s.attempts.Save(ctx, attempt); saveErr != nil {
			s.logger.Warn("failed to persist failed attempt", zap.Error(saveErr))
		}
		s.logger.Error("payment verification failed",
			zap.String("attempt_id", attempt.ID),
			zap.String("order_id", proof.OrderID),
			zap.String("payment_id", proof.PaymentID),
			zap.Bool("verified", verified),
			zap.Error(err))
		return nil, domainErrors.NewVerificationFailedError(proof.PaymentID, err)
	}

	if err := s.orders.UpdateStatus(ctx, attempt.OrderID, model.PaymentOrderStatusPaid); err != nil {
		s.logger.Error("failed to mark payment order paid",
			zap.String("order_id", attempt.OrderID),
			zap.Error(err))
	}

	// Verification passed; from here on every outcome is a confirmed
	// purchase, at worst with a caveat.
	invoice, saved := s.invoices.Write(ctx, attempt.Intent, attempt.Currency, proof.PaymentID, attempt.OrderID)
	outcomes := s.notifier.Dispatch(ctx, invoice, attempt.Intent)
	summary := Summarize(saved, outcomes)

	attempt.PaymentID = proof.PaymentID
	attempt.Transition(entity.AttemptStatusSucceeded, s.now())
	if err := s.attempts.Save(ctx, attempt); err != nil {
		s.logger.Warn("failed to persist succeeded attempt", zap.Error(err))
	}

	s.logger.Info("checkout completed",
		zap.String("attempt_id", attempt.ID),
		zap.String("invoice_id", invoice.InvoiceID),
		zap.String("severity", string(summary.Severity)),
		zap.Bool("ledger_saved", saved))

	return &ConfirmationResult{
		Summary:  summary,
		Invoice:  invoice,
		Saved:    saved,
		Outcomes: outcomes,
		Params:   ConfirmationParams(invoice, outcomes),
	}, nil
}

// Cancel abandons an attempt, keeping the intent so the customer can retry
// without re-entering their details. No gateway call is made; the orphaned
// order simply expires gateway-side and a retry creates a new one.
func (s *CheckoutService) Cancel(ctx context.Context, attemptID string) (*entity.CheckoutAttempt, error) {
	attempt, err := s.loadAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	if attempt.Status == entity.AttemptStatusCancelled {
		return attempt, nil
	}
	if !attempt.Transition(entity.AttemptStatusCancelled, s.now()) {
		return nil, domainErrors.NewAttemptConflictError(
			fmt.Sprintf("attempt is %s and cannot be cancelled", attempt.Status))
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, domainErrors.NewTransientError("failed to cancel the attempt", err)
	}

	if err := s.orders.UpdateStatus(ctx, attempt.OrderID, model.PaymentOrderStatusAbandoned); err != nil {
		s.logger.Warn("failed to mark payment order abandoned",
			zap.String("order_id", attempt.OrderID),
			zap.Error(err))
	}

	s.logger.Info("checkout attempt cancelled",
		zap.String("attempt_id", attempt.ID),
		zap.String("order_id", attempt.OrderID))

	return attempt, nil
}

// Fail records a gateway-declared failure, returning the attempt to a
// retriable end state with the intent preserved, and maps the code to
// customer-facing text.
func (s *CheckoutService) Fail(ctx context.Context, attemptID string, report *FailureReport) (string, error) {
	attempt, err := s.loadAttempt(ctx, attemptID)
	if err != nil {
		return "", err
	}

	if attempt.Transition(entity.AttemptStatusFailed, s.now()) {
		attempt.FailureCode = report.Code
		if err := s.attempts.Save(ctx, attempt); err != nil {
			s.logger.Warn("failed to persist failure state", zap.Error(err))
		}
	}

	message := gateway.UserFacingMessage(report.Code, report.Description)
	s.logger.Warn("gateway declared payment failure",
		zap.String("attempt_id", attempt.ID),
		zap.String("code", report.Code),
		zap.String("description", report.Description))

	return message, nil
}

// Get returns an attempt for support lookups.
func (s *CheckoutService) Get(ctx context.Context, attemptID string) (*entity.CheckoutAttempt, error) {
	return s.loadAttempt(ctx, attemptID)
}

func (s *CheckoutService) loadAttempt(ctx context.Context, attemptID string) (*entity.CheckoutAttempt, error) {
	if attemptID == "" {
		return nil, domainErrors.NewAttemptNotFoundError(attemptID)
	}
	attempt, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return nil, domainErrors.NewTransientError("failed to load the checkout attempt", err)
	}
	if attempt == nil {
		return nil, domainErrors.NewAttemptNotFoundError(attemptID)
	}
	return attempt, nil
}

// newReceipt derives the idempotency key from the service name and the
// order time, so retried clicks stay distinguishable server-side.
func newReceipt(serviceName string, now time.Time) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(serviceName), " ", "-"))
	if len(slug) > 24 {
		slug = slug[:24]
	}
	return fmt.Sprintf("%s-%d", slug, now.UnixMilli())
}
