package razorpay

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
	"go.uber.org/zap"

	"github.com/ashwinbuilds/booking-engine/internal/domain/gateway"
)

// Gateway implements the PaymentGateway interface for Razorpay, the modal
// checkout gateway: the client opens an overlay against the order created
// here and posts back a payment id + signature as proof.
type Gateway struct {
	client    *razorpay.Client
	keySecret string
	logger    *zap.Logger
	ready     *gateway.Readiness
}

// New creates a Razorpay gateway
func New(keyID, keySecret string, logger *zap.Logger) *Gateway {
	g := &Gateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
		logger:    logger,
	}
	// Credentials were checked by the factory; priming is instant here. The
	// guard still exists so the checkout path has one readiness contract
	// across gateways.
	g.ready = gateway.NewReadiness(func(ctx context.Context) error { return nil })
	return g
}

// Kind returns the gateway kind
func (g *Gateway) Kind() gateway.Kind {
	return gateway.KindRazorpay
}

// Ready reports whether the gateway can be used
func (g *Gateway) Ready(ctx context.Context) error {
	return g.ready.Await(ctx)
}

// CreateOrder registers an order with Razorpay.
// POST /v1/orders
func (g *Gateway) CreateOrder(ctx context.Context, req *gateway.OrderRequest) (*gateway.Order, error) {
	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}

	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		g.logger.Error("Razorpay: order creation failed",
			zap.String("receipt", req.Receipt),
			zap.Error(err))
		return nil, &gateway.GatewayError{
			Code:    gateway.ErrCodeGatewayError,
			Message: "Razorpay order creation failed",
			Details: err.Error(),
		}
	}

	order, err := orderFromResponse(req, body)
	if err != nil {
		return nil, err
	}

	g.logger.Info("Razorpay: order created",
		zap.String("order_id", order.ID),
		zap.String("receipt", req.Receipt),
		zap.Int64("amount", order.Amount))

	return order, nil
}

// orderFromResponse maps the SDK's decoded order body onto the shared order
// type. The SDK hands back json-decoded maps, so numbers arrive as float64.
func orderFromResponse(req *gateway.OrderRequest, body map[string]interface{}) (*gateway.Order, error) {
	orderID, _ := body["id"].(string)
	if orderID == "" {
		return nil, &gateway.GatewayError{
			Code:    gateway.ErrCodeServerError,
			Message: "Razorpay returned no order id",
			Details: fmt.Sprintf("%v", body),
		}
	}

	order := &gateway.Order{
		ID:       orderID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	}
	if amount, ok := body["amount"].(float64); ok {
		order.Amount = int64(amount)
	}
	if status, ok := body["status"].(string); ok {
		order.Status = status
	}
	return order, nil
}

// VerifyPayment checks the HMAC signature Razorpay computes over
// order_id|payment_id. A bad signature means the proof cannot be trusted;
// the caller treats that as fatal for the attempt.
func (g *Gateway) VerifyPayment(ctx context.Context, proof *gateway.Proof) (bool, error) {
	if proof.OrderID == "" || proof.PaymentID == "" || proof.Signature == "" {
		return false, &gateway.GatewayError{
			Code:    gateway.ErrCodeBadRequest,
			Message: "incomplete Razorpay payment proof",
		}
	}

	params := map[string]interface{}{
		"razorpay_order_id":   proof.OrderID,
		"razorpay_payment_id": proof.PaymentID,
	}
	verified := utils.VerifyPaymentSignature(params, proof.Signature, g.keySecret)

	if !verified {
		g.logger.Error("Razorpay: signature verification failed",
			zap.String("order_id", proof.OrderID),
			zap.String("payment_id", proof.PaymentID))
		return false, nil
	}

	g.logger.Info("Razorpay: payment verified",
		zap.String("order_id", proof.OrderID),
		zap.String("payment_id", proof.PaymentID))

	return true, nil
}
