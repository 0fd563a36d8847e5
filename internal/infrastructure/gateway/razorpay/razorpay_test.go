package razorpay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ashwinbuilds/booking-engine/internal/domain/gateway"
)

func orderRequest() *gateway.OrderRequest {
	return &gateway.OrderRequest{
		Amount:   1000000,
		Currency: "INR",
		Receipt:  "rcpt_1",
	}
}

func TestOrderFromResponse(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]interface{}
		wantErr    string
		wantAmount int64
		wantStatus string
	}{
		{
			name: "created order",
			body: map[string]interface{}{
				"id":       "order_IluGWxBm9U8zJ8",
				"amount":   float64(1000000),
				"currency": "INR",
				"status":   "created",
			},
			wantAmount: 1000000,
			wantStatus: "created",
		},
		{
			name:    "missing order id",
			body:    map[string]interface{}{"error": map[string]interface{}{"code": "SERVER_ERROR"}},
			wantErr: gateway.ErrCodeServerError,
		},
		{
			name: "decoded amount overrides the requested one",
			body: map[string]interface{}{
				"id":     "order_IluGWxBm9U8zJ8",
				"amount": float64(990000),
				"status": "created",
			},
			wantAmount: 990000,
			wantStatus: "created",
		},
		{
			name:       "amount and status absent fall back to the request",
			body:       map[string]interface{}{"id": "order_IluGWxBm9U8zJ8"},
			wantAmount: 1000000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := orderFromResponse(orderRequest(), tt.body)

			if tt.wantErr != "" {
				require.Error(t, err)
				var gwErr *gateway.GatewayError
				require.ErrorAs(t, err, &gwErr)
				assert.Equal(t, tt.wantErr, gwErr.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "order_IluGWxBm9U8zJ8", order.ID)
			assert.Equal(t, tt.wantAmount, order.Amount)
			assert.Equal(t, tt.wantStatus, order.Status)
			assert.Equal(t, "INR", order.Currency)
			assert.Equal(t, "rcpt_1", order.Receipt)
		})
	}
}

func TestVerifyPayment_IncompleteProof(t *testing.T) {
	g := New("rzp_test_key", "secret", zap.NewNop())

	tests := []struct {
		name  string
		proof *gateway.Proof
	}{
		{"missing signature", &gateway.Proof{OrderID: "order_1", PaymentID: "pay_1"}},
		{"missing payment id", &gateway.Proof{OrderID: "order_1", Signature: "sig"}},
		{"missing order id", &gateway.Proof{PaymentID: "pay_1", Signature: "sig"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := g.VerifyPayment(context.Background(), tt.proof)

			assert.False(t, ok)
			var gwErr *gateway.GatewayError
			require.ErrorAs(t, err, &gwErr)
			assert.Equal(t, gateway.ErrCodeBadRequest, gwErr.Code)
		})
	}
}

func TestReady_PrimesInstantly(t *testing.T) {
	g := New("rzp_test_key", "secret", zap.NewNop())
	assert.NoError(t, g.Ready(context.Background()))
}
