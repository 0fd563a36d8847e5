package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ashwinbuilds/booking-engine/internal/domain/gateway"
)

const (
	ordersPath = "/v2/checkout/orders"
	tokenPath  = "/v1/oauth2/token"
)

// Gateway implements the PaymentGateway interface for PayPal, the
// embedded-button gateway: the client's button widget calls back into the
// order created here, and approval is verified by capturing the order and
// cross-checking the capture against the attempt.
type Gateway struct {
	clientID string
	secret   string
	baseURL  string
	client   *http.Client
	logger   *zap.Logger
	ready    *gateway.Readiness

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// New creates a PayPal gateway
func New(clientID, secret, baseURL string, logger *zap.Logger) *Gateway {
	g := &Gateway{
		clientID: clientID,
		secret:   secret,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
	// Priming fetches the first OAuth token. Until that round trip
	// completes no checkout surface may be opened against this gateway.
	g.ready = gateway.NewReadiness(func(ctx context.Context) error {
		_, err := g.token(ctx)
		return err
	})
	return g
}

// Kind returns the gateway kind
func (g *Gateway) Kind() gateway.Kind {
	return gateway.KindPayPal
}

// Ready reports whether the gateway can be used
func (g *Gateway) Ready(ctx context.Context) error {
	return g.ready.Await(ctx)
}

// CreateOrder registers a CAPTURE-intent order with PayPal.
// POST /v2/checkout/orders
func (g *Gateway) CreateOrder(ctx context.Context, req *gateway.OrderRequest) (*gateway.Order, error) {
	body := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"reference_id": req.Receipt,
				"custom_id":    req.Receipt,
				"description":  req.Notes["service"],
				"amount": map[string]interface{}{
					"currency_code": req.Currency,
					"value":         minorToValue(req.Amount),
				},
			},
		},
	}

	resp, err := g.post(ctx, ordersPath, body)
	if err != nil {
		return nil, err
	}

	orderID, _ := resp["id"].(string)
	if orderID == "" {
		return nil, &gateway.GatewayError{
			Code:    gateway.ErrCodeServerError,
			Message: "PayPal returned no order id",
		}
	}
	status, _ := resp["status"].(string)

	g.logger.Info("PayPal: order created",
		zap.String("order_id", orderID),
		zap.String("status", status),
		zap.String("receipt", req.Receipt))

	return &gateway.Order{
		ID:       orderID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   status,
	}, nil
}

// VerifyPayment captures the approved order and confirms the capture is
// COMPLETED for the expected amount. The capture id becomes the payment id
// the rest of the pipeline carries.
func (g *Gateway) VerifyPayment(ctx context.Context, proof *gateway.Proof) (bool, error) {
	if proof.OrderID == "" {
		return false, &gateway.GatewayError{
			Code:    gateway.ErrCodeBadRequest,
			Message: "incomplete PayPal payment proof",
		}
	}

	resp, err := g.post(ctx, fmt.Sprintf("%s/%s/capture", ordersPath, url.PathEscape(proof.OrderID)), nil)
	if err != nil {
		// The button widget may already have captured the order; in that
		// case the order lookup settles whether money actually moved.
		var gwErr *gateway.GatewayError
		if isAlreadyCaptured(err) {
			resp, gwErr = g.getOrder(ctx, proof.OrderID)
			if gwErr != nil {
				return false, gwErr
			}
		} else {
			return false, err
		}
	}

	status, _ := resp["status"].(string)
	if status != "COMPLETED" {
		g.logger.Error("PayPal: capture not completed",
			zap.String("order_id", proof.OrderID),
			zap.String("status", status))
		return false, nil
	}

	captureID, amount := extractCapture(resp)
	if proof.Amount > 0 && amount > 0 && amount != proof.Amount {
		g.logger.Error("PayPal: captured amount mismatch",
			zap.String("order_id", proof.OrderID),
			zap.Int64("expected", proof.Amount),
			zap.Int64("captured", amount))
		return false, nil
	}
	// Guest checkouts and PayPal account payments report the payer's own
	// address, so a mismatch with the booking email is only conclusive when
	// PayPal actually returned one.
	payerEmail := extractPayerEmail(resp)
	if proof.CustomerEmail != "" && payerEmail != "" && !strings.EqualFold(payerEmail, proof.CustomerEmail) {
		g.logger.Error("PayPal: payer does not match the booking",
			zap.String("order_id", proof.OrderID),
			zap.String("payer_email", payerEmail))
		return false, nil
	}
	if desc := extractDescription(resp); proof.ServiceName != "" && desc != "" && !strings.EqualFold(desc, proof.ServiceName) {
		g.logger.Error("PayPal: captured order is for a different service",
			zap.String("order_id", proof.OrderID),
			zap.String("description", desc),
			zap.String("expected", proof.ServiceName))
		return false, nil
	}
	if captureID != "" {
		proof.PaymentID = captureID
	}

	g.logger.Info("PayPal: payment captured and verified",
		zap.String("order_id", proof.OrderID),
		zap.String("capture_id", captureID),
		zap.Int64("amount", amount))

	return true, nil
}

// token returns a cached OAuth access token, refreshing it when within a
// minute of expiry.
func (g *Gateway) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	if g.accessToken != "" && time.Until(g.tokenExpiry) > time.Minute {
		token := g.accessToken
		g.mu.Unlock()
		return token, nil
	}
	g.mu.Unlock()

	form := url.Values{"grant_type": {"client_credentials"}}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &gateway.GatewayError{
			Code:    gateway.ErrCodeBadRequest,
			Message: "failed to create PayPal token request",
			Details: err.Error(),
		}
	}
	httpReq.SetBasicAuth(g.clientID, g.secret)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		g.logger.Error("PayPal: token request failed", zap.Error(err))
		return "", &gateway.GatewayError{
			Code:    gateway.ErrCodeNetworkError,
			Message: "PayPal API request failed",
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &gateway.GatewayError{
			Code:    gateway.ErrCodeNetworkError,
			Message: "failed to read PayPal response",
			Details: err.Error(),
		}
	}
	if resp.StatusCode != http.StatusOK {
		g.logger.Error("PayPal: token request rejected",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(respBody)))
		return "", &gateway.GatewayError{
			Code:    gateway.ErrCodeGatewayError,
			Message: "PayPal authentication failed",
			Details: string(respBody),
		}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		return "", &gateway.GatewayError{
			Code:    gateway.ErrCodeServerError,
			Message: "failed to parse PayPal token response",
			Details: err.Error(),
		}
	}

	g.mu.Lock()
	g.accessToken = tokenResp.AccessToken
	g.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	g.mu.Unlock()

	return tokenResp.AccessToken, nil
}

func (g *Gateway) post(ctx context.Context, path string, body interface{}) (map[string]interface{}, error) {
	token, err := g.token(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, &gateway.GatewayError{
				Code:    gateway.ErrCodeBadRequest,
				Message: "failed to prepare PayPal request",
				Details: err.Error(),
			}
		}
		reader = bytes.NewReader(jsonBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, reader)
	if err != nil {
		return nil, &gateway.GatewayError{
			Code:    gateway.ErrCodeBadRequest,
			Message: "failed to create PayPal request",
			Details: err.Error(),
		}
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	return g.do(httpReq)
}

func (g *Gateway) getOrder(ctx context.Context, orderID string) (map[string]interface{}, *gateway.GatewayError) {
	token, err := g.token(ctx)
	if err != nil {
		if gwErr, ok := err.(*gateway.GatewayError); ok {
			return nil, gwErr
		}
		return nil, &gateway.GatewayError{Code: gateway.ErrCodeGatewayError, Message: err.Error()}
	}

	httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+ordersPath+"/"+url.PathEscape(orderID), nil)
	if reqErr != nil {
		return nil, &gateway.GatewayError{
			Code:    gateway.ErrCodeBadRequest,
			Message: "failed to create PayPal request",
			Details: reqErr.Error(),
		}
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, doErr := g.do(httpReq)
	if doErr != nil {
		if gwErr, ok := doErr.(*gateway.GatewayError); ok {
			return nil, gwErr
		}
		return nil, &gateway.GatewayError{Code: gateway.ErrCodeGatewayError, Message: doErr.Error()}
	}
	return resp, nil
}

func (g *Gateway) do(httpReq *http.Request) (map[string]interface{}, error) {
	resp, err := g.client.Do(httpReq)
	if err != nil {
		g.logger.Error("PayPal: API request failed",
			zap.String("path", httpReq.URL.Path),
			zap.Error(err))
		return nil, &gateway.GatewayError{
			Code:    gateway.ErrCodeNetworkError,
			Message: "PayPal API request failed",
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &gateway.GatewayError{
			Code:    gateway.ErrCodeNetworkError,
			Message: "failed to read PayPal response",
			Details: err.Error(),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp map[string]interface{}
		_ = json.Unmarshal(respBody, &errResp)
		name, _ := errResp["name"].(string)
		message, _ := errResp["message"].(string)

		g.logger.Error("PayPal: API call rejected",
			zap.String("path", httpReq.URL.Path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(respBody)))

		return nil, &gateway.GatewayError{
			Code:    mapErrorName(name, resp.StatusCode),
			Message: message,
			Details: string(respBody),
		}
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &gateway.GatewayError{
			Code:    gateway.ErrCodeServerError,
			Message: "failed to parse PayPal response",
			Details: err.Error(),
		}
	}
	return result, nil
}

// extractCapture digs the capture id and captured amount out of an order or
// capture response.
func extractCapture(resp map[string]interface{}) (string, int64) {
	units, _ := resp["purchase_units"].([]interface{})
	for _, u := range units {
		unit, _ := u.(map[string]interface{})
		payments, _ := unit["payments"].(map[string]interface{})
		captures, _ := payments["captures"].([]interface{})
		for _, c := range captures {
			capture, _ := c.(map[string]interface{})
			id, _ := capture["id"].(string)
			amount, _ := capture["amount"].(map[string]interface{})
			value, _ := amount["value"].(string)
			return id, valueToMinor(value)
		}
	}
	return "", 0
}

// extractPayerEmail reads the payer's address from an order or capture
// response. Empty when PayPal omitted the payer block.
func extractPayerEmail(resp map[string]interface{}) string {
	payer, _ := resp["payer"].(map[string]interface{})
	email, _ := payer["email_address"].(string)
	return email
}

// extractDescription reads the purchase-unit description, which CreateOrder
// sets to the booked service name. Capture responses may omit it.
func extractDescription(resp map[string]interface{}) string {
	units, _ := resp["purchase_units"].([]interface{})
	for _, u := range units {
		unit, _ := u.(map[string]interface{})
		if desc, _ := unit["description"].(string); desc != "" {
			return desc
		}
	}
	return ""
}

func isAlreadyCaptured(err error) bool {
	gwErr, ok := err.(*gateway.GatewayError)
	return ok && strings.Contains(gwErr.Details, "ORDER_ALREADY_CAPTURED")
}

// mapErrorName folds PayPal error names onto the shared gateway codes.
func mapErrorName(name string, statusCode int) string {
	switch {
	case name == "INVALID_REQUEST" || name == "UNPROCESSABLE_ENTITY":
		return gateway.ErrCodeBadRequest
	case name == "INSTRUMENT_DECLINED":
		return gateway.ErrCodeCardDeclined
	case statusCode >= 500:
		return gateway.ErrCodeServerError
	default:
		return gateway.ErrCodeGatewayError
	}
}

// minorToValue renders minor units as the decimal string PayPal expects
// ("35000" cents -> "350.00").
func minorToValue(amount int64) string {
	return decimal.NewFromInt(amount).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// valueToMinor parses a PayPal decimal string back to minor units.
func valueToMinor(value string) int64 {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0
	}
	return d.Mul(decimal.NewFromInt(100)).IntPart()
}
