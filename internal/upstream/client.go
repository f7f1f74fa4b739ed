package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"busbook/internal/shared/config"
)

type contextKey string

const tokenContextKey contextKey = "upstream_auth_token"

// ContextWithToken attaches the bearer token used for upstream calls
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext returns the bearer token attached to ctx, if any
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenContextKey).(string); ok {
		return token
	}
	return ""
}

// Client is the typed HTTP client for the remote booking backend
type Client interface {
	GetTripSeatMap(ctx context.Context, tripID, fromStopID, toStopID string) (*TripSeatMapResponse, error)
	ApplyCoupon(ctx context.Context, req ApplyCouponRequest) (*CouponResult, error)
	InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*PaymentIntent, error)
	VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*VerifyPaymentResult, error)
	DownloadTicket(ctx context.Context, bookingGroupID string) ([]byte, string, error)
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client from the upstream configuration
func NewClient(cfg config.UpstreamConfig) Client {
	return &client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

func (c *client) GetTripSeatMap(ctx context.Context, tripID, fromStopID, toStopID string) (*TripSeatMapResponse, error) {
	if tripID == "" || fromStopID == "" || toStopID == "" {
		return nil, fmt.Errorf("trip ID and stop IDs are required")
	}

	endpoint := fmt.Sprintf("/trips/%s/seatmap?from=%s&to=%s",
		url.PathEscape(tripID), url.QueryEscape(fromStopID), url.QueryEscape(toStopID))

	var out TripSeatMapResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) ApplyCoupon(ctx context.Context, req ApplyCouponRequest) (*CouponResult, error) {
	var out CouponResult
	if err := c.do(ctx, http.MethodPost, "/coupons/apply", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*PaymentIntent, error) {
	var out PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/payments/initiate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*VerifyPaymentResult, error) {
	var out VerifyPaymentResult
	if err := c.do(ctx, http.MethodPost, "/payments/verify", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) DownloadTicket(ctx context.Context, bookingGroupID string) ([]byte, string, error) {
	if bookingGroupID == "" {
		return nil, "", fmt.Errorf("booking group ID is required")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/tickets/"+url.PathEscape(bookingGroupID), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build ticket request: %w", err)
	}
	c.setHeaders(ctx, httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", decodeAPIError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read ticket body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return body, contentType, nil
}

// do performs a JSON request/response round trip against the backend
func (c *client) do(ctx context.Context, method, endpoint string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	c.setHeaders(ctx, httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *client) setHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// decodeAPIError extracts a structured backend rejection from an error response
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else if payload.Error != "" {
			apiErr.Message = payload.Error
		}
	}
	return apiErr
}
