package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau/dinepos-api/internal/config"
	"github.com/mkamau/dinepos-api/internal/domain/entity"
	"github.com/mkamau/dinepos-api/pkg/apperror"
	"github.com/mkamau/dinepos-api/pkg/money"
	"golang.org/x/oauth2/clientcredentials"
)

// IdempotencyKeyHeader is the header stamped on every submission attempt so
// the upstream API can detect duplicate creates from retries.
const IdempotencyKeyHeader = "Idempotency-Key"

// SubmissionResult is the normalized outcome of a successful order
// submission, whatever envelope the upstream actually returned.
type SubmissionResult struct {
	OrderReference string      `json:"order_reference"`
	OrderNumber    string      `json:"order_number"`
	Total          money.Money `json:"-"`
}

// MarshalJSON exposes the total as a decimal amount.
func (r SubmissionResult) MarshalJSON() ([]byte, error) {
	type Alias SubmissionResult
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(r),
		Total: r.Total.Float64(),
	})
}

// Client submits orders to the upstream order API. It never retries on its
// own; callers decide, armed with the idempotency key semantics.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// NewClient creates an order API client. When client credentials are
// configured, outbound requests carry an OAuth2 bearer token.
func NewClient(cfg *config.OrderAPIConfig) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	if cfg.ClientID != "" && cfg.ClientSecret != "" && cfg.TokenURL != "" {
		creds := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = creds.Client(context.Background())
		httpClient.Timeout = cfg.Timeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		http:    httpClient,
	}
}

// Submit sends a normalized order request upstream and interprets the
// response. Each call stamps a fresh idempotency key; a timed-out attempt
// may still have created the order, which is why the timeout error warns
// before retrying.
func (c *Client) Submit(ctx context.Context, req *entity.OrderRequest) (*SubmissionResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperror.NewInvariantViolationError("order request is not serializable: " + err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(IdempotencyKeyHeader, uuid.New().String())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, apperror.NewSubmissionTimeoutError()
		}
		return nil, apperror.NewSubmissionFailedError(0, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewSubmissionFailedError(resp.StatusCode, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperror.NewSubmissionFailedError(resp.StatusCode, string(raw))
	}

	result, err := decodeEnvelope(raw)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewSubmissionFailedError(resp.StatusCode, string(raw))
	}
	return result, nil
}

// orderPayload is the upstream order record; only the fields the gateway
// needs are decoded. IDs arrive as numbers from some endpoints and strings
// from others.
type orderPayload struct {
	ID          json.Number `json:"id"`
	OrderNumber string      `json:"order_number"`
	TotalAmount float64     `json:"total_amount"`
}

type orderEnvelope struct {
	Success *bool               `json:"success"`
	Order   *orderPayload       `json:"order"`
	Errors  map[string][]string `json:"errors"`
	Results []orderPayload      `json:"results"`
	Orders  []orderPayload      `json:"orders"`
}

// decodeEnvelope normalizes the upstream's known response shapes:
// {success, order}, {success:false, errors:{...}}, a bare array,
// {results: [...]}, and {orders: [...]}. Shapes are tried in that order
// until one yields a record.
func decodeEnvelope(raw []byte) (*SubmissionResult, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []orderPayload
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, errors.New("empty order list")
		}
		return normalize(list[0]), nil
	}

	var env orderEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}

	if env.Order != nil {
		return normalize(*env.Order), nil
	}
	if len(env.Errors) > 0 {
		var fields []apperror.FieldError
		for field, messages := range env.Errors {
			for _, msg := range messages {
				fields = append(fields, apperror.FieldError{Field: field, Message: msg})
			}
		}
		return nil, apperror.NewValidationError(fields)
	}
	if env.Success != nil && !*env.Success {
		return nil, errors.New("upstream reported failure without details")
	}
	if len(env.Results) > 0 {
		return normalize(env.Results[0]), nil
	}
	if len(env.Orders) > 0 {
		return normalize(env.Orders[0]), nil
	}
	return nil, errors.New("response matched no known order envelope")
}

func normalize(p orderPayload) *SubmissionResult {
	reference := p.ID.String()
	number := p.OrderNumber
	if number == "" {
		number = reference
	}
	return &SubmissionResult{
		OrderReference: reference,
		OrderNumber:    number,
		Total:          money.FromCents(int64(math.Round(p.TotalAmount * 100))),
	}
}
