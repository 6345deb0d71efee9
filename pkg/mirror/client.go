package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/propnest/backend/pkg/controllers/payments"
)

// APIError is returned by the Client when the API responds with an error status.
type APIError struct {
	Status  int    // HTTP status of the response
	Message string // Value of the error field of the response
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Rejected reports if the server refused the request for good. Retrying a
// rejected request does not change the outcome.
//
// Authentication failures are not rejections, they are fixed by a new token
// and not by changing the request.
func (e *APIError) Rejected() bool {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden,
		http.StatusRequestTimeout, http.StatusConflict, http.StatusTooManyRequests:
		return false
	}

	return e.Status >= 400 && e.Status < 500
}

// Client is a typed client for the payments API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

// WithHTTPClient sets the http.Client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient returns a client for the API at baseURL, e.g. https://example.com/api.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    http.DefaultClient,
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

type envelope[T any] struct {
	Data  T       `json:"data"`
	Error *string `json:"error"`
}

func do[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return zero, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	var e envelope[T]
	decodeErr := json.NewDecoder(resp.Body).Decode(&e)

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if decodeErr == nil && e.Error != nil {
			apiErr.Message = *e.Error
		}
		return zero, apiErr
	}

	if decodeErr != nil {
		return zero, fmt.Errorf("decoding response of %s %s: %w", method, path, decodeErr)
	}

	return e.Data, nil
}

// ListPayments returns all payments of the project, oldest first.
func (c *Client) ListPayments(ctx context.Context, projectID string, filter payments.PaymentQueryFilter) ([]payments.Payment, error) {
	q := url.Values{}
	if filter.Type != "" {
		q.Set("type", filter.Type)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Recipient != "" {
		q.Set("recipient", filter.Recipient)
	}

	path := "/payments/project/" + url.PathEscape(projectID)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	return do[[]payments.Payment](ctx, c, http.MethodGet, path, nil)
}

func (c *Client) CreatePayment(ctx context.Context, p payments.PaymentEditable) (payments.Payment, error) {
	return do[payments.Payment](ctx, c, http.MethodPost, "/payments", p)
}

func (c *Client) GetPayment(ctx context.Context, id uuid.UUID) (payments.Payment, error) {
	return do[payments.Payment](ctx, c, http.MethodGet, "/payments/"+id.String(), nil)
}

func (c *Client) MarkPaid(ctx context.Context, id uuid.UUID) (payments.Payment, error) {
	return do[payments.Payment](ctx, c, http.MethodPatch, "/payments/paid/"+id.String(), nil)
}

func (c *Client) MarkOverdue(ctx context.Context, id uuid.UUID) (payments.Payment, error) {
	return do[payments.Payment](ctx, c, http.MethodPatch, "/payments/overdue/"+id.String(), nil)
}

func (c *Client) MarkInstallmentPaid(ctx context.Context, paymentID, installmentID uuid.UUID) (payments.Payment, error) {
	return do[payments.Payment](ctx, c, http.MethodPatch, fmt.Sprintf("/payments/installment/%s/%s", paymentID, installmentID), nil)
}

func (c *Client) InitPool(ctx context.Context, p payments.PoolInitEditable) (payments.PoolInit, error) {
	return do[payments.PoolInit](ctx, c, http.MethodPost, "/payments/pool/init", p)
}

func (c *Client) Allocate(ctx context.Context, a payments.AllocationEditable) (payments.AllocationResult, error) {
	return do[payments.AllocationResult](ctx, c, http.MethodPost, "/payments/pool/allocate", a)
}

// GetPool returns the pool of the project, nil if it has none.
func (c *Client) GetPool(ctx context.Context, projectID string) (*payments.Pool, error) {
	return do[*payments.Pool](ctx, c, http.MethodGet, "/payments/pool/"+url.PathEscape(projectID), nil)
}

func (c *Client) Reconcile(ctx context.Context, projectID string) (payments.Reconciliation, error) {
	return do[payments.Reconciliation](ctx, c, http.MethodGet, "/payments/pool/"+url.PathEscape(projectID)+"/reconcile", nil)
}
