// Package b2brouter implements a minimal HTTP client for the B2Brouter
// electronic invoicing API. Only the three calls the bridge needs are
// covered: create invoice, send invoice and list accounts.
package b2brouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	// StagingBaseURL is the sandbox entrypoint.
	StagingBaseURL = "https://api-staging.b2brouter.net"
	// ProductionBaseURL is the live entrypoint.
	ProductionBaseURL = "https://api.b2brouter.net"

	apiVersion     = "1"
	defaultTimeout = 30 * time.Second
)

// APIError is a non-2xx response from the invoicing API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("invoicing API returned status %d", e.StatusCode)
}

// Client talks to the B2Brouter API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API entrypoint (staging vs production).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client authenticated with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		apiKey:     apiKey,
		baseURL:    StagingBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API entrypoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateInvoice creates a draft invoice under the given account.
func (c *Client) CreateInvoice(ctx context.Context, accountID string, invoice *Invoice) (*InvoiceRecord, error) {
	in := map[string]*Invoice{"invoice": invoice}
	var out struct {
		Invoice InvoiceRecord `json:"invoice"`
	}
	link := c.baseURL + "/accounts/" + accountID + "/invoices"
	if err := c.postJSON(ctx, link, in, &out); err != nil {
		return nil, err
	}
	return &out.Invoice, nil
}

// SendInvoice dispatches a previously created invoice to its recipient.
func (c *Client) SendInvoice(ctx context.Context, invoiceID int64) error {
	link := c.baseURL + "/invoices/" + strconv.FormatInt(invoiceID, 10) + "/send"
	return c.postJSON(ctx, link, struct{}{}, nil)
}

// ListAccounts fetches up to limit accounts visible to the API key. It is
// used as a lightweight authentication probe during key validation.
func (c *Client) ListAccounts(ctx context.Context, limit int) ([]Account, error) {
	var out struct {
		Accounts []Account `json:"accounts"`
	}
	link := fmt.Sprintf("%s/accounts?limit=%d", c.baseURL, limit)
	if err := c.getJSON(ctx, link, &out); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

func (c *Client) getJSON(ctx context.Context, link string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, link string, in, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "failed to marshal request body")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, link, bytes.NewReader(b))
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-B2B-API-Key", c.apiKey)
	req.Header.Set("X-B2B-API-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to reach invoicing API")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(body, &e) == nil {
			if e.Message != "" {
				apiErr.Message = e.Message
			} else {
				apiErr.Message = e.Error
			}
		}
		return apiErr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "failed to unmarshal response")
	}
	return nil
}
