// Package client talks to the message backend: POST /message stores a
// message, GET /message/{name} retrieves it. Failures come back as
// *TransportError or *ProtocolError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-msgform/pkg/contract"
	"github.com/goliatone/go-msgform/pkg/message"
)

const maxBodyBytes = 1 << 20

// Client is safe for concurrent use.
type Client struct {
	base      string
	http      *http.Client
	timeout   time.Duration
	ops       contract.Operations
	validator contract.Validator
	userAgent string
	logger    *slog.Logger
	observer  Observer
}

// New builds a client for the backend at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("client: base URL %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("client: base URL %q has no host", baseURL)
	}
	u.RawQuery = ""
	u.Fragment = ""

	c := &Client{
		base:      strings.TrimSuffix(u.String(), "/"),
		http:      http.DefaultClient,
		timeout:   DefaultTimeout,
		ops:       contract.DefaultOperations(),
		userAgent: "msgform",
		logger:    slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// BaseURL returns the normalised backend address.
func (c *Client) BaseURL() string {
	return c.base
}

// Store submits out exactly as given and returns the backend confirmation.
func (c *Client) Store(ctx context.Context, out message.Outgoing) (*message.Stored, error) {
	body, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("client: encode message: %w", err)
	}
	var stored message.Stored
	if err := c.do(ctx, contract.OperationCreateMessage, nil, body, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Retrieve looks up the message stored under name. A 404 yields an error
// matching ErrNotFound.
func (c *Client) Retrieve(ctx context.Context, name string) (*message.Retrieved, error) {
	var retrieved message.Retrieved
	params := map[string]string{message.FieldName: name}
	if err := c.do(ctx, contract.OperationGetMessage, params, nil, &retrieved); err != nil {
		return nil, err
	}
	return &retrieved, nil
}

// Home fetches the backend greeting. It doubles as a reachability check.
func (c *Client) Home(ctx context.Context) (string, error) {
	var payload struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, contract.OperationHome, nil, nil, &payload); err != nil {
		return "", err
	}
	return payload.Message, nil
}

func (c *Client) do(ctx context.Context, operation string, params map[string]string, body []byte, dest any) error {
	op, err := c.ops.Lookup(operation)
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}
	path, err := op.Expand(params)
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}
	target := c.base + path

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, op.Method, target, reader)
	if err != nil {
		return fmt.Errorf("client: build %s request: %w", operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(operation, 0, started)
		c.logger.DebugContext(ctx, "backend request failed",
			slog.String("operation", operation),
			slog.String("url", target),
			slog.Any("error", err),
		)
		return &TransportError{Operation: operation, URL: target, Err: unwrapURLError(err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.observe(operation, resp.StatusCode, started)
	c.logger.DebugContext(ctx, "backend request",
		slog.String("operation", operation),
		slog.String("method", op.Method),
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(started)),
	)
	if err != nil {
		return &TransportError{Operation: operation, URL: target, Err: err}
	}

	if c.validator != nil {
		if verr := c.validator.ValidateResponse(ctx, req, resp.StatusCode, resp.Header, payload); verr != nil {
			return &ProtocolError{Operation: operation, Status: resp.StatusCode, Err: verr}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProtocolError{
			Operation: operation,
			Status:    resp.StatusCode,
			Payload:   errorPayload(payload),
		}
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return &ProtocolError{
			Operation: operation,
			Status:    resp.StatusCode,
			Err:       fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

func (c *Client) observe(operation string, status int, started time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(operation, status, time.Since(started))
	}
}

// unwrapURLError drops the *url.Error layer; TransportError already carries
// the operation and URL.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}
