// Package msgform wires the contract, the HTTP client, the form client and the
// renderers into a ready-to-use runtime.
package msgform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-msgform/pkg/client"
	"github.com/goliatone/go-msgform/pkg/contract"
	"github.com/goliatone/go-msgform/pkg/formclient"
	"github.com/goliatone/go-msgform/pkg/metrics"
	"github.com/goliatone/go-msgform/pkg/render"
	htmlrenderer "github.com/goliatone/go-msgform/pkg/renderers/html"
	"github.com/goliatone/go-msgform/pkg/renderers/text"
	"github.com/goliatone/go-msgform/pkg/validation"
)

// RenderOptions is re-exported for callers rendering views themselves.
type RenderOptions = render.RenderOptions

// View is re-exported so simple callers only import the root package.
type View = render.View

type options struct {
	source           contract.Source
	httpClient       *http.Client
	timeout          time.Duration
	logger           *slog.Logger
	metrics          *metrics.Metrics
	validateResponse bool
	validator        validation.Validator
	htmlOptions      []htmlrenderer.Option
	userAgent        string
}

// Option configures Open.
type Option func(*options)

// WithContractSource replaces the embedded backend description.
func WithContractSource(src contract.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithHTTPClient sets the client used for backend calls and remote contracts.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithTimeout caps each backend request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records submissions and backend calls.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithResponseValidation rejects backend responses that do not match the
// contract.
func WithResponseValidation(enabled bool) Option {
	return func(o *options) {
		o.validateResponse = enabled
	}
}

// WithValidator replaces the non-empty field validator.
func WithValidator(v validation.Validator) Option {
	return func(o *options) {
		o.validator = v
	}
}

// WithHTMLOptions configures the html renderer.
func WithHTMLOptions(opts ...htmlrenderer.Option) Option {
	return func(o *options) {
		o.htmlOptions = append(o.htmlOptions, opts...)
	}
}

// WithUserAgent sets the User-Agent sent to the backend.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// Runtime bundles the components built by Open.
type Runtime struct {
	Document   contract.Document
	Operations contract.Operations
	Client     *client.Client
	Forms      *formclient.FormClient
	Renderers  *render.Registry
	HTML       *htmlrenderer.Renderer
}

// Open loads the contract, resolves the backend operations and builds the
// client, form client and renderer registry for baseURL.
func Open(ctx context.Context, baseURL string, opts ...Option) (*Runtime, error) {
	cfg := options{
		logger:  slog.Default(),
		timeout: client.DefaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	doc, err := loadDocument(ctx, cfg)
	if err != nil {
		return nil, err
	}

	ops, err := NewParser(
		contract.WithRequiredOperations(contract.OperationCreateMessage, contract.OperationGetMessage),
	).Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("msgform: parse contract %s: %w", doc.Location(), err)
	}

	clientOpts := []client.Option{
		client.WithOperations(ops),
		client.WithTimeout(cfg.timeout),
		client.WithLogger(cfg.logger),
	}
	if cfg.httpClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(cfg.httpClient))
	}
	if cfg.userAgent != "" {
		clientOpts = append(clientOpts, client.WithUserAgent(cfg.userAgent))
	}
	if cfg.metrics != nil {
		clientOpts = append(clientOpts, client.WithObserver(cfg.metrics))
	}
	if cfg.validateResponse {
		v, err := NewValidator(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("msgform: response validator: %w", err)
		}
		clientOpts = append(clientOpts, client.WithResponseValidator(v))
	}

	c, err := client.New(baseURL, clientOpts...)
	if err != nil {
		return nil, err
	}

	formOpts := []formclient.Option{formclient.WithLogger(cfg.logger)}
	if cfg.validator != nil {
		formOpts = append(formOpts, formclient.WithValidator(cfg.validator))
	}
	if cfg.metrics != nil {
		formOpts = append(formOpts, formclient.WithRecorder(cfg.metrics))
	}
	forms, err := formclient.New(c, formOpts...)
	if err != nil {
		return nil, err
	}

	html, err := htmlrenderer.New(cfg.htmlOptions...)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		Document:   doc,
		Operations: ops,
		Client:     c,
		Forms:      forms,
		Renderers:  render.NewRegistry(text.New(), render.NewJSON(), html),
		HTML:       html,
	}, nil
}

func loadDocument(ctx context.Context, cfg options) (contract.Document, error) {
	if cfg.source == nil {
		return contract.DefaultDocument(), nil
	}

	loaderOpts := []contract.LoaderOption{contract.WithHTTPFallback(cfg.timeout)}
	if cfg.httpClient != nil {
		loaderOpts = append(loaderOpts, contract.WithHTTPClient(cfg.httpClient))
	}
	doc, err := NewLoader(loaderOpts...).Load(ctx, cfg.source)
	if err != nil {
		return contract.Document{}, fmt.Errorf("msgform: load contract: %w", err)
	}
	return doc, nil
}

// Render is a convenience for rendering v with the named renderer.
func (r *Runtime) Render(ctx context.Context, name string, v View, opts RenderOptions) ([]byte, error) {
	if r == nil || r.Renderers == nil {
		return nil, errors.New("msgform: runtime not initialised")
	}
	return r.Renderers.Render(ctx, name, v, opts)
}
