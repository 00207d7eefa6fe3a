// Package formclient binds the store and retrieve forms to the backend and
// reflects every outcome into the shared display region.
package formclient

import (
	"context"
	"errors"
	"log/slog"

	"github.com/goliatone/go-msgform/pkg/client"
	"github.com/goliatone/go-msgform/pkg/display"
	"github.com/goliatone/go-msgform/pkg/message"
	"github.com/goliatone/go-msgform/pkg/render"
	"github.com/goliatone/go-msgform/pkg/validation"
)

// Backend is the part of client.Client the forms depend on.
type Backend interface {
	Store(ctx context.Context, out message.Outgoing) (*message.Stored, error)
	Retrieve(ctx context.Context, name string) (*message.Retrieved, error)
}

var _ Backend = (*client.Client)(nil)

// Recorder counts finished submissions.
type Recorder interface {
	ObserveSubmission(form, outcome string)
}

// Outcome describes how a submission ended. Err is nil on success; Stale is
// set when a newer submission had already updated the region.
type Outcome struct {
	Form      string
	Kind      render.Kind
	RequestID string
	Err       error
	Stale     bool
}

// OK reports whether the backend accepted the submission.
func (o Outcome) OK() bool {
	return o.Err == nil
}

type Option func(*FormClient)

// WithValidator replaces the non-empty field check.
func WithValidator(v validation.Validator) Option {
	return func(fc *FormClient) {
		if v != nil {
			fc.validator = v
		}
	}
}

// WithRegion shares an existing display region.
func WithRegion(r *display.Region) Option {
	return func(fc *FormClient) {
		if r != nil {
			fc.region = r
		}
	}
}

// WithLogger sets the submission logger.
func WithLogger(logger *slog.Logger) Option {
	return func(fc *FormClient) {
		if logger != nil {
			fc.logger = logger
		}
	}
}

// WithRecorder reports outcomes to r, typically metrics.
func WithRecorder(r Recorder) Option {
	return func(fc *FormClient) {
		fc.recorder = r
	}
}

// FormClient is safe for concurrent use; concurrent submissions race only on
// the display region, which keeps the newest outcome.
type FormClient struct {
	backend   Backend
	validator validation.Validator
	region    *display.Region
	logger    *slog.Logger
	recorder  Recorder
}

// New wires backend to a fresh display region.
func New(backend Backend, options ...Option) (*FormClient, error) {
	if backend == nil {
		return nil, errors.New("formclient: backend is required")
	}
	fc := &FormClient{
		backend:   backend,
		validator: validation.NonEmpty(),
		region:    display.New(),
		logger:    slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(fc)
		}
	}
	return fc, nil
}

// Region returns the display region the client writes to.
func (fc *FormClient) Region() *display.Region {
	return fc.region
}

// HandleSend validates the store form and, when both fields are present,
// posts them unchanged. Blank input never reaches the network.
func (fc *FormClient) HandleSend(ctx context.Context, name, text string) (render.View, Outcome) {
	ticket := fc.region.Begin(message.FormSend)
	out := message.NewOutgoing(name, text)

	if err := fc.validator.ValidateSend(out); err != nil {
		return fc.finish(ctx, ticket, name, render.Validation(message.FormSend, err), err)
	}

	stored, err := fc.backend.Store(ctx, out)
	if err != nil {
		return fc.finish(ctx, ticket, name, render.Failure(message.FormSend, err), err)
	}
	return fc.finish(ctx, ticket, name, render.Stored(*stored), nil)
}

// HandleRetrieve validates the retrieve form and looks the name up. A 404 is
// shown as "not found for <name>".
func (fc *FormClient) HandleRetrieve(ctx context.Context, name string) (render.View, Outcome) {
	ticket := fc.region.Begin(message.FormRetrieve)

	if err := fc.validator.ValidateRetrieve(name); err != nil {
		return fc.finish(ctx, ticket, name, render.Validation(message.FormRetrieve, err), err)
	}

	retrieved, err := fc.backend.Retrieve(ctx, name)
	switch {
	case errors.Is(err, client.ErrNotFound):
		return fc.finish(ctx, ticket, name, render.NotFound(name), err)
	case err != nil:
		return fc.finish(ctx, ticket, name, render.Failure(message.FormRetrieve, err), err)
	}
	return fc.finish(ctx, ticket, name, render.Retrieved(*retrieved), nil)
}

func (fc *FormClient) finish(ctx context.Context, ticket display.Ticket, name string, view render.View, err error) (render.View, Outcome) {
	applied := fc.region.Commit(ticket, view)
	view.RequestID = ticket.RequestID

	outcome := Outcome{
		Form:      ticket.Form,
		Kind:      view.Kind,
		RequestID: ticket.RequestID,
		Err:       err,
		Stale:     !applied,
	}
	if fc.recorder != nil {
		fc.recorder.ObserveSubmission(outcome.Form, string(outcome.Kind))
	}
	fc.log(ctx, outcome, name)
	return view, outcome
}

func (fc *FormClient) log(ctx context.Context, outcome Outcome, name string) {
	attrs := []slog.Attr{
		slog.String("form", outcome.Form),
		slog.String("request_id", outcome.RequestID),
		slog.String("name", name),
		slog.String("outcome", string(outcome.Kind)),
	}
	if status := statusOf(outcome.Err); status != 0 {
		attrs = append(attrs, slog.Int("status", status))
	}
	if outcome.Stale {
		attrs = append(attrs, slog.Bool("stale", true))
	}

	switch outcome.Kind {
	case render.KindStored, render.KindRetrieved:
		fc.logger.LogAttrs(ctx, slog.LevelInfo, "submission completed", attrs...)
	case render.KindValidation:
		attrs = append(attrs, slog.Any("error", outcome.Err))
		fc.logger.LogAttrs(ctx, slog.LevelWarn, "submission rejected", attrs...)
	default:
		attrs = append(attrs, slog.Any("error", outcome.Err))
		fc.logger.LogAttrs(ctx, slog.LevelError, "submission failed", attrs...)
	}
}

func statusOf(err error) int {
	var perr *client.ProtocolError
	if errors.As(err, &perr) {
		return perr.Status
	}
	return 0
}
