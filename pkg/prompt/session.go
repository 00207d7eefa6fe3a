// Package prompt runs the two forms as an interactive terminal session.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-msgform/pkg/formclient"
	"github.com/goliatone/go-msgform/pkg/render"
	"github.com/goliatone/go-msgform/pkg/renderers/text"
)

// Actions offered by the session menu, in display order.
const (
	ActionStore    = "Store a message"
	ActionRetrieve = "Retrieve a message"
	ActionQuit     = "Quit"
)

var actions = []string{ActionStore, ActionRetrieve, ActionQuit}

type Option func(*Session)

// WithDriver overrides the prompt driver.
func WithDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithRenderer selects how the display region is printed.
func WithRenderer(r render.Renderer) Option {
	return func(s *Session) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithRenderOptions passes options to the renderer on every print.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(s *Session) {
		s.renderOptions = opts
	}
}

// WithMultiline asks for the message in a multi-line editor prompt.
func WithMultiline(enabled bool) Option {
	return func(s *Session) {
		s.multiline = enabled
	}
}

// Session drives a formclient.Page from a terminal.
type Session struct {
	page          *formclient.Page
	driver        PromptDriver
	renderer      render.Renderer
	renderOptions render.RenderOptions
	multiline     bool
}

// New creates a session for page.
func New(page *formclient.Page, options ...Option) (*Session, error) {
	if page == nil {
		return nil, errors.New("prompt: page is required")
	}
	s := &Session{
		page:     page,
		renderer: text.New(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s, nil
}

// Run loops over the action menu until the user quits. Ctrl+C returns
// ErrAborted.
func (s *Session) Run(ctx context.Context) error {
	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message: "What would you like to do?",
			Options: actions,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			return fmt.Errorf("prompt: unknown action %d", idx)
		}

		switch actions[idx] {
		case ActionStore:
			err = s.Store(ctx)
		case ActionRetrieve:
			err = s.Retrieve(ctx)
		case ActionQuit:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Store asks for the store form fields, submits them and prints the region.
// Previous values are offered as defaults.
func (s *Session) Store(ctx context.Context) error {
	current := s.page.Send()

	name, err := s.driver.Input(ctx, InputConfig{
		Message: "Name",
		Default: current.Name,
		Help:    "The name the message is stored under.",
	})
	if err != nil {
		return err
	}

	var msg string
	if s.multiline {
		msg, err = s.driver.TextArea(ctx, TextAreaConfig{Message: "Message", Default: current.Message})
	} else {
		msg, err = s.driver.Input(ctx, InputConfig{Message: "Message", Default: current.Message})
	}
	if err != nil {
		return err
	}

	s.page.SetSend(formclient.SendForm{Name: name, Message: msg})
	view, _ := s.page.SubmitSend(ctx)
	return s.show(ctx, view)
}

// Retrieve asks for a name, looks it up and prints the region.
func (s *Session) Retrieve(ctx context.Context) error {
	name, err := s.driver.Input(ctx, InputConfig{
		Message: "Name to look up",
		Default: s.page.Retrieve().Name,
	})
	if err != nil {
		return err
	}

	s.page.SetRetrieve(formclient.RetrieveForm{Name: name})
	view, _ := s.page.SubmitRetrieve(ctx)
	return s.show(ctx, view)
}

func (s *Session) show(ctx context.Context, view render.View) error {
	out, err := s.renderer.Render(ctx, view, s.renderOptions)
	if err != nil {
		return fmt.Errorf("prompt: render: %w", err)
	}
	return s.driver.Info(ctx, strings.TrimRight(string(out), "\n"))
}
