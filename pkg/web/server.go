// Package web serves the two forms as an HTML page. Form posts return the
// display region as a fragment for htmx, or the whole page otherwise.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/goliatone/go-msgform/pkg/formclient"
	"github.com/goliatone/go-msgform/pkg/metrics"
	"github.com/goliatone/go-msgform/pkg/render"
	"github.com/goliatone/go-msgform/pkg/render/template/gotemplate"
	htmlrenderer "github.com/goliatone/go-msgform/pkg/renderers/html"
)

const (
	maxFormBytes    = 64 << 10
	shutdownTimeout = 5 * time.Second
)

// Server renders the forms page and handles its submissions.
type Server struct {
	forms       *formclient.FormClient
	region      *htmlrenderer.Renderer
	page        *gotemplate.Engine
	pageFS      fs.FS
	metrics     *metrics.Metrics
	logger      *slog.Logger
	health      HealthCheck
	corsOrigins []string
	variant     string
	htmxSrc     string
	title       string
	verbose     bool
	router      http.Handler
}

// New builds a server for fc.
func New(fc *formclient.FormClient, options ...Option) (*Server, error) {
	if fc == nil {
		return nil, errors.New("web: form client is required")
	}
	s := &Server{
		forms:   fc,
		pageFS:  TemplatesFS(),
		logger:  slog.Default(),
		htmxSrc: DefaultHTMXSource,
		title:   DefaultTitle,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	if s.region == nil {
		region, err := htmlrenderer.New(htmlrenderer.WithVariant(s.variant))
		if err != nil {
			return nil, fmt.Errorf("web: region renderer: %w", err)
		}
		s.region = region
	}

	page, err := gotemplate.New(
		gotemplate.WithFS(s.pageFS),
		gotemplate.WithGlobals(map[string]any{
			"title":    s.title,
			"htmx_src": s.htmxSrc,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("web: page templates: %w", err)
	}
	s.page = page
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	if s.metrics != nil {
		r.Use(metricsMiddleware(s.metrics))
	}
	r.Use(securityHeaders)
	r.Use(chimw.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(s.cors().Handler)

	r.Get("/", s.handleIndex)
	r.Route("/forms", func(r chi.Router) {
		r.Use(maxBody(maxFormBytes))
		r.Post("/send", s.handleSend)
		r.Post("/retrieve", s.handleRetrieve)
	})
	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}
	return r
}

func (s *Server) cors() *cors.Cors {
	origins := s.corsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "HX-Request", "HX-Target", "HX-Current-URL", "HX-Trigger"},
		MaxAge:         300,
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("web: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("page server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	s.logger.Info("page server stopped")
	return nil
}

type pageState struct {
	send     formclient.SendForm
	retrieve formclient.RetrieveForm
	view     render.View
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, r, pageState{view: render.Idle()})
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	state := pageState{
		send: formclient.SendForm{
			Name:    r.PostForm.Get("name"),
			Message: r.PostForm.Get("message"),
		},
	}
	state.view, _ = s.forms.HandleSend(r.Context(), state.send.Name, state.send.Message)
	s.respond(w, r, state)
}

func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	state := pageState{
		retrieve: formclient.RetrieveForm{Name: r.PostForm.Get("name")},
	}
	state.view, _ = s.forms.HandleRetrieve(r.Context(), state.retrieve.Name)
	s.respond(w, r, state)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, state pageState) {
	if r.Header.Get("HX-Request") == "" {
		s.writePage(w, r, state)
		return
	}

	fragment, err := s.region.Render(r.Context(), state.view, render.RenderOptions{Verbose: s.verbose})
	if err != nil {
		s.fail(w, r, "render region", err)
		return
	}
	w.Header().Set("Content-Type", s.region.ContentType())
	w.Header().Set("Vary", "HX-Request")
	_, _ = w.Write(fragment)
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, state pageState) {
	variant := r.URL.Query().Get("variant")
	if variant == "" {
		variant = s.variant
	}

	stylesheet, err := s.region.Stylesheet(variant)
	if err != nil {
		s.fail(w, r, "resolve theme", err)
		return
	}
	fragment, err := s.region.Render(r.Context(), state.view, render.RenderOptions{Variant: variant, Verbose: s.verbose})
	if err != nil {
		s.fail(w, r, "render region", err)
		return
	}

	body, err := s.page.RenderTemplate(PageTemplate, map[string]any{
		"stylesheet": stylesheet,
		"region":     string(fragment),
		"send": map[string]string{
			"name":    state.send.Name,
			"message": state.send.Message,
		},
		"retrieve": map[string]string{
			"name": state.retrieve.Name,
		},
	})
	if err != nil {
		s.fail(w, r, "render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", "HX-Request")
	_, _ = w.Write([]byte(body))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	payload := map[string]string{"status": "ok"}
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			status = http.StatusServiceUnavailable
			payload = map[string]string{"status": "unavailable", "error": err.Error()}
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to write health response", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, step string, err error) {
	s.logger.ErrorContext(r.Context(), "page server error",
		"step", step,
		"request_id", chimw.GetReqID(r.Context()),
		"error", err,
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
