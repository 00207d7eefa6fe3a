package web

import (
	"context"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/goliatone/go-msgform/pkg/metrics"
	htmlrenderer "github.com/goliatone/go-msgform/pkg/renderers/html"
)

// DefaultHTMXSource is the script loaded by the page so forms swap the display
// region in place. Forms still work without it.
const DefaultHTMXSource = "https://unpkg.com/htmx.org@1.9.12"

// DefaultTitle is the page heading.
const DefaultTitle = "Encrypted messages"

// HealthCheck reports whether the backend is reachable.
type HealthCheck func(ctx context.Context) error

type Option func(*Server)

// WithLogger sets the request and handler logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records request metrics and serves them on /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithRenderer overrides the display region renderer.
func WithRenderer(r *htmlrenderer.Renderer) Option {
	return func(s *Server) {
		if r != nil {
			s.region = r
		}
	}
}

// WithPageTemplates overrides the templates used for the full page. The set
// must contain "page.tmpl".
func WithPageTemplates(files fs.FS) Option {
	return func(s *Server) {
		if files != nil {
			s.pageFS = files
		}
	}
}

// WithCORSOrigins sets the allowed origins. Empty allows any origin.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		s.corsOrigins = s.corsOrigins[:0]
		for _, origin := range origins {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				s.corsOrigins = append(s.corsOrigins, trimmed)
			}
		}
	}
}

// WithVariant selects the default theme variant. A "variant" query parameter
// overrides it per request.
func WithVariant(variant string) Option {
	return func(s *Server) {
		s.variant = strings.TrimSpace(variant)
	}
}

// WithVerbose adds request ids to rendered regions.
func WithVerbose(verbose bool) Option {
	return func(s *Server) {
		s.verbose = verbose
	}
}

// WithHealthCheck makes /healthz probe the backend.
func WithHealthCheck(check HealthCheck) Option {
	return func(s *Server) {
		s.health = check
	}
}

// WithHTMXSource overrides the htmx script URL. Empty drops the script tag.
func WithHTMXSource(src string) Option {
	return func(s *Server) {
		s.htmxSrc = strings.TrimSpace(src)
	}
}

// WithTitle sets the page heading.
func WithTitle(title string) Option {
	return func(s *Server) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			s.title = trimmed
		}
	}
}
