// Package html renders the display region as an HTML fragment. Output is
// passed through a bluemonday policy and theme tokens are exposed as CSS
// custom properties for the page that embeds the fragment.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-msgform/pkg/render"
	rendertemplate "github.com/goliatone/go-msgform/pkg/render/template"
	"github.com/goliatone/go-msgform/pkg/render/template/gotemplate"
)

// Name is the registry name of the HTML renderer.
const Name = "html"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	manifest         *theme.Manifest
	selector         theme.ThemeSelector
	themeName        string
	variant          string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithManifest replaces the built-in theme manifest.
func WithManifest(manifest *theme.Manifest) Option {
	return func(cfg *config) {
		if manifest != nil {
			cfg.manifest = manifest
		}
	}
}

// WithThemeSelector resolves themes through selector instead of the local
// manifest.
func WithThemeSelector(selector theme.ThemeSelector, name string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = name
	}
}

// WithVariant sets the default theme variant.
func WithVariant(variant string) Option {
	return func(cfg *config) {
		cfg.variant = variant
	}
}

// Renderer implements render.Renderer for HTML fragments.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	manifest  *theme.Manifest
	selector  theme.ThemeSelector
	themeName string
	variant   string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		manifest:   DefaultManifest(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.selector == nil {
		if err := cfg.manifest.Validate(); err != nil {
			return nil, fmt.Errorf("html renderer: %w", err)
		}
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	name := cfg.themeName
	if name == "" {
		name = cfg.manifest.Name
	}

	return &Renderer{
		templates: renderer,
		manifest:  cfg.manifest,
		selector:  cfg.selector,
		themeName: name,
		variant:   cfg.variant,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the sanitized display region fragment.
func (r *Renderer) Render(ctx context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(RegionTemplate, map[string]any{
		"view":    view,
		"verbose": options.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return sanitizeRegion([]byte(result)), nil
}

// Theme resolves the theme configuration for variant; empty selects the
// renderer default.
func (r *Renderer) Theme(variant string) (*theme.RendererConfig, error) {
	if variant == "" {
		variant = r.variant
	}

	var selection *theme.Selection
	if r.selector != nil {
		sel, err := r.selector.Select(r.themeName, variant)
		if err != nil {
			return nil, fmt.Errorf("html renderer: select theme %q: %w", r.themeName, err)
		}
		selection = sel
	} else {
		selection = &theme.Selection{
			Theme:    r.themeName,
			Variant:  variant,
			Manifest: r.manifest,
		}
	}
	return resolveTheme(selection)
}

// Stylesheet returns a :root block declaring the theme CSS variables.
func (r *Renderer) Stylesheet(variant string) (string, error) {
	cfg, err := r.Theme(variant)
	if err != nil {
		return "", err
	}
	return cssVarsStyle(cfg.CSSVars), nil
}
