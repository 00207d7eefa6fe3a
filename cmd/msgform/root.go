package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-msgform"
	"github.com/goliatone/go-msgform/internal/config"
	"github.com/goliatone/go-msgform/internal/logging"
	"github.com/goliatone/go-msgform/pkg/contract"
	"github.com/goliatone/go-msgform/pkg/formclient"
	"github.com/goliatone/go-msgform/pkg/metrics"
	"github.com/goliatone/go-msgform/pkg/render"
	htmlrenderer "github.com/goliatone/go-msgform/pkg/renderers/html"
)

// errSubmission is returned after a failed submission has already been
// rendered, so main only sets the exit code.
var errSubmission = errors.New("submission did not succeed")

type rootFlags struct {
	configPath        string
	envFile           string
	baseURL           string
	renderer          string
	logLevel          string
	logFormat         string
	contract          string
	timeout           time.Duration
	validateResponses bool
	verbose           bool
}

type app struct {
	flags   rootFlags
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	stdout  io.Writer
	stderr  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "msgform",
		Short:         "Store and retrieve encrypted messages through the message backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "YAML config file (default "+config.DefaultFile+" when present)")
	pf.StringVar(&a.flags.envFile, "env-file", config.DefaultEnvFile, "dotenv file read before the environment; empty disables it")
	pf.StringVar(&a.flags.baseURL, "base-url", "", "backend base URL")
	pf.StringVar(&a.flags.renderer, "renderer", "", "output renderer: text, json or html")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "log format: text or json")
	pf.StringVar(&a.flags.contract, "contract", "", "backend contract file or URL (default embedded)")
	pf.DurationVar(&a.flags.timeout, "timeout", 0, "per-request timeout")
	pf.BoolVar(&a.flags.validateResponses, "validate-responses", false, "reject responses that do not match the contract")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "include request ids in output")

	root.AddCommand(
		newSendCmd(a),
		newGetCmd(a),
		newPromptCmd(a),
		newServeCmd(a),
		newContractCmd(a),
		newHealthCmd(a),
	)
	return root
}

// setup loads configuration, applies flags set on the command line and builds
// the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.configPath, config.WithEnvFile(a.flags.envFile))
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = a.flags.baseURL
	}
	if flags.Changed("renderer") {
		cfg.Renderer = a.flags.renderer
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.flags.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.flags.logFormat
	}
	if flags.Changed("contract") {
		cfg.Contract = a.flags.contract
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.flags.timeout
	}
	if flags.Changed("validate-responses") {
		cfg.ValidateResponses = a.flags.validateResponses
	}
	if flags.Changed("verbose") {
		cfg.Verbose = a.flags.verbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: a.stderr,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.metrics = metrics.New()
	return nil
}

func (a *app) contractSource() (contract.Source, error) {
	if a.cfg.Contract == "" {
		return nil, nil
	}
	return contract.ResolveSource(a.cfg.Contract)
}

func (a *app) runtime(ctx context.Context) (*msgform.Runtime, error) {
	src, err := a.contractSource()
	if err != nil {
		return nil, err
	}
	opts := []msgform.Option{
		msgform.WithLogger(a.logger),
		msgform.WithMetrics(a.metrics),
		msgform.WithTimeout(a.cfg.Timeout),
		msgform.WithResponseValidation(a.cfg.ValidateResponses),
		msgform.WithUserAgent("msgform-cli"),
		msgform.WithHTMLOptions(htmlrenderer.WithVariant(a.cfg.ThemeVariant)),
	}
	if src != nil {
		opts = append(opts, msgform.WithContractSource(src))
	}
	return msgform.Open(ctx, a.cfg.BaseURL, opts...)
}

func (a *app) renderOptions() render.RenderOptions {
	return render.RenderOptions{Variant: a.cfg.ThemeVariant, Verbose: a.cfg.Verbose}
}

// show prints view with the configured renderer and turns a failed outcome
// into errSubmission.
func (a *app) show(ctx context.Context, rt *msgform.Runtime, view render.View, outcome formclient.Outcome) error {
	out, err := rt.Render(ctx, a.cfg.Renderer, view, a.renderOptions())
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if _, err := a.stdout.Write(out); err != nil {
		return err
	}
	if !outcome.OK() {
		return errSubmission
	}
	return nil
}
