// Package cli defines the command-line interface for formrender.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formrender/internal/logging"
	"github.com/goliatone/go-formrender/pkg/conf"
	"github.com/goliatone/go-formrender/pkg/forms"
)

// defaultConfigPath is the settings file read when --config is not given.
const defaultConfigPath = "formrender.yaml"

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	LogLevel   string

	logger   *slog.Logger
	registry *forms.Registry
	prompter Prompter
	stderr   io.Writer
}

// Execute builds the root command, runs it with args and returns any error.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts := &Options{
		ConfigPath: defaultConfigPath,
		registry:   forms.DefaultRegistry(),
		prompter:   surveyPrompter{},
		stderr:     stderr,
	}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func newRootCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "formrender",
		Short:         "Resolve and render form widget templates",
		Long:          "formrender resolves form widget templates through the configured renderer (django, handlebars or project) and renders them with a context.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.ParseLevel(opts.LogLevel)
			opts.logger = logging.NewLogger(opts.stderr, level)
			opts.logger.Debug("logger initialized", "level", level.String())
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfigPath, "Path to the settings file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newRenderCommand(opts),
		newWhichCommand(opts),
		newRenderersCommand(opts),
		newInitCommand(opts),
	)
	return cmd
}

// loadSettings reads the settings file. A missing file at the default path
// yields the defaults so the built-in renderers work without configuration.
func (o *Options) loadSettings(cmd *cobra.Command) (conf.Settings, error) {
	settings, err := conf.Load(o.ConfigPath)
	if err == nil {
		return settings, nil
	}
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		o.logger.Debug("settings file not found, using defaults", "path", o.ConfigPath)
		settings = conf.Defaults()
		if env := os.Getenv(conf.EnvFormRenderer); env != "" {
			settings.FormRenderer = env
		}
		return settings, nil
	}
	return conf.Settings{}, err
}

// renderer publishes settings and builds the renderer they name, optionally
// overridden by id.
func (o *Options) renderer(cmd *cobra.Command, id string) (forms.Renderer, error) {
	settings, err := o.loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	if id != "" {
		settings.FormRenderer = id
	}
	if err := o.registry.Validate(settings); err != nil {
		return nil, err
	}
	conf.Configure(settings)

	cell := &forms.DefaultCell{
		Registry: o.registry,
		Settings: conf.Current,
		Options:  []forms.Option{forms.WithLogger(o.logger)},
	}
	renderer, err := cell.Renderer()
	if err != nil {
		return nil, fmt.Errorf("build renderer %q: %w", settings.FormRenderer, err)
	}
	o.logger.Debug("renderer ready", "renderer", settings.FormRenderer)
	return renderer, nil
}
