package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formrender/pkg/conf"
	"github.com/goliatone/go-formrender/pkg/forms"
)

// Prompter asks the questions of the init command.
type Prompter interface {
	Select(message string, options []string, def string) (string, error)
	Confirm(message string, def bool) (bool, error)
	Input(message string) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Select(message string, options []string, def string) (string, error) {
	var out string
	err := survey.AskOne(&survey.Select{Message: message, Options: options, Default: def}, &out)
	return out, translateSurveyErr(err)
}

func (surveyPrompter) Confirm(message string, def bool) (bool, error) {
	var out bool
	err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &out)
	return out, translateSurveyErr(err)
}

func (surveyPrompter) Input(message string) (string, error) {
	var out string
	err := survey.AskOne(&survey.Input{Message: message}, &out, survey.WithValidator(survey.Required))
	return out, translateSurveyErr(err)
}

var errAborted = errors.New("init aborted")

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}

func newInitCommand(opts *Options) *cobra.Command {
	var (
		rendererID string
		noInput    bool
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(opts.ConfigPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", opts.ConfigPath)
			}

			settings := conf.Defaults()
			if rendererID != "" {
				settings.FormRenderer = rendererID
			}
			if !noInput {
				if err := promptSettings(opts.prompter, opts.registry.List(), &settings); err != nil {
					return err
				}
			}
			if err := opts.registry.Validate(settings); err != nil {
				return err
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			data, err := conf.Marshal(settings)
			if err != nil {
				return fmt.Errorf("encode settings: %w", err)
			}
			if err := os.WriteFile(opts.ConfigPath, data, 0o644); err != nil {
				return fmt.Errorf("write settings: %w", err)
			}
			opts.logger.Info("settings written", "path", opts.ConfigPath, "renderer", settings.FormRenderer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&rendererID, "renderer", "r", "", "Renderer to configure")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "Do not prompt; use flags and defaults")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing settings file")
	return cmd
}

func promptSettings(p Prompter, renderers []string, settings *conf.Settings) error {
	choice, err := p.Select("Form renderer:", renderers, normalize(settings.FormRenderer))
	if err != nil {
		return err
	}
	settings.FormRenderer = choice

	for {
		more, err := p.Confirm("Add an installed application?", false)
		if err != nil {
			return err
		}
		if !more {
			break
		}
		label, err := p.Input("Application label:")
		if err != nil {
			return err
		}
		path, err := p.Input("Application path:")
		if err != nil {
			return err
		}
		settings.InstalledApps = append(settings.InstalledApps, conf.App{
			Label: strings.TrimSpace(label),
			Path:  strings.TrimSpace(path),
		})
	}

	if settings.FormRenderer == forms.RendererProject {
		dir, err := p.Input("Project templates directory:")
		if err != nil {
			return err
		}
		settings.Templates = append(settings.Templates, conf.TemplateBackend{
			Backend: "django",
			Dirs:    []string{strings.TrimSpace(dir)},
			AppDirs: true,
		})
	}
	return nil
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
