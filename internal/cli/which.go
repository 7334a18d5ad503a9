package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWhichCommand(opts *Options) *cobra.Command {
	var rendererID string

	cmd := &cobra.Command{
		Use:   "which TEMPLATE",
		Short: "Print where a template name resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.renderer(cmd, rendererID)
			if err != nil {
				return err
			}
			tpl, err := renderer.GetTemplate(args[0])
			if err != nil {
				return err
			}
			origin := tpl.Origin()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", origin.Path(), origin.Engine)
			return err
		},
	}
	cmd.Flags().StringVarP(&rendererID, "renderer", "r", "", "Renderer to use instead of form_renderer")
	return cmd
}

func newRenderersCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "renderers",
		Short: "List the available renderers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := opts.loadSettings(cmd)
			if err != nil {
				return err
			}
			current := normalize(settings.FormRenderer)
			for _, id := range opts.registry.List() {
				marker := " "
				if id == current {
					marker = "*"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, id); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
