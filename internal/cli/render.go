package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRenderCommand(opts *Options) *cobra.Command {
	var (
		contextPath string
		rendererID  string
		requestPath string
		method      string
	)

	cmd := &cobra.Command{
		Use:   "render TEMPLATE",
		Short: "Render a template with a YAML or JSON context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readContext(contextPath)
			if err != nil {
				return err
			}

			renderer, err := opts.renderer(cmd, rendererID)
			if err != nil {
				return err
			}

			var req *http.Request
			if requestPath != "" {
				req, err = http.NewRequestWithContext(cmd.Context(), method, requestPath, nil)
				if err != nil {
					return fmt.Errorf("build request: %w", err)
				}
			}

			out, err := renderer.Render(args[0], data, req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&contextPath, "context", "", "YAML or JSON file with the render context")
	cmd.Flags().StringVarP(&rendererID, "renderer", "r", "", "Renderer to use instead of form_renderer")
	cmd.Flags().StringVar(&requestPath, "request-path", "", "Render as part of a request for this path")
	cmd.Flags().StringVar(&method, "request-method", http.MethodGet, "Method of the simulated request")

	return cmd
}

func readContext(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read context: %w", err)
	}
	data := map[string]any{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse context %s: %w", path, err)
	}
	return data, nil
}
