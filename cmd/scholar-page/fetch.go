// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-page/internal/pipeline"
	"github.com/pdiddy/scholar-page/internal/scholar"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch a profile's publications and print them",
	Long: `Fetch retrieves the raw publication list of a Google Scholar profile and
writes it to stdout as JSON or YAML. Save the output and pass it to
"generate --input" to rebuild the page without fetching again.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			keyProfileID: "id",
			keyUseProxy:  "proxy",
			keyDetails:   "details",
			keyTimeout:   "timeout",
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != scholar.FormatJSON && format != scholar.FormatYAML {
			return &pipeline.StageError{Stage: pipeline.StageConfig, Err: fmt.Errorf("%w: unknown format %q", pipeline.ErrConfig, format)}
		}

		cfg := fetchConfig()
		if cfg.ProfileID == "" {
			return &pipeline.StageError{Stage: pipeline.StageConfig, Err: fmt.Errorf("%w: profile id is required", pipeline.ErrConfig)}
		}
		client := scholar.NewClient(scholar.WithLogger(slog.Default()), scholar.WithProgress(os.Stderr))
		profile, err := client.Fetch(cmd.Context(), cfg)
		if err != nil {
			return &pipeline.StageError{Stage: pipeline.StageFetch, Err: err}
		}
		if err := scholar.Encode(cmd.OutOrStdout(), profile, format); err != nil {
			return &pipeline.StageError{Stage: pipeline.StageWrite, Err: err}
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().String("id", "", "Google Scholar profile id (the user= parameter)")
	fetchCmd.Flags().Bool("proxy", false, "route requests through the configured proxy pool")
	fetchCmd.Flags().Bool("details", true, "fetch each publication's detail page for full authors and citation data; --details=false reads only the profile table")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().String("format", scholar.FormatJSON, "output format: json or yaml")

	rootCmd.AddCommand(fetchCmd)
}
