// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-page/internal/awards"
	"github.com/pdiddy/scholar-page/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the publications page",
	Long: `Generate fetches the profile's publications (or reads them from --input),
sorts them into journal and conference sections, highlights the researcher's
name, attaches BibTeX and badges from the awards file, and writes the page.

The page is written atomically: on any error the previous file is left in
place.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			keyProfileID:     "id",
			keyName:          "name",
			keyAliases:       "alias",
			keyMatchInitials: "match-initials",
			keyOutput:        "output",
			keyTemplate:      "template",
			keyAwards:        "awards",
			keyInput:         "input",
			keyCSL:           "csl",
			keySQLite:        "sqlite",
			keyUseProxy:      "proxy",
			keyDetails:       "details",
			keyTimeout:       "timeout",
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := pipeline.Generate(cmd.Context(), pipeline.Options{
			Config:   pipelineConfig(),
			Logger:   slog.Default(),
			Progress: os.Stderr,
		})
		if summary != nil {
			printSummary(cmd, summary)
		}
		return err
	},
}

func printSummary(cmd *cobra.Command, s *pipeline.Summary) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "wrote %s: %d journal, %d conference\n", s.OutputPath, s.Journal, s.Conference)
	if s.ProfileName != "" {
		fmt.Fprintf(w, "profile: %s (%s)\n", s.ProfileName, s.ProfileID)
	}
	fmt.Fprintf(w, "fetched: %d, skipped: %d, duplicates: %d, with badges: %d, author not found: %d\n",
		s.Fetched, s.Untitled, s.Duplicates, s.Badged, s.AuthorMissing)
	if s.CSLPath != "" {
		fmt.Fprintf(w, "wrote %s\n", s.CSLPath)
	}
	if s.SQLitePath != "" {
		fmt.Fprintf(w, "wrote %s\n", s.SQLitePath)
	}
}

func init() {
	generateCmd.Flags().String("id", "", "Google Scholar profile id (the user= parameter)")
	generateCmd.Flags().String("name", "", "researcher's full name, highlighted in author lists")
	generateCmd.Flags().StringArray("alias", nil, "additional name spelling to highlight (repeatable)")
	generateCmd.Flags().Bool("match-initials", false, "also highlight the name with abbreviated given names")
	generateCmd.Flags().StringP("output", "o", pipeline.DefaultOutputPath, "output HTML file")
	generateCmd.Flags().String("template", "", "custom HTML template containing {content} (default: built-in)")
	generateCmd.Flags().String("awards", awards.DefaultPath, "badge configuration file")
	generateCmd.Flags().String("input", "", "read publications from a file saved by fetch instead of the network")
	generateCmd.Flags().String("csl", "", "also write a CSL-YAML bibliography to this path")
	generateCmd.Flags().String("sqlite", "", "also write the publications to this SQLite database")
	generateCmd.Flags().Bool("proxy", false, "route requests through the configured proxy pool")
	generateCmd.Flags().Bool("details", true, "fetch each publication's detail page for full authors and citation data; --details=false reads only the profile table")
	generateCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(generateCmd)
}
