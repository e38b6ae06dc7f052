package main

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-skill-matcher/internal/observability"
	"github.com/jonathan/job-skill-matcher/internal/types"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <text>",
	Short: "Autocomplete a skill name",
	Long:  `Print abbreviation, prefix and fuzzy suggestions for a partial skill name.`,
	Example: `  skillmatch suggest js
  skillmatch suggest "machine lea"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ds, err := openSource(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer ds.Close()

	jobs, err := fetchJobs(cmd.Context(), cfg, ds.source)
	if err != nil {
		// Suggestions still work from the catalog's own skill list.
		logger.Warn("failed to fetch jobs, suggesting from catalog skills only", zap.Error(err))
		jobs = nil
	}

	query := strings.TrimSpace(strings.Join(args, " "))
	suggestions := buildIndex(cfg, ds.catalog, jobs).Suggest(query)

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), types.SuggestResponse{Query: query, Suggestions: suggestions})
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintSuggestions(query, suggestions)
	return nil
}
