package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-skill-matcher/internal/observability"
	"github.com/jonathan/job-skill-matcher/internal/ranking"
	"github.com/jonathan/job-skill-matcher/internal/skills"
	"github.com/jonathan/job-skill-matcher/internal/types"
)

var (
	matchSkills  string
	matchResolve bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank jobs against a set of skills",
	Long: `Rank every job by the share of its required skills covered by the given skills.
Skills are comma or semicolon separated; with --resolve, abbreviations and partial
names are first mapped to their canonical catalog form.`,
	Example: `  skillmatch match --skills "JavaScript, React"
  skillmatch match --skills "js; node" --resolve --json`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchSkills, "skills", "s", "", "Comma-separated skills (required)")
	matchCmd.Flags().BoolVar(&matchResolve, "resolve", false, "Resolve abbreviations and partial names first")
	_ = matchCmd.MarkFlagRequired("skills")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	// Reject an empty selection before touching any data source.
	selected := skills.ParseSkills(matchSkills)
	if len(selected) == 0 {
		return ranking.ErrInvalidInput
	}

	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	ds, err := openSource(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer ds.Close()

	jobs, err := fetchJobs(cmd.Context(), cfg, ds.source)
	if err != nil {
		return fmt.Errorf("failed to fetch jobs: %w", err)
	}

	if matchResolve {
		selected = buildIndex(cfg, ds.catalog, jobs).ResolveAll(selected)
	}

	results, err := engine.Match(selected, jobs)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), types.MatchResponse{
			Skills:  skills.Unique(selected),
			Results: results,
			Count:   len(results),
		})
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintMatchResults(skills.Unique(selected), results)
	return nil
}
