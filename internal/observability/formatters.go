// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-skill-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchResults outputs the ranked jobs for a skill selection.
func (p *Printer) PrintMatchResults(selected []string, results []types.MatchResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(selected, ", ")))
	sb.WriteString(fmt.Sprintf("Matching jobs: %d\n", len(results)))

	for i, r := range results {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, r.Title))
		sb.WriteString(fmt.Sprintf("    Relevance: %s%%\n", r.Relevance))
		if comment := r.MatchedComment(); comment != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", comment))
		}
		if len(r.Suggestions) > 0 {
			sb.WriteString(fmt.Sprintf("    Consider learning: %s\n", strings.Join(r.Suggestions, ", ")))
		}
	}

	if len(results) == 0 {
		sb.WriteString("\nNo jobs matched the selected skills.\n")
	}

	p.printBox("MATCHING JOBS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs autocomplete suggestions for a query.
func (p *Printer) PrintSuggestions(query string, suggestions []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Query: %q\n", query))
	if len(suggestions) == 0 {
		sb.WriteString("No suggestions")
	}
	for _, s := range suggestions {
		sb.WriteString(fmt.Sprintf("  • %s\n", s))
	}

	p.printBox("SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCatalogSummary outputs counts and the first few jobs of a catalog.
func (p *Printer) PrintCatalogSummary(title string, catalog *types.Catalog) {
	if catalog == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs:          %d\n", len(catalog.Jobs)))
	sb.WriteString(fmt.Sprintf("Known skills:  %d\n", len(catalog.Skills)))
	sb.WriteString(fmt.Sprintf("Abbreviations: %d\n", len(catalog.Abbreviations)))

	if len(catalog.Jobs) > 0 {
		sb.WriteString("\n")
		count := min(len(catalog.Jobs), maxItemsToShow)
		for i := 0; i < count; i++ {
			job := catalog.Jobs[i]
			sb.WriteString(fmt.Sprintf("  • %s (%d required)\n", job.Title, len(job.RequiredSkills)))
		}
		if len(catalog.Jobs) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(catalog.Jobs)-maxItemsToShow))
		}
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}
