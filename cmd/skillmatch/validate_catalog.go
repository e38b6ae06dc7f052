package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-skill-matcher/internal/catalog"
	"github.com/jonathan/job-skill-matcher/internal/observability"
	"github.com/jonathan/job-skill-matcher/internal/schemas"
)

var validateSchema string

var validateCatalogCmd = &cobra.Command{
	Use:   "validate-catalog <file>",
	Short: "Validate a job catalog file",
	Long: `Check a catalog file against the catalog JSON schema and the job record rules.
With --schema the file must also satisfy an additional JSON Schema, such as
organisation-specific naming rules.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateCatalog,
}

func init() {
	validateCatalogCmd.Flags().StringVar(&validateSchema, "schema", "", "Additional JSON Schema file the catalog must satisfy")
	rootCmd.AddCommand(validateCatalogCmd)
}

func runValidateCatalog(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	if err := schemas.ValidateCatalogFile(path); err != nil {
		return reportValidation(out, err)
	}
	if validateSchema != "" {
		if err := schemas.ValidateJSON(validateSchema, path); err != nil {
			return reportValidation(out, err)
		}
	}

	cat, err := catalog.LoadFile(path)
	if err != nil {
		_, _ = fmt.Fprintln(out, "Validation failed:")
		return err
	}

	if jsonOutput {
		return printJSON(out, map[string]any{
			"valid":         true,
			"jobs":          len(cat.Jobs),
			"skills":        len(cat.Skills),
			"abbreviations": len(cat.Abbreviations),
		})
	}

	_, _ = fmt.Fprintln(out, "Validation passed")
	observability.NewPrinter(out).PrintCatalogSummary("CATALOG", cat)
	return nil
}

func reportValidation(out io.Writer, err error) error {
	var ve *schemas.ValidationError
	if errors.As(err, &ve) {
		_, _ = fmt.Fprintln(out, "Validation failed:")
		for _, fe := range ve.Errors {
			_, _ = fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
		}
	}
	return err
}
