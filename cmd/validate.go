package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/ridoystarlord/olapschema/validator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Lint a schema definition for structural mistakes",
	Long: `Check a schema definition against the structural conventions of the
document format before rendering it.

This command reports:
- Empty names, columns, table names and view formulas (errors)
- Median/custom aggregators without a formula or with an unknown dialect (errors)
- Unnamed hierarchies after the default one, empty dimensions and hierarchies (warnings)
- Cubes without measures (info)

References between cubes and shared dimensions are not resolved; the
analytics engine checks those when it loads the document.

Examples:
  olapschema validate                       # Validate schema.yaml
  olapschema validate -f custom.yaml        # Validate a custom schema file
  olapschema validate --structs             # Validate cubes from models/
  olapschema validate --format json         # Output validation results as JSON
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSchema()
		if err != nil {
			return err
		}

		result := validator.NewSchemaValidator().ValidateSchema(s)

		out := cmd.OutOrStdout()
		if viper.GetString("format") == "json" {
			err = outputJSON(out, result)
		} else {
			outputText(out, result)
		}
		if err != nil {
			return err
		}

		if !result.Valid {
			return fmt.Errorf("schema validation failed with %d error(s)", len(result.Errors))
		}
		return nil
	},
}

func init() {
	addSourceFlags(validateCmd)
	validateCmd.Flags().String("format", "text", "Output format (text, json)")
}

func outputJSON(w io.Writer, result *validator.ValidationResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(w io.Writer, result *validator.ValidationResult) {
	if result.Valid {
		color.New(color.FgGreen).Fprintln(w, "✅ Schema validation passed!")
	} else {
		color.New(color.FgRed).Fprintln(w, "❌ Schema validation failed!")
	}

	printIssues(w, "🔴 Errors", result.Errors)
	printIssues(w, "🟡 Warnings", result.Warnings)
	printIssues(w, "🔵 Info", result.Info)

	fmt.Fprintf(w, "\n📊 Summary:\n")
	fmt.Fprintf(w, "  • Errors: %d\n", len(result.Errors))
	fmt.Fprintf(w, "  • Warnings: %d\n", len(result.Warnings))
	fmt.Fprintf(w, "  • Info: %d\n", len(result.Info))

	if result.Valid {
		fmt.Fprintf(w, "\n🎉 Your schema is ready to render!\n")
	} else {
		fmt.Fprintf(w, "\n💡 Fix the errors above before generating the document.\n")
	}
}

func printIssues(w io.Writer, title string, issues []validator.ValidationError) {
	if len(issues) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s (%d):\n", title, len(issues))
	for i, issue := range issues {
		fmt.Fprintf(w, "  %d. ", i+1)
		if issue.Cube != "" {
			fmt.Fprintf(w, "[%s]", issue.Cube)
		}
		if issue.Element != "" {
			fmt.Fprintf(w, " (%s)", issue.Element)
		}
		fmt.Fprintf(w, ": %s\n", issue.Message)
	}
}
