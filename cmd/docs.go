package cmd

import (
	"fmt"
	"os"

	"github.com/ridoystarlord/olapschema/generator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate documentation from schema",
	Long: `Generate a readable catalogue or a diagram of your cubes.

Supported formats:
  - markdown: cubes, sources, dimensions, measures, calculated members and named sets
  - mermaid: Mermaid class diagram of cubes and their dimensions

Examples:
  olapschema docs                              # Markdown to stdout
  olapschema docs --format mermaid --output cubes.md
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSchema()
		if err != nil {
			return err
		}

		var content string
		switch format := viper.GetString("format"); format {
		case "markdown":
			content = generator.GenerateMarkdown(s)
		case "mermaid":
			content = generator.GenerateMermaid(s)
		default:
			return fmt.Errorf("unsupported format: %s (supported: markdown, mermaid)", format)
		}

		output := viper.GetString("output")
		if output == "" {
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		}

		if err := os.WriteFile(output, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Documentation saved to: %s\n", output)
		return nil
	},
}

func init() {
	addSourceFlags(docsCmd)
	docsCmd.Flags().String("format", "markdown", "Documentation format (markdown, mermaid)")
	docsCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
}
