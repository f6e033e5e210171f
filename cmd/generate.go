package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/ridoystarlord/olapschema/generator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	addSourceFlags(generateCmd)
	generateCmd.Flags().StringP("output", "o", "schema.xml", "File to write the rendered schema to")
	generateCmd.Flags().Int("indent", 0, "Pretty-print with this many spaces per level (0 = compact)")
	generateCmd.Flags().Bool("no-declaration", false, "Omit the <?xml ...?> declaration")
	generateCmd.Flags().Bool("dry-run", false, "Print the document instead of writing it")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the schema document from a YAML file or Go structs",
	Long: `Render the XML schema document consumed by the analytics engine.

Default: YAML schema file
- olapschema generate                      # schema.yaml -> schema.xml
- olapschema generate -f sales.yaml -o out/sales.xml

With --structs: tagged Go fact structs
- olapschema generate --structs            # models/ -> schema.xml
- olapschema generate --structs -m facts/ --name us_sales

Examples:
  olapschema generate --indent 2           # Pretty-printed output
  olapschema generate --dry-run            # Print to stdout, write nothing
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSchema()
		if err != nil {
			return err
		}

		document, err := generator.GenerateWithOptions(s, generator.Options{
			Indent:          viper.GetInt("indent"),
			OmitDeclaration: viper.GetBool("no-declaration"),
		})
		if err != nil {
			return fmt.Errorf("generating schema: %w", err)
		}

		if viper.GetBool("dry-run") {
			fmt.Fprintln(cmd.OutOrStdout(), document)
			return nil
		}

		output := viper.GetString("output")
		if err := generator.WriteSchemaFile(output, document); err != nil {
			return err
		}

		color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(), "✅ Schema %q rendered: %s\n", s.Name, output)
		fmt.Fprintf(cmd.OutOrStdout(), "📊 %d cube(s)\n", len(s.Cubes))
		return nil
	},
}
