package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const exampleSchemaYAML = `# Cube schema definition. Lists keep their order in the rendered document.
name: us_sales
cubes:
  - name: eastern_sales
    source:
      table: eastern_sales
      # schema: public
    annotations:
      - name: states
        value: MA,NY
    dimensions:
      - name: Product
        hierarchies:
          # The first hierarchy may omit its name (default hierarchy).
          - has_all: true
            source:
              view:
                alias: products
                formula: SELECT prod_code, prod_desc FROM products
            levels:
              - name: Product Group
                column: prod_code
                name_column: prod_desc
                unique_members: true
    dimension_usages:
      - name: Time
        source: Time
        foreign_key: time_id
    measures:
      - name: dollars
        column: mea_dollars
        aggregator: sum        # sum, count, min, max, avg, distinct-count, median, custom
        visible: true
        annotations:
          - name: shorthand
            value: in 100k
      - name: median_dollars
        column: mea_dollars
        aggregator: median
        database: postgres     # postgres or monetdb
        formula: percentile_cont(0.5) WITHIN GROUP (ORDER BY mea_dollars)
    calculated_members:
      - name: Dollars per Unit
        dimension: Measures
        formula: "[Measures].[dollars] / [Measures].[units]"
    named_sets:
      - name: Top Products
        formula: "TopCount([Product].Members, 10, [Measures].[dollars])"
`

const exampleModels = `package models

// EasternSale is one row of the eastern_sales fact table.
type EasternSale struct {
	_        struct{} ` + "`olap:\"cube;name:eastern_sales;table:eastern_sales\"`" + `
	Dollars  float64  ` + "`olap:\"measure;agg:sum;column:mea_dollars\"`" + `
	Units    int      ` + "`olap:\"measure;agg:count\"`" + `
	ProdCode string   ` + "`olap:\"level;dimension:Product;name:Product Group;name_column:prod_desc;unique\"`" + `
	TimeID   int      ` + "`olap:\"usage;dimension:Time\"`" + `
	LoadedBy string   ` + "`olap:\"-\"`" + `
}
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new olapschema project (YAML by default)",
	Long: `Initialize a new project with an example cube definition.

Default: schema.yaml
- Declarative, order-preserving cube definition

Alternative: Go structs with olap tags (--structs)
- Fact tables described next to the code that loads them

Examples:
  olapschema init                    # Create schema.yaml
  olapschema init --structs          # Create models/sales.go`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if viper.GetBool("structs") {
			dir := viper.GetString("models")
			path := filepath.Join(dir, "sales.go")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}
			if err := os.WriteFile(path, []byte(exampleModels), 0644); err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			fmt.Fprintf(out, "✅ Created %s example file.\n", path)
			fmt.Fprintln(out, "📝 Tag your fact struct fields with olap:\"measure\", olap:\"level\" or olap:\"usage\"")
			fmt.Fprintln(out, "🚀 Run 'olapschema generate --structs' to render the schema")
			return nil
		}

		path := viper.GetString("file")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.WriteFile(path, []byte(exampleSchemaYAML), 0644); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		fmt.Fprintf(out, "✅ Created %s example file.\n", path)
		fmt.Fprintf(out, "📝 Edit %s to define your cubes\n", path)
		fmt.Fprintln(out, "🚀 Run 'olapschema generate' to render the schema document")
		return nil
	},
}

func init() {
	initCmd.Flags().StringP("file", "f", "schema.yaml", "Schema YAML file to create")
	initCmd.Flags().Bool("structs", false, "Create an example tagged Go struct instead of YAML")
	initCmd.Flags().StringP("models", "m", "models", "Models directory for --structs")
}
