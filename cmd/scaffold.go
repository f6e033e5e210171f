package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/ridoystarlord/olapschema/database"
	"github.com/ridoystarlord/olapschema/introspect"
	"github.com/ridoystarlord/olapschema/loader"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultTimeout = 5 * time.Second

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold",
	Short: "Draft a cube definition from a Postgres fact table",
	Long: `Read a fact table from the database behind DATABASE_URL and print a
starting cube definition in schema.yaml format.

Foreign keys and *_id columns become dimension usages, numeric columns
become sum measures and the remaining columns one-level dimensions.

Examples:
  olapschema scaffold --table eastern_sales
  olapschema scaffold --table sales --db-schema mart > sales.yaml
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table := viper.GetString("table")
		if table == "" {
			return fmt.Errorf("--table is required")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), viper.GetDuration("timeout"))
		defer cancel()

		pool, err := database.GetPool(ctx)
		if err != nil {
			return err
		}
		defer database.ClosePool()

		fact, err := introspect.IntrospectTable(ctx, pool, viper.GetString("db-schema"), table)
		if err != nil {
			return fmt.Errorf("introspecting database: %w", err)
		}

		data, err := loader.MarshalCubeYAML(introspect.ScaffoldCube(fact))
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	scaffoldCmd.Flags().String("table", "", "Fact table to scaffold from")
	scaffoldCmd.Flags().String("db-schema", "public", "Database schema of the fact table")
	scaffoldCmd.Flags().DurationP("timeout", "t", defaultTimeout, "Timeout for database queries")
}
