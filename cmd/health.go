package cmd

import (
	"context"
	"fmt"

	"github.com/ridoystarlord/olapschema/database"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check database connectivity",
	Long: `Check that the database behind DATABASE_URL (used by scaffold) is reachable.

Examples:
  olapschema health                    # Check default database connection
  olapschema health --timeout 10s      # Set custom timeout
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), viper.GetDuration("timeout"))
		defer cancel()

		pool, err := database.GetPool(ctx)
		if err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}
		defer database.ClosePool()

		var version string
		if err := pool.QueryRow(ctx, "SHOW server_version").Scan(&version); err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Database is healthy and accessible (PostgreSQL %s)\n", version)
		return nil
	},
}

func init() {
	healthCmd.Flags().DurationP("timeout", "t", defaultTimeout, "Timeout for health check")
}
