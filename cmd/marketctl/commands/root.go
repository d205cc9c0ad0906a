package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/marketplace/internal/config"
)

var cfg *config.Config

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "marketctl",
	Short: "Operations tool for the marketplace service",
	Long: `marketctl manages the marketplace database outside the HTTP server.

Settings come from the same environment variables (and .env file) as the
server. DATABASE_URL and DB_DRIVER can be overridden with --db and --driver.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if dbURL != "" {
			cfg.DBUrl = dbURL
		}
		if driver != "" {
			cfg.DBDriver = driver
		}
		return nil
	},
}

var (
	// Global flags
	dbURL  string
	driver string
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "Database driver (sqlite, postgres, sqlserver, mysql)")
}
