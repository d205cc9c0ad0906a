package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/marketplace/internal/db"
)

var steps int

// migrateCmd groups the embedded SQL migrations (postgres only)
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run the embedded database migrations",
	Long: `Apply or roll back the SQL migrations embedded in the binary.

Subcommands:
  up      - Apply pending migrations
  down    - Roll back migrations
  version - Show the applied version`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if cfg.DBDriver != "postgres" {
			return fmt.Errorf("migrations require DB_DRIVER=postgres, got %s", cfg.DBDriver)
		}
		return nil
	},
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dbpkg.MigrateUp(cfg.DBUrl); err != nil {
			return err
		}
		return printVersion(cmd)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Long: `Roll back applied migrations.

Examples:
  marketctl migrate down             # Roll back the last migration
  marketctl migrate down --steps 2   # Roll back the last two`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if steps <= 0 {
			return fmt.Errorf("--steps must be positive")
		}
		if err := dbpkg.MigrateDown(cfg.DBUrl, steps); err != nil {
			return err
		}
		return printVersion(cmd)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the applied migration version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printVersion(cmd)
	},
}

func printVersion(cmd *cobra.Command) error {
	version, dirty, err := dbpkg.MigrationVersion(cfg.DBUrl)
	if err != nil {
		return err
	}
	if dirty {
		fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty)\n", version)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", version)
	return nil
}

func init() {
	migrateDownCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
