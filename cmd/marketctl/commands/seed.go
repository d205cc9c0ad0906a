package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/marketplace/internal/db"
	infraRepo "github.com/BruksfildServices01/marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/marketplace/internal/logging"
	ucAccount "github.com/BruksfildServices01/marketplace/internal/usecase/account"
)

var (
	rootEmail    string
	rootPassword string
)

// seedRootCmd creates the root administrator
var seedRootCmd = &cobra.Command{
	Use:   "seed-root",
	Short: "Create the root administrator account",
	Long: `Create the reserved "root" administrator if no account uses the email yet.
The schema is prepared first, the same way the server does at startup.

Example:
  marketctl seed-root --email admin@example.com --password s3cret!`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rootEmail == "" {
			rootEmail = cfg.RootEmail
		}
		if rootPassword == "" {
			rootPassword = cfg.RootPassword
		}
		if rootEmail == "" || rootPassword == "" {
			return fmt.Errorf("--email and --password are required")
		}

		// never wipe data from the CLI
		cfg.DBReset = false

		db, err := dbpkg.Open(cfg)
		if err != nil {
			return err
		}
		defer dbpkg.Close(db)

		if err := dbpkg.Prepare(db, cfg, logging.New(cfg.LogLevel, cfg.LogFormat)); err != nil {
			return err
		}

		created, err := ucAccount.NewSeedRoot(infraRepo.NewUserGormRepository(db)).
			Execute(cmd.Context(), rootEmail, rootPassword)
		if err != nil {
			return err
		}

		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "root created with email %s\n", rootEmail)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "an account with email %s already exists\n", rootEmail)
		}
		return nil
	},
}

func init() {
	seedRootCmd.Flags().StringVar(&rootEmail, "email", "", "Email of the root account")
	seedRootCmd.Flags().StringVar(&rootPassword, "password", "", "Password of the root account")

	rootCmd.AddCommand(seedRootCmd)
}
