package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"smartpay/backend/migrations"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

With --seed, demo residents, payments and dues are inserted into an empty database.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("seed", false, "Insert demo data when the database has no residents")
	cmd.Flags().Bool("status", false, "List applied migrations after running")
	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	seed, _ := cmd.Flags().GetBool("seed")
	status, _ := cmd.Flags().GetBool("status")

	a := newApp(cfg, logger)
	defer a.Close()

	logger.Info("Starting database migration", zap.String("driver", cfg.Database.Driver), zap.Bool("seed", seed))
	if err := a.openDatabase(seed); err != nil {
		return err
	}

	if status {
		applied, err := migrations.Applied(a.db)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range applied {
			fmt.Fprintln(out, name)
		}
	}

	logger.Info("Database migrations completed successfully")
	return nil
}
