package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iho/onlinebank/internal/infrastructure/postgres"
)

func newMigrateCmd(rt *app) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres account schema",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := postgres.RunMigrations(rt.cfg.DatabaseURL, rt.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := postgres.RunMigrationsDown(rt.cfg.DatabaseURL, rt.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "last migration rolled back")
			return nil
		},
	})

	return migrateCmd
}
