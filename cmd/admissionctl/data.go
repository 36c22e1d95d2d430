package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tuyensinh/admission-advisor/database"
)

func newMigrateCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the admission and chat tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newSeedCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demonstration admission catalog",
		Long:  "Load the demonstration admission catalog. Tables that already hold rows are left untouched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := database.RunSeeds(store.GetDB()); err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "seed data loaded")
			return nil
		},
	}
}
