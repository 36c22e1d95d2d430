package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/tuyensinh/admission-advisor/config"
	"github.com/tuyensinh/admission-advisor/database"
	"github.com/tuyensinh/admission-advisor/utils"
)

type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "admissionctl",
		Short:         "Operator tooling for the admission advisor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadENV()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log matcher decisions at debug level")

	cmd.AddCommand(
		newMigrateCmd(opts),
		newSeedCmd(opts),
		newContextCmd(opts),
		newTokenCmd(opts),
	)
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) zerolog.Logger {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	return utils.NewLoggerWithWriter(level, "console", cmd.ErrOrStderr())
}

// openStore connects to the configured database and migrates it
func openStore() (*database.GORMStore, *config.EnvironmentVariable, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, nil, err
	}

	store, err := database.StartGORM(getEnv)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := store.Init(); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, getEnv, nil
}
