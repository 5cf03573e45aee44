package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"internship-tracker/internal/applications"
	"internship-tracker/internal/bootstrap"
	"internship-tracker/internal/shared/config"
	"internship-tracker/internal/shared/telemetry"
)

// cli carries the collaborators shared by every subcommand.
type cli struct {
	loadConfig  func() config.Config
	openStorage func(ctx context.Context, cfg config.Config) (*bootstrap.Storage, error)

	verbose bool
	storage *bootstrap.Storage
}

func defaultCLI() *cli {
	return &cli{
		loadConfig:  config.Load,
		openStorage: bootstrap.OpenStorage,
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Track internship applications",
		Long:          "tracker records internship applications with their deadline, application status and result, and lists them as all, active or completed.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return c.close()
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log at the configured LOG_LEVEL instead of warn")

	root.AddCommand(
		newAddCmd(c),
		newListCmd(c),
		newRemoveCmd(c),
		newSetStatusCmd(c),
		newSetResultCmd(c),
		newMaskCmd(),
		newCountsCmd(c),
	)
	return root
}

// store opens the configured backend on first use.
func (c *cli) store(ctx context.Context) (*applications.Store, error) {
	if c.storage != nil {
		return c.storage.Store, nil
	}
	cfg := c.loadConfig()
	level := "warn"
	if c.verbose {
		level = cfg.LogLevel
	}
	telemetry.Configure(os.Stderr, level)

	storage, err := c.openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.storage = storage
	return storage.Store, nil
}

func (c *cli) close() error {
	if c.storage == nil {
		return nil
	}
	err := c.storage.Close()
	c.storage = nil
	return err
}
