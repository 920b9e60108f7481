package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"dircmp/internal/config"
	"dircmp/internal/logging"
)

type globalOptions struct {
	configPath string
	logLevel   string
}

type compareOptions struct {
	leftSnapshot  string
	rightSnapshot string
	parallel      bool
	failOnDiff    bool
}

func newRootCmd() *cobra.Command {
	var global globalOptions
	var opts compareOptions

	cmd := &cobra.Command{
		Use:   "dircmp [flags] [left-dir] [right-dir]",
		Short: "Compare two directory trees and report drift",
		Long: `Recursively compares two directory trees and reports entries present on
only one side and entries whose size, modification time or type differ.
File contents are not read. Missing directory arguments are prompted for
on standard input.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, closer, err := setup(cmd, global)
			if err != nil {
				return err
			}
			defer closer.Close()

			return runCompare(cmd.Context(), cfg, logger, opts, args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&global.configPath, "config", "c", "dircmp.yaml", "Config file path")
	pf.StringVar(&global.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")

	f := cmd.Flags()
	f.StringVar(&opts.leftSnapshot, "left-snapshot", "", "Use a saved snapshot file as the left side")
	f.StringVar(&opts.rightSnapshot, "right-snapshot", "", "Use a saved snapshot file as the right side")
	f.BoolVar(&opts.parallel, "parallel", false, "Collect both trees concurrently")
	f.BoolVar(&opts.failOnDiff, "fail-on-diff", false, "Exit with status 1 when differences are found")

	cmd.AddCommand(newSnapshotCmd(&global))

	return cmd
}

// setup loads the config file and builds the logger.
func setup(cmd *cobra.Command, global globalOptions) (*config.Config, zerolog.Logger, io.Closer, error) {
	cfg, err := config.LoadConfig(global.configPath)
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = global.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, zerolog.Nop(), nil, err
		}
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return cfg, logger, closer, nil
}
