package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"dircmp/internal/config"
	"dircmp/internal/progress"
	"dircmp/internal/tree"
	"dircmp/internal/walker"
)

func newSnapshotCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <directory> [output-json-filename]",
		Short: "Save the metadata inventory of a directory for later comparison",
		Long: `Walks a directory and saves every entry's size, modification time and
type to a JSON file. Pass the file to --left-snapshot or --right-snapshot to
compare a directory against its earlier state. Without an output name the
file is written to output/<fingerprint>.json.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, closer, err := setup(cmd, *global)
			if err != nil {
				return err
			}
			defer closer.Close()

			var outputPath string
			if len(args) == 2 {
				outputPath = args[1]
			}
			return runSnapshot(cmd.Context(), cfg, logger, args[0], outputPath, cmd.OutOrStdout())
		},
	}
}

func runSnapshot(
	ctx context.Context,
	cfg *config.Config,
	logger zerolog.Logger,
	directory string,
	outputPath string,
	out io.Writer,
) error {
	absDirectory, err := filepath.Abs(directory)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var bar *progress.Bar
	if cfg.Progress {
		bar = progress.New("Scanning")
	}

	logger.Info().Str("dir", absDirectory).Msg("scanning directory")
	snap, err := walker.Collect(ctx, absDirectory, walker.Options{
		Exclude:  cfg.Exclude,
		Logger:   &logger,
		Progress: bar,
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}

	fingerprint, err := tree.Fingerprint(snap)
	if err != nil {
		return err
	}

	// If no output path specified, use the fingerprint as filename in ./output/
	if outputPath == "" {
		outputPath = filepath.Join("output", fingerprint+".json")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := tree.Save(snap, outputPath); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	fmt.Fprintf(out, "✓ Snapshot saved\n")
	fmt.Fprintf(out, "  Fingerprint: %s\n", fingerprint)
	fmt.Fprintf(out, "  Entries: %d (%s)\n", snap.Len(), tree.FormatSize(snap.TotalSize()))
	fmt.Fprintf(out, "  Output: %s\n", outputPath)

	if n := len(snap.Unreadable()); n > 0 {
		fmt.Fprintf(out, "\n⚠ Skipped %d unreadable entries\n", n)
	}

	return nil
}
