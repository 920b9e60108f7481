package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"dircmp/internal/compare"
	"dircmp/internal/config"
	"dircmp/internal/progress"
	"dircmp/internal/tree"
	"dircmp/internal/walker"
)

// side is one half of a comparison: a directory to walk or a saved snapshot.
type side struct {
	name         string // "first" or "second"
	dir          string
	snapshotFile string

	snap  *tree.Snapshot
	label string
}

var prompts = map[string]string{
	"first":  "Enter path to the first directory: ",
	"second": "Enter path to the second directory: ",
}

// promptPaths asks for each name in turn on out and reads one line per
// answer from in.
func promptPaths(in io.Reader, out io.Writer, names []string) ([]string, error) {
	scanner := bufio.NewScanner(in)
	paths := make([]string, 0, len(names))
	for _, name := range names {
		fmt.Fprint(out, prompts[name])
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("failed to read %s directory: %w", name, err)
			}
			return nil, fmt.Errorf("no path given for the %s directory", name)
		}
		path := strings.TrimSpace(scanner.Text())
		if path == "" {
			return nil, fmt.Errorf("no path given for the %s directory", name)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// resolveSides assigns positional arguments to the sides not taken by a
// snapshot file, prompting for any that are missing.
func resolveSides(opts compareOptions, args []string, in io.Reader, out io.Writer) ([]*side, error) {
	sides := []*side{
		{name: "first", snapshotFile: opts.leftSnapshot},
		{name: "second", snapshotFile: opts.rightSnapshot},
	}

	var needDir []*side
	for _, s := range sides {
		if s.snapshotFile == "" {
			needDir = append(needDir, s)
		}
	}
	if len(args) > len(needDir) {
		return nil, fmt.Errorf("expected at most %d directory arguments, got %d", len(needDir), len(args))
	}

	var missing []string
	for _, s := range needDir[len(args):] {
		missing = append(missing, s.name)
	}
	answers, err := promptPaths(in, out, missing)
	if err != nil {
		return nil, err
	}

	dirs := append(append([]string{}, args...), answers...)
	for i, s := range needDir {
		abs, err := filepath.Abs(dirs[i])
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
		s.dir = abs
	}

	return sides, nil
}

func (s *side) load(ctx context.Context, cfg *config.Config, logger zerolog.Logger, bar *progress.Bar) error {
	if s.snapshotFile != "" {
		snap, err := tree.Load(s.snapshotFile)
		if err != nil {
			return fmt.Errorf("failed to load %s snapshot: %w", s.name, err)
		}
		s.snap = snap
		s.label = fmt.Sprintf("%s (snapshot of %s)", s.snapshotFile, snap.Root())
		logger.Info().Str("file", s.snapshotFile).Int("entries", snap.Len()).Msg("loaded snapshot")
		return nil
	}

	logger.Info().Str("dir", s.dir).Msg("scanning directory")
	snap, err := walker.Collect(ctx, s.dir, walker.Options{
		Exclude:  cfg.Exclude,
		Logger:   &logger,
		Progress: bar,
	})
	if err != nil {
		var precondition *walker.PreconditionError
		if errors.As(err, &precondition) {
			return fmt.Errorf("invalid %s directory: %w", s.name, err)
		}
		return fmt.Errorf("failed to scan %s directory: %w", s.name, err)
	}
	s.snap = snap
	s.label = s.dir
	return nil
}

func runCompare(
	ctx context.Context,
	cfg *config.Config,
	logger zerolog.Logger,
	opts compareOptions,
	args []string,
	in io.Reader,
	out io.Writer,
) error {
	sides, err := resolveSides(opts, args, in, out)
	if err != nil {
		return err
	}
	left, right := sides[0], sides[1]

	var bar *progress.Bar
	if cfg.Progress {
		bar = progress.New("Scanning")
	}

	if opts.parallel || cfg.Parallel {
		// Each side fills its own snapshot; logger and bar are shared.
		eg, ctx := errgroup.WithContext(ctx)
		for _, s := range sides {
			s := s
			eg.Go(func() error {
				return s.load(ctx, cfg, logger, bar)
			})
		}
		err = eg.Wait()
	} else {
		for _, s := range sides {
			if err = s.load(ctx, cfg, logger, bar); err != nil {
				break
			}
		}
	}
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	result := compare.Diff(left.snap, right.snap)

	if err := compare.Render(out, left.label, right.label, left.snap, right.snap, result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	leftFP, err := tree.Fingerprint(left.snap)
	if err != nil {
		return err
	}
	rightFP, err := tree.Fingerprint(right.snap)
	if err != nil {
		return err
	}
	match := "differ"
	if leftFP == rightFP {
		match = "match"
	}
	fmt.Fprintf(out, "Fingerprints:     %s / %s (%s)\n", leftFP, rightFP, match)

	if skipped := len(left.snap.Unreadable()) + len(right.snap.Unreadable()); skipped > 0 {
		fmt.Fprintf(out, "\n⚠ Skipped %d unreadable entries, see warnings above\n", skipped)
	}

	if opts.failOnDiff && result.HasChanges() {
		return errDifferencesFound
	}
	return nil
}
