package walker

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"dircmp/internal/fsys"
	"dircmp/internal/progress"
	"dircmp/internal/tree"
)

type Options struct {
	// Defaults to the real file system.
	FS fsys.FileSystem

	// Glob patterns of paths to leave out. A trailing slash matches any
	// path segment, a pattern containing a slash matches the whole relative
	// path, anything else matches the base name.
	Exclude []string

	// Receives a warning per unreadable entry. Nil discards them.
	Logger *zerolog.Logger

	// Optional.
	Progress *progress.Bar
}

type dirJob struct {
	abs string
	rel string
}

// Collect walks rootPath depth-first and returns a snapshot of every file
// and directory below it, keyed by slash-separated relative path.
//
// Only problems with the root itself are returned as errors
// (*PreconditionError). Entries that cannot be read are logged as
// *FilesystemAccessError warnings and recorded in the snapshot as
// unreadable; a directory that cannot be listed is dropped together with
// its subtree.
func Collect(ctx context.Context, rootPath string, opts Options) (*tree.Snapshot, error) {
	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fsys.NewFileSystem()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	walkRoot := rootPath
	if resolved, err := filepath.EvalSymlinks(rootPath); err == nil {
		walkRoot = resolved
	}

	rootEntry, err := filesystem.Stat(walkRoot)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, &PreconditionError{Root: rootPath, Reason: "directory does not exist"}
	case err != nil:
		return nil, &PreconditionError{Root: rootPath, Reason: "cannot read directory", Err: err}
	case !rootEntry.IsDir:
		return nil, &PreconditionError{Root: rootPath, Reason: "not a directory"}
	}

	taken := time.Now()
	entries := make(map[string]tree.Entry)
	var unreadable []string

	warn := func(accessErr *FilesystemAccessError) {
		logger.Warn().
			Str("root", rootPath).
			Str("path", accessErr.Path).
			Str("op", accessErr.Op).
			Err(accessErr.Err).
			Msg("skipping unreadable entry")
		unreadable = append(unreadable, accessErr.Path)
	}

	stack := []dirJob{{abs: walkRoot}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		job := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		names, err := filesystem.ReadDir(job.abs)
		if err != nil {
			if job.rel == "" {
				return nil, &PreconditionError{Root: rootPath, Reason: "cannot list directory", Err: err}
			}
			// The directory is known to exist, but not what is inside it.
			delete(entries, job.rel)
			warn(&FilesystemAccessError{Path: job.rel, Op: "readdir", Err: err})
			continue
		}

		if opts.Progress != nil {
			opts.Progress.SetDirectory(job.rel)
		}

		var subdirs []dirJob
		for _, name := range names {
			rel := name
			if job.rel != "" {
				rel = job.rel + "/" + name
			}

			if shouldExclude(rel, opts.Exclude) {
				logger.Debug().Str("root", rootPath).Str("path", rel).Msg("excluded")
				continue
			}

			abs := filepath.Join(job.abs, name)
			entry, err := filesystem.Stat(abs)
			if err != nil {
				warn(&FilesystemAccessError{Path: rel, Op: "stat", Err: err})
				continue
			}

			entries[rel] = entry
			if opts.Progress != nil {
				opts.Progress.Increment()
			}

			if entry.IsDir {
				subdirs = append(subdirs, dirJob{abs: abs, rel: rel})
			}
		}

		// Push in reverse so siblings are visited in name order.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	logger.Debug().
		Str("root", rootPath).
		Int("entries", len(entries)).
		Int("unreadable", len(unreadable)).
		Msg("collected")

	return tree.NewSnapshot(rootPath, taken, entries, unreadable), nil
}

func shouldExclude(relPath string, exclusions []string) bool {
	for _, pattern := range exclusions {
		// Handle directory exclusions (patterns ending with /)
		if strings.HasSuffix(pattern, "/") {
			dirPattern := strings.TrimSuffix(pattern, "/")
			for _, part := range strings.Split(relPath, "/") {
				if part == dirPattern {
					return true
				}
				if matched, _ := filepath.Match(dirPattern, part); matched {
					return true
				}
			}
			continue
		}

		if matched, err := filepath.Match(pattern, filepath.Base(relPath)); err == nil && matched {
			return true
		}
		if strings.Contains(pattern, "/") {
			if matched, err := filepath.Match(pattern, relPath); err == nil && matched {
				return true
			}
		}
	}
	return false
}
