package tree

import (
	"slices"
	"strings"
	"time"
)

// Entry is the metadata of one file or directory at collection time.
type Entry struct {
	Size    int64 // 0 for directories
	ModTime time.Time
	IsDir   bool
}

// Equal reports whether all metadata fields match. Paths are not compared:
// entries are only compared once already matched by path.
func (e Entry) Equal(other Entry) bool {
	return e.Size == other.Size &&
		e.IsDir == other.IsDir &&
		e.ModTime.Equal(other.ModTime)
}

// Snapshot is the recursive state of one directory tree, keyed by
// slash-separated path relative to the root. It is not modified after
// construction.
type Snapshot struct {
	root       string
	taken      time.Time
	entries    map[string]Entry // relative path -> Entry
	unreadable map[string]struct{}
}

// NewSnapshot takes ownership of entries. Unreadable lists relative paths
// whose state could not be determined; anything below them is unknown too.
func NewSnapshot(root string, taken time.Time, entries map[string]Entry, unreadable []string) *Snapshot {
	if entries == nil {
		entries = make(map[string]Entry)
	}
	set := make(map[string]struct{}, len(unreadable))
	for _, p := range unreadable {
		set[p] = struct{}{}
	}
	return &Snapshot{
		root:       root,
		taken:      taken,
		entries:    entries,
		unreadable: set,
	}
}

func (s *Snapshot) Root() string {
	return s.root
}

func (s *Snapshot) Taken() time.Time {
	return s.taken
}

func (s *Snapshot) Len() int {
	return len(s.entries)
}

func (s *Snapshot) Get(path string) (Entry, bool) {
	e, ok := s.entries[path]
	return e, ok
}

// Paths returns every relative path in segment order.
func (s *Snapshot) Paths() []string {
	paths := make([]string, 0, len(s.entries))
	for p := range s.entries {
		paths = append(paths, p)
	}
	SortPaths(paths)
	return paths
}

// Unreadable returns the paths that failed during collection, in segment order.
func (s *Snapshot) Unreadable() []string {
	paths := make([]string, 0, len(s.unreadable))
	for p := range s.unreadable {
		paths = append(paths, p)
	}
	SortPaths(paths)
	return paths
}

// IsUnknown reports whether path, or one of its ancestors, could not be read.
func (s *Snapshot) IsUnknown(path string) bool {
	if len(s.unreadable) == 0 {
		return false
	}
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if _, ok := s.unreadable[path[:i]]; ok {
				return true
			}
		}
	}
	return false
}

// TotalSize sums the sizes of all file entries.
func (s *Snapshot) TotalSize() int64 {
	var total int64
	for _, e := range s.entries {
		total += e.Size
	}
	return total
}

// ComparePaths orders relative paths segment by segment, so "a/z" sorts
// before "a-b".
func ComparePaths(a, b string) int {
	for {
		as, arest, amore := strings.Cut(a, "/")
		bs, brest, bmore := strings.Cut(b, "/")
		if c := strings.Compare(as, bs); c != 0 {
			return c
		}
		switch {
		case !amore && !bmore:
			return 0
		case !amore:
			return -1
		case !bmore:
			return 1
		}
		a, b = arest, brest
	}
}

func SortPaths(paths []string) {
	slices.SortFunc(paths, ComparePaths)
}
