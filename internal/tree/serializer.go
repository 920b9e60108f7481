package tree

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type SerializedSnapshot struct {
	Generator   string            `json:"generator"`
	Created     time.Time         `json:"created"`
	Root        string            `json:"root"`
	Fingerprint string            `json:"fingerprint"`
	Size        string            `json:"size"`
	Entries     []SerializedEntry `json:"entries"`
	Unreadable  []string          `json:"unreadable,omitempty"`
}

type SerializedEntry struct {
	Path  string    `json:"path"`
	Size  int64     `json:"size"`
	MTime time.Time `json:"mtime"`
	Dir   bool      `json:"dir,omitempty"`
}

// FormatSize renders a byte count with binary units.
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func Save(s *Snapshot, path string) error {
	fingerprint, err := Fingerprint(s)
	if err != nil {
		return err
	}

	serialized := SerializedSnapshot{
		Generator:   "dircmp",
		Created:     s.Taken(),
		Root:        s.Root(),
		Fingerprint: fingerprint,
		Size:        FormatSize(s.TotalSize()),
		Entries:     make([]SerializedEntry, 0, s.Len()),
		Unreadable:  s.Unreadable(),
	}
	for _, p := range s.Paths() {
		e := s.entries[p]
		serialized.Entries = append(serialized.Entries, SerializedEntry{
			Path:  p,
			Size:  e.Size,
			MTime: e.ModTime,
			Dir:   e.IsDir,
		})
	}

	data, err := json.MarshalIndent(serialized, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var serialized SerializedSnapshot
	if err := json.Unmarshal(data, &serialized); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	entries := make(map[string]Entry, len(serialized.Entries))
	for _, se := range serialized.Entries {
		if se.Path == "" {
			return nil, fmt.Errorf("snapshot %s: entry with empty path", path)
		}
		if _, dup := entries[se.Path]; dup {
			return nil, fmt.Errorf("snapshot %s: duplicate entry %q", path, se.Path)
		}
		entries[se.Path] = Entry{
			Size:    se.Size,
			ModTime: se.MTime,
			IsDir:   se.Dir,
		}
	}

	s := NewSnapshot(serialized.Root, serialized.Created, entries, serialized.Unreadable)

	if serialized.Fingerprint != "" {
		fingerprint, err := Fingerprint(s)
		if err != nil {
			return nil, err
		}
		if fingerprint != serialized.Fingerprint {
			return nil, fmt.Errorf("snapshot %s: fingerprint mismatch (file says %s, entries hash to %s)",
				path, serialized.Fingerprint, fingerprint)
		}
	}

	return s, nil
}
