package compare

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dircmp/internal/tree"
)

func TestFormatReport_NoDifferences(t *testing.T) {
	s := snapshot(map[string]tree.Entry{"a.txt": file(10)})
	report := FormatReport("/left", "/right", s, s, Diff(s, s))

	assert.Contains(t, report, "Left:  /left")
	assert.Contains(t, report, "Right: /right")
	assert.Contains(t, report, "No differences found.")
	assert.Contains(t, report, "Identical:        1")
	assert.NotContains(t, report, "Unknown")
}

func TestFormatReport_AllSections(t *testing.T) {
	left := snapshot(map[string]tree.Entry{
		"same.txt":  file(1),
		"gone.txt":  file(2),
		"size.txt":  file(10),
		"kind":      file(0),
		"locked":    dir(),
		"locked/in": file(1),
	})
	right := snapshot(map[string]tree.Entry{
		"same.txt": file(1),
		"new.txt":  file(3),
		"size.txt": file(12),
		"kind":     dir(),
	}, "locked")

	report := FormatReport("/left", "/right", left, right, Diff(left, right))

	assert.Contains(t, report, "Only in /left (1):\n  - gone.txt\n")
	assert.Contains(t, report, "Only in /right (1):\n  + new.txt\n")
	assert.Contains(t, report, "  ~ size.txt: size 10 vs 12\n")
	assert.Contains(t, report, "  ~ kind: type file vs directory\n")
	assert.Contains(t, report, "Unknown, unreadable on one side (2):\n  ? locked\n  ? locked/in\n")
	assert.Contains(t, report, "Entries in left:  6 (14 B)")
	assert.Contains(t, report, "Entries in right: 4 (16 B)")
	assert.Contains(t, report, "Differing:        2")
	assert.Contains(t, report, "Identical:        1")
	assert.Contains(t, report, "Unknown:          2")
	assert.NotContains(t, report, "No differences found.")

	// Differing entries are listed in path order
	assert.Less(t, strings.Index(report, "~ kind"), strings.Index(report, "~ size.txt"))
}

func TestDescribe_ModTime(t *testing.T) {
	left := snapshot(map[string]tree.Entry{"x": file(1)})
	right := snapshot(map[string]tree.Entry{"x": {Size: 1, ModTime: t0.Add(90 * time.Minute)}})
	r := Diff(left, right)

	text := Describe(r.Differing[0], left, right)

	assert.True(t, strings.HasPrefix(text, "modification time "))
	assert.Contains(t, text, " vs ")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRender_WriteError(t *testing.T) {
	s := snapshot(nil)
	err := Render(failingWriter{}, "/l", "/r", s, s, Diff(s, s))
	assert.EqualError(t, err, "disk full")
}
