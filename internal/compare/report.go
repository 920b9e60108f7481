package compare

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"dircmp/internal/tree"
)

const timeLayout = "2006-01-02 15:04:05.000000000"

// reportWriter keeps the first write error so the report can be written
// without checking every line.
type reportWriter struct {
	w   io.Writer
	err error
}

func (rw *reportWriter) printf(format string, args ...any) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, format, args...)
}

func kind(e tree.Entry) string {
	if e.IsDir {
		return "directory"
	}
	return "file"
}

// Describe renders the reasons of d in readable form, using the entries of
// both snapshots for the values.
func Describe(d Difference, left, right *tree.Snapshot) string {
	l, _ := left.Get(d.Path)
	r, _ := right.Get(d.Path)

	parts := make([]string, 0, len(d.Reasons))
	for _, reason := range d.Reasons {
		switch reason {
		case ReasonSize:
			parts = append(parts, fmt.Sprintf("size %d vs %d", l.Size, r.Size))
		case ReasonModTime:
			parts = append(parts, fmt.Sprintf("modification time %s vs %s",
				l.ModTime.Local().Format(timeLayout), r.ModTime.Local().Format(timeLayout)))
		case ReasonType:
			parts = append(parts, fmt.Sprintf("type %s vs %s", kind(l), kind(r)))
		default:
			parts = append(parts, string(reason))
		}
	}
	return strings.Join(parts, "; ")
}

// Render writes the comparison report: header, the path lists of each
// bucket, and a summary of counts.
func Render(w io.Writer, leftRoot, rightRoot string, left, right *tree.Snapshot, result *Result) error {
	rw := &reportWriter{w: w}

	rw.printf("Comparing directories:\n")
	rw.printf("  Left:  %s\n", leftRoot)
	rw.printf("  Right: %s\n\n", rightRoot)

	rw.printf("=== DIFFERENCES ===\n\n")

	if !result.HasChanges() && len(result.Unknown) == 0 {
		rw.printf("No differences found.\n\n")
	}

	if len(result.OnlyInLeft) > 0 {
		rw.printf("Only in %s (%d):\n", leftRoot, len(result.OnlyInLeft))
		for _, path := range result.OnlyInLeft {
			rw.printf("  - %s\n", path)
		}
		rw.printf("\n")
	}

	if len(result.OnlyInRight) > 0 {
		rw.printf("Only in %s (%d):\n", rightRoot, len(result.OnlyInRight))
		for _, path := range result.OnlyInRight {
			rw.printf("  + %s\n", path)
		}
		rw.printf("\n")
	}

	if len(result.Differing) > 0 {
		rw.printf("Differing (%d):\n", len(result.Differing))
		for _, d := range result.Differing {
			rw.printf("  ~ %s: %s\n", d.Path, Describe(d, left, right))
		}
		rw.printf("\n")
	}

	if len(result.Unknown) > 0 {
		rw.printf("Unknown, unreadable on one side (%d):\n", len(result.Unknown))
		for _, path := range result.Unknown {
			rw.printf("  ? %s\n", path)
		}
		rw.printf("\n")
	}

	rw.printf("=== SUMMARY ===\n")
	rw.printf("Entries in left:  %d (%s)\n", left.Len(), tree.FormatSize(left.TotalSize()))
	rw.printf("Entries in right: %d (%s)\n", right.Len(), tree.FormatSize(right.TotalSize()))
	rw.printf("Only in left:     %d\n", len(result.OnlyInLeft))
	rw.printf("Only in right:    %d\n", len(result.OnlyInRight))
	rw.printf("Differing:        %d\n", len(result.Differing))
	rw.printf("Identical:        %d\n", result.IdenticalCount)
	if len(result.Unknown) > 0 {
		rw.printf("Unknown:          %d\n", len(result.Unknown))
	}

	return rw.err
}

func FormatReport(leftRoot, rightRoot string, left, right *tree.Snapshot, result *Result) string {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer do not fail.
	_ = Render(&buf, leftRoot, rightRoot, left, right, result)
	return buf.String()
}
