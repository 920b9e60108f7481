package compare

import (
	"slices"

	"dircmp/internal/tree"
)

type Reason string

const (
	ReasonSize    Reason = "size"
	ReasonModTime Reason = "modifiedTime"
	ReasonType    Reason = "type"
)

type Difference struct {
	Path    string
	Reasons []Reason // in the order size, modifiedTime, type
}

func (d Difference) Has(reason Reason) bool {
	return slices.Contains(d.Reasons, reason)
}

// Result classifies every path of the two snapshots. Each path is in exactly
// one of OnlyInLeft, OnlyInRight, Differing, Unknown, or is identical and
// only counted. All lists are sorted by tree.ComparePaths.
type Result struct {
	OnlyInLeft  []string
	OnlyInRight []string
	Differing   []Difference

	// Paths present on one side whose state on the other side could not be
	// read. They are neither missing nor matching.
	Unknown []string

	IdenticalCount int
}

func (r *Result) HasChanges() bool {
	return len(r.OnlyInLeft) > 0 || len(r.OnlyInRight) > 0 || len(r.Differing) > 0
}

// Reasons lists the fields in which two entries disagree; nil if equal.
func Reasons(left, right tree.Entry) []Reason {
	var reasons []Reason
	if left.Size != right.Size {
		reasons = append(reasons, ReasonSize)
	}
	if !left.ModTime.Equal(right.ModTime) {
		reasons = append(reasons, ReasonModTime)
	}
	if left.IsDir != right.IsDir {
		reasons = append(reasons, ReasonType)
	}
	return reasons
}

func Diff(left, right *tree.Snapshot) *Result {
	result := &Result{
		OnlyInLeft:  make([]string, 0),
		OnlyInRight: make([]string, 0),
		Differing:   make([]Difference, 0),
		Unknown:     make([]string, 0),
	}

	var union int

	// Check paths of the left tree: only in left, differing or identical
	for _, path := range left.Paths() {
		union++
		leftEntry, _ := left.Get(path)
		rightEntry, exists := right.Get(path)

		switch {
		case exists:
			if reasons := Reasons(leftEntry, rightEntry); len(reasons) > 0 {
				result.Differing = append(result.Differing, Difference{
					Path:    path,
					Reasons: reasons,
				})
			}
		case right.IsUnknown(path):
			result.Unknown = append(result.Unknown, path)
		default:
			result.OnlyInLeft = append(result.OnlyInLeft, path)
		}
	}

	// Check paths only in the right tree
	for _, path := range right.Paths() {
		if _, exists := left.Get(path); exists {
			continue
		}
		union++
		if left.IsUnknown(path) {
			result.Unknown = append(result.Unknown, path)
		} else {
			result.OnlyInRight = append(result.OnlyInRight, path)
		}
	}

	// Both passes walk sorted paths; only Unknown mixes the two sides.
	tree.SortPaths(result.Unknown)

	result.IdenticalCount = union -
		len(result.OnlyInLeft) - len(result.OnlyInRight) -
		len(result.Differing) - len(result.Unknown)

	return result
}
