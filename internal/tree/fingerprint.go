package tree

import (
	"encoding/hex"
	"fmt"
	"strconv"

	mt "github.com/txaty/go-merkletree"

	"dircmp/internal/hash"
)

// leaf is the metadata of one path as a merkle tree data block.
type leaf struct {
	path       string
	entry      Entry
	unreadable bool
}

func (l leaf) Serialize() ([]byte, error) {
	buf := make([]byte, 0, len(l.path)+48)
	buf = append(buf, l.path...)
	buf = append(buf, 0)
	if l.unreadable {
		return append(buf, '?'), nil
	}
	buf = strconv.AppendInt(buf, l.entry.Size, 10)
	buf = append(buf, 0)
	buf = strconv.AppendInt(buf, l.entry.ModTime.UnixNano(), 10)
	buf = append(buf, 0)
	if l.entry.IsDir {
		return append(buf, 'd'), nil
	}
	return append(buf, 'f'), nil
}

// Fingerprint computes a merkle root over the snapshot's metadata:
// 1. Sort paths by segment
// 2. Serialize (path, size, mtime, type) of each path as a leaf
// 3. Let go-merkletree pair and hash the levels up to a single root
// File contents are never read. Equal fingerprints mean equal snapshots.
func Fingerprint(s *Snapshot) (string, error) {
	blocks := make([]mt.DataBlock, 0, s.Len()+len(s.unreadable))
	for _, p := range s.Paths() {
		blocks = append(blocks, leaf{path: p, entry: s.entries[p]})
	}
	for _, p := range s.Unreadable() {
		blocks = append(blocks, leaf{path: p, unreadable: true})
	}

	switch len(blocks) {
	case 0:
		return hash.Hex([]byte("empty-tree")), nil
	case 1:
		// go-merkletree needs at least two blocks
		data, err := blocks[0].Serialize()
		if err != nil {
			return "", fmt.Errorf("failed to serialize leaf: %w", err)
		}
		return hash.Hex(data), nil
	}

	tree, err := mt.New(&mt.Config{
		HashFunc: hash.XXHashFunc,
		Mode:     mt.ModeTreeBuild,
	}, blocks)
	if err != nil {
		return "", fmt.Errorf("failed to build merkle tree: %w", err)
	}
	return hex.EncodeToString(tree.Root), nil
}
