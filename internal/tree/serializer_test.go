package tree

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	out := filepath.Join(tmpDir, "snap.json")

	mtime := time.Date(2023, 7, 8, 9, 10, 11, 123456789, time.UTC)
	orig := NewSnapshot("/data", mtime, map[string]Entry{
		"a.txt":   {Size: 10, ModTime: mtime},
		"b":       {IsDir: true, ModTime: mtime},
		"b/c.txt": {Size: 5, ModTime: mtime.Add(time.Millisecond)},
	}, []string{"locked"})

	require.NoError(t, Save(orig, out))

	loaded, err := Load(out)
	require.NoError(t, err)

	assert.Equal(t, "/data", loaded.Root())
	assert.Equal(t, orig.Paths(), loaded.Paths())
	assert.Equal(t, []string{"locked"}, loaded.Unreadable())
	for _, p := range orig.Paths() {
		want, _ := orig.Get(p)
		got, ok := loaded.Get(p)
		require.True(t, ok, p)
		assert.True(t, want.Equal(got), p)
	}

	fpOrig, err := Fingerprint(orig)
	require.NoError(t, err)
	fpLoaded, err := Fingerprint(loaded)
	require.NoError(t, err)
	assert.Equal(t, fpOrig, fpLoaded)
}

func TestLoad_TamperedFingerprint(t *testing.T) {
	out := filepath.Join(t.TempDir(), "snap.json")
	content := `{
  "generator": "dircmp",
  "root": "/data",
  "fingerprint": "0000000000000000",
  "entries": [{"path": "a.txt", "size": 1, "mtime": "2024-01-01T00:00:00Z"}]
}`
	require.NoError(t, os.WriteFile(out, []byte(content), 0644))

	_, err := Load(out)
	assert.ErrorContains(t, err, "fingerprint mismatch")
}

func TestLoad_DuplicatePath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "snap.json")
	content := `{"entries": [
  {"path": "a.txt", "size": 1, "mtime": "2024-01-01T00:00:00Z"},
  {"path": "a.txt", "size": 2, "mtime": "2024-01-01T00:00:00Z"}
]}`
	require.NoError(t, os.WriteFile(out, []byte(content), 0644))

	_, err := Load(out)
	assert.ErrorContains(t, err, "duplicate entry")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("/nonexistent/snap.json")
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.50 KB", FormatSize(1536))
	assert.Equal(t, "2.00 MB", FormatSize(2*1024*1024))
	assert.Equal(t, "1.00 GB", FormatSize(1024*1024*1024))
}
