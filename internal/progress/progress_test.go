package progress

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBar_Disabled(t *testing.T) {
	var buf bytes.Buffer
	bar := NewWriter("Scanning", &buf, false)

	bar.SetDirectory("a")
	bar.Increment()
	bar.Finish()

	assert.Empty(t, buf.String())
}

func TestBar_CountsAndFinishes(t *testing.T) {
	var buf bytes.Buffer
	bar := NewWriter("Scanning", &buf, true)

	bar.SetDirectory("")
	for i := 0; i < 5; i++ {
		bar.Increment()
	}
	bar.SetDirectory("sub/dir")
	bar.Finish()

	assert.Equal(t, int64(5), bar.Count())
	out := buf.String()
	assert.Contains(t, out, "Scanning: 5 entries | sub/dir")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestBar_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	bar := NewWriter("Scanning", &buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bar.Increment()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(800), bar.Count())
}
