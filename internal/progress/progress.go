package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// Bar is a single status line counting scanned entries. The total is not
// known up front, so it shows a running count and the directory being read.
// It is safe for concurrent use.
type Bar struct {
	label      string
	current    int64
	dir        string
	writer     io.Writer
	mu         sync.Mutex
	enabled    bool
	lastUpdate time.Time
}

// New returns a Bar on stderr that is only drawn when stderr is a terminal.
func New(label string) *Bar {
	return NewWriter(label, os.Stderr, IsTerminal(os.Stderr))
}

func NewWriter(label string, w io.Writer, enabled bool) *Bar {
	return &Bar{
		label:   label,
		writer:  w,
		enabled: enabled,
	}
}

func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (b *Bar) SetDirectory(dir string) {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if dir == "" {
		dir = "."
	}
	b.dir = dir
	b.maybeRender()
}

func (b *Bar) Increment() {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.current++
	b.maybeRender()
}

func (b *Bar) Count() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// maybeRender must be called with mu already locked
func (b *Bar) maybeRender() {
	// Update at most every 100ms to reduce flickering
	now := time.Now()
	if now.Sub(b.lastUpdate) > 100*time.Millisecond {
		b.lastUpdate = now
		b.render()
	}
}

// render must be called with mu already locked
func (b *Bar) render() {
	dir := b.dir
	if len(dir) > 60 {
		dir = "..." + dir[len(dir)-57:]
	}

	// Clear the line and write progress
	fmt.Fprintf(b.writer, "\r\033[K%s: %d entries | %s", b.label, b.current, dir)
}

func (b *Bar) Finish() {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.render()
	fmt.Fprintf(b.writer, "\n")
}
