package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/gookit/color"
)

// terminal prints notifications and scroll requests. It implements
// blogsync.Notifier and admin.Viewport; writes may come from timer goroutines.
type terminal struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

func newTerminal(out io.Writer, useColor bool) *terminal {
	return &terminal{out: out, color: useColor}
}

func (t *terminal) Success(message string) {
	t.printf("%s %s\n", t.paint(color.Green, "✓"), message)
}

func (t *terminal) Error(message string) {
	t.printf("%s %s\n", t.paint(color.Red, "✗"), message)
}

func (t *terminal) ScrollToTop() {
	t.printf("%s\n", t.paint(color.Gray, "(scrolled to top)"))
}

func (t *terminal) ScrollTo(section string) {
	t.printf("%s\n", t.paint(color.Gray, "(scrolled to #"+section+")"))
}

// Write lets the shell share the lock with the timer goroutines.
func (t *terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.out.Write(p)
}

func (t *terminal) printf(format string, args ...interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}

func (t *terminal) paint(c color.Color, s string) string {
	if !t.color {
		return s
	}
	return c.Sprint(s)
}
