package ui

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// Progress tracks completion of a known number of steps with a counter display.
type Progress struct {
	out       io.Writer
	total     atomic.Int32
	completed atomic.Int32
	warnings  atomic.Int32
	mu        sync.Mutex
}

// NewProgress creates a progress tracker for n steps.
func NewProgress(out io.Writer, total int) *Progress {
	p := &Progress{out: out}
	p.total.Store(int32(total))
	return p
}

// Done marks one step as completed and prints the current progress.
func (p *Progress) Done(label string) {
	n := int(p.completed.Add(1))
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "[%d/%d] %s\n", n, p.total.Load(), label)
}

// Log prints an informational message within the progress context.
func (p *Progress) Log(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Warn prints a warning line and counts it.
func (p *Progress) Warn(format string, args ...any) {
	p.warnings.Add(1)
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "Warning: "+format+"\n", args...)
}

// Warnings returns how many warnings were printed.
func (p *Progress) Warnings() int {
	return int(p.warnings.Load())
}
