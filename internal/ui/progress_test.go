package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgress_Done(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 3)

	p.Done("task A")
	p.Done("task B")
	p.Done("task C")

	out := buf.String()
	for _, want := range []string{"[1/3] task A", "[2/3] task B", "[3/3] task C"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing progress line %q: %s", want, out)
		}
	}
}

func TestProgress_Log(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 1)

	p.Log("hello %s", "world")

	if !strings.Contains(buf.String(), "hello world") {
		t.Errorf("missing log message: %s", buf.String())
	}
}

func TestProgress_Warn(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 1)

	p.Warn("cannot protect %s", "a.java")
	p.Warn("again")

	if !strings.Contains(buf.String(), "Warning: cannot protect a.java") {
		t.Errorf("missing warning: %s", buf.String())
	}
	if p.Warnings() != 2 {
		t.Errorf("Warnings() = %d, want 2", p.Warnings())
	}
}
