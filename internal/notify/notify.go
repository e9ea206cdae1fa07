// Package notify is the outbound notification collaborator: the engine hands
// it a single human-readable line (achievement unlocked, map advance, quota
// feedback) and never consumes a result.
package notify

import (
	"fmt"
	"io"
)

type Notifier interface {
	Notify(message string)
}

// Writer renders notifications to a stream, one per line.
type Writer struct {
	out    io.Writer
	prefix string
}

func NewWriter(out io.Writer, prefix string) *Writer {
	return &Writer{out: out, prefix: prefix}
}

func (w *Writer) Notify(message string) {
	if message == "" {
		return
	}
	fmt.Fprintln(w.out, w.prefix+message)
}

// Discard drops every notification. Useful in tests.
type Discard struct{}

func (Discard) Notify(string) {}
