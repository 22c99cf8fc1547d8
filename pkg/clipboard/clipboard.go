// Package clipboard writes snippet code to a clipboard and tracks the
// transient "Copied!" or "Failed!" feedback shown after each copy.
package clipboard

import (
	atotto "github.com/atotto/clipboard"

	"github.com/agentstation/snipdeck/pkg/errors"
)

// Writer places text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// WriterFunc adapts a function to a Writer.
type WriterFunc func(text string) error

// WriteAll implements Writer.
func (f WriterFunc) WriteAll(text string) error {
	return f(text)
}

type systemWriter struct{}

// System returns a Writer backed by the operating system clipboard.
func System() Writer {
	return systemWriter{}
}

func (systemWriter) WriteAll(text string) error {
	if atotto.Unsupported {
		return Unavailable.WriteAll(text)
	}
	return atotto.WriteAll(text)
}

// ErrUnavailable reports that no clipboard is available in this environment.
var ErrUnavailable = errors.New("clipboard unavailable")

// Unavailable is a Writer that always fails.
var Unavailable Writer = WriterFunc(func(string) error {
	return ErrUnavailable
})

// Status is the copy indicator state of a single control.
type Status int

const (
	// StatusIdle is the resting state.
	StatusIdle Status = iota
	// StatusCopied follows a successful copy.
	StatusCopied
	// StatusFailed follows a failed copy.
	StatusFailed
)

// String returns the label shown on the copy control.
func (s Status) String() string {
	switch s {
	case StatusCopied:
		return "Copied!"
	case StatusFailed:
		return "Failed!"
	default:
		return "Copy"
	}
}

// MarshalText renders the status as its label.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
