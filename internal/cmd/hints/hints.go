// Package hints provides actionable user guidance for CLI operations.
package hints

import (
	"fmt"
	"strings"

	"github.com/agentstation/snipdeck/pkg/errors"
)

// Hint represents actionable user guidance.
type Hint struct {
	Message string // Human-readable guidance message
	Command string // Optional specific command to run
}

// New creates a new hint with the given message.
func New(message string) *Hint {
	return &Hint{Message: message}
}

// NewCommand creates a new hint with a specific command.
func NewCommand(message, command string) *Hint {
	return &Hint{Message: message, Command: command}
}

// String returns a string representation of the hint.
func (h *Hint) String() string {
	parts := []string{"Hint: " + h.Message}
	if h.Command != "" {
		parts = append(parts, fmt.Sprintf("   Run: %s", h.Command))
	}
	return strings.Join(parts, "\n")
}

// ForError returns guidance for a command failure, or nil when there is
// nothing useful to add.
func ForError(err error) *Hint {
	var (
		notFound   *errors.NotFoundError
		validation *errors.ValidationError
		parse      *errors.ParseError
		ioErr      *errors.IOError
	)

	switch {
	case err == nil:
		return nil
	case errors.As(err, &notFound) && notFound.Resource == "snippet":
		return NewCommand("Snippet ids look like <category>-<n>. List them with", "snipdeck list")
	case errors.As(err, &validation) && validation.Field == "category":
		return NewCommand("See the available categories with", "snipdeck categories")
	case errors.As(err, &parse):
		return NewCommand("Check the snippet source file, then validate it with", "snipdeck validate --source "+parse.File)
	case errors.As(err, &ioErr) && ioErr.Path != "":
		return New(fmt.Sprintf("Make sure %s exists and is readable, or drop --source to use the embedded catalog", ioErr.Path))
	default:
		return nil
	}
}
