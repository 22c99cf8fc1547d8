// Package alerts renders one-shot status messages such as the result of
// validate, in plain text or as structured output.
package alerts

import (
	"fmt"

	"github.com/agentstation/snipdeck/internal/cmd/emoji"
)

// Level is the severity of an alert.
type Level int

// Alert levels.
const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
	LevelSuccess
)

var levels = [...]struct {
	name, icon, color string
}{
	LevelError:   {"error", emoji.Error, "\033[31m"},
	LevelWarning: {"warning", emoji.Warning, "\033[33m"},
	LevelInfo:    {"info", emoji.Info, "\033[36m"},
	LevelSuccess: {"success", emoji.Success, "\033[32m"},
}

const resetColor = "\033[0m"

func (l Level) valid() bool { return l >= 0 && int(l) < len(levels) }

// String returns the level name.
func (l Level) String() string {
	if !l.valid() {
		return fmt.Sprintf("unknown(%d)", int(l))
	}
	return levels[l].name
}

// Icon returns the symbol printed before plain alerts.
func (l Level) Icon() string {
	if !l.valid() {
		return "?"
	}
	return levels[l].icon
}

// Color returns the ANSI color of the level.
func (l Level) Color() string {
	if !l.valid() {
		return resetColor
	}
	return levels[l].color
}

// Alert is a status message with optional detail lines.
type Alert struct {
	Level   Level
	Message string
	Details []string
	Err     error
}

// NewError returns an error alert.
func NewError(message string) *Alert { return &Alert{Level: LevelError, Message: message} }

// NewWarning returns a warning alert.
func NewWarning(message string) *Alert { return &Alert{Level: LevelWarning, Message: message} }

// NewInfo returns an info alert.
func NewInfo(message string) *Alert { return &Alert{Level: LevelInfo, Message: message} }

// NewSuccess returns a success alert.
func NewSuccess(message string) *Alert { return &Alert{Level: LevelSuccess, Message: message} }

// WithError attaches the underlying error.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails appends detail lines.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String formats the alert as "<icon> <message>[: <err>]".
func (a *Alert) String() string {
	s := a.Level.Icon() + " " + a.Message
	if a.Err != nil {
		s += ": " + a.Err.Error()
	}
	return s
}
