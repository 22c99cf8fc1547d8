package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/snipdeck/internal/cmd/output"
)

// FormatWriter writes alerts as JSON or YAML documents, or as plain lines
// with indented details for every other format.
type FormatWriter struct {
	w      io.Writer
	format output.Format
	color  bool
}

// NewFormatWriter returns a writer for format. Plain output is colored when
// w is a terminal.
func NewFormatWriter(w io.Writer, format output.Format) *FormatWriter {
	return &FormatWriter{w: w, format: format, color: isTerminal(w)}
}

// WithColor forces plain output colors on or off.
func (fw *FormatWriter) WithColor(on bool) *FormatWriter {
	fw.color = on
	return fw
}

type alertRecord struct {
	Level   string   `json:"level" yaml:"level"`
	Message string   `json:"message" yaml:"message"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// WriteAlert writes a.
func (fw *FormatWriter) WriteAlert(a *Alert) error {
	switch fw.format {
	case output.FormatJSON, output.FormatYAML:
		rec := alertRecord{Level: a.Level.String(), Message: a.Message, Details: a.Details}
		if a.Err != nil {
			rec.Error = a.Err.Error()
		}
		return output.NewFormatter(fw.format).Format(fw.w, rec)
	}

	line := a.String()
	if fw.color {
		line = a.Level.Color() + line + resetColor
	}
	if _, err := fmt.Fprintln(fw.w, line); err != nil {
		return err
	}
	for _, d := range a.Details {
		if _, err := fmt.Fprintf(fw.w, "   %s\n", d); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
