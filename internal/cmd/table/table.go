// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/snipdeck/pkg/snippets"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// maxPreview is the width of the code preview in wide output.
const maxPreview = 48

// SnippetsToTableData converts snippets to table format. Wide output adds the
// tag list and a one-line code preview.
func SnippetsToTableData(list []snippets.Snippet, reg *snippets.Registry, wide bool) Data {
	headers := []string{"ID", "Title", "Language", "Category"}
	if wide {
		headers = append(headers, "Tags", "Preview")
	}

	rows := make([][]string, 0, len(list))
	for _, s := range list {
		row := []string{
			s.ID,
			s.Title,
			orDash(s.Language),
			CategoryLabel(reg, s.Category),
		}
		if wide {
			row = append(row, orDash(strings.Join(s.Tags, ", ")), Preview(s.Code, maxPreview))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// SnippetDetail renders one snippet as a property table. The code itself is
// printed separately so it stays copyable.
func SnippetDetail(s snippets.Snippet, reg *snippets.Registry) Data {
	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"ID", s.ID},
			{"Title", s.Title},
			{"Language", orDash(s.Language)},
			{"Category", CategoryLabel(reg, s.Category)},
			{"Tags", orDash(strings.Join(s.Tags, ", "))},
			{"Lines", strconv.Itoa(LineCount(s.Code))},
		},
	}
}

// CategoryRow is one line of the categories listing.
type CategoryRow struct {
	Key   snippets.CategoryKey `json:"key" yaml:"key"`
	Label string               `json:"label" yaml:"label"`
	Count int                  `json:"count" yaml:"count"`
}

// CategoryRows lists the registry in declaration order with per-category
// counts. Declared categories without records report 0.
func CategoryRows(reg *snippets.Registry, counts map[snippets.CategoryKey]int) []CategoryRow {
	rows := make([]CategoryRow, 0, reg.Len())
	for _, c := range reg.Categories() {
		rows = append(rows, CategoryRow{Key: c.Key, Label: c.Label, Count: counts[c.Key]})
	}
	return rows
}

// CategoriesToTableData converts category rows to table format.
func CategoriesToTableData(rows []CategoryRow) Data {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{string(r.Key), r.Label, strconv.Itoa(r.Count)})
	}
	return Data{
		Headers:         []string{"Key", "Label", "Snippets"},
		Rows:            out,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight},
	}
}

// CategoryLabel returns the display label for key, falling back to the key.
func CategoryLabel(reg *snippets.Registry, key snippets.CategoryKey) string {
	if reg != nil {
		if label, ok := reg.Label(key); ok {
			return label
		}
	}
	return string(key)
}

// Preview returns the first non-blank line of code truncated to width runes.
func Preview(code string, width int) string {
	line := ""
	for l := range strings.SplitSeq(code, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			line = t
			break
		}
	}
	if line == "" {
		return "-"
	}
	r := []rune(line)
	if len(r) > width {
		return string(r[:width-3]) + "..."
	}
	return line
}

// LineCount returns the number of lines in code ignoring a trailing newline.
func LineCount(code string) int {
	if code == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(code, "\n"), "\n") + 1
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
