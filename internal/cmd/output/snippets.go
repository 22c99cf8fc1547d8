package output

import (
	"fmt"
	"io"

	"github.com/agentstation/utc"
	md "github.com/nao1215/markdown"

	"github.com/agentstation/snipdeck/internal/cmd/table"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// FormatSnippets writes list in the given format. Table formats are reduced to
// rows; structured formats carry the full records.
func FormatSnippets(w io.Writer, list []snippets.Snippet, reg *snippets.Registry, format Format) error {
	formatter := NewFormatter(format)

	var data any
	switch format {
	case FormatTable, FormatWide, FormatMarkdown, "":
		data = table.SnippetsToTableData(list, reg, format == FormatWide)
	default:
		data = list
	}
	return formatter.Format(w, data)
}

// FormatCategories writes the category listing in the given format.
func FormatCategories(w io.Writer, rows []table.CategoryRow, format Format) error {
	formatter := NewFormatter(format)

	var data any
	switch format {
	case FormatTable, FormatWide, FormatMarkdown, "":
		data = table.CategoriesToTableData(rows)
	default:
		data = rows
	}
	return formatter.Format(w, data)
}

// Document is the exported form of a catalog.
type Document struct {
	Title       string            `json:"title" yaml:"title"`
	GeneratedAt utc.Time          `json:"generated_at" yaml:"generated_at"`
	Total       int               `json:"total" yaml:"total"`
	Categories  []DocumentSection `json:"categories" yaml:"categories"`
}

// DocumentSection groups the snippets of one category.
type DocumentSection struct {
	Key      snippets.CategoryKey `json:"key" yaml:"key"`
	Label    string               `json:"label" yaml:"label"`
	Snippets []snippets.Snippet   `json:"snippets" yaml:"snippets"`
}

// NewDocument groups list by category in registry order. Categories without
// records are omitted.
func NewDocument(title string, list []snippets.Snippet, reg *snippets.Registry) Document {
	byKey := make(map[snippets.CategoryKey][]snippets.Snippet)
	for _, s := range list {
		byKey[s.Category] = append(byKey[s.Category], s)
	}

	doc := Document{
		Title:       title,
		GeneratedAt: utc.Now(),
		Total:       len(list),
		Categories:  []DocumentSection{},
	}
	for _, c := range reg.Categories() {
		if len(byKey[c.Key]) == 0 {
			continue
		}
		doc.Categories = append(doc.Categories, DocumentSection{
			Key:      c.Key,
			Label:    c.Label,
			Snippets: byKey[c.Key],
		})
	}
	return doc
}

// WriteDocument writes doc as markdown, JSON or YAML.
func WriteDocument(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		return (&JSONFormatter{Indent: "  "}).Format(w, doc)
	case FormatYAML:
		return (&YAMLFormatter{}).Format(w, doc)
	case FormatMarkdown, "":
		return writeMarkdownDocument(w, doc)
	default:
		return fmt.Errorf("unsupported export format %q: must be one of: markdown, json, yaml", format)
	}
}

func writeMarkdownDocument(w io.Writer, doc Document) error {
	m := md.NewMarkdown(w)
	m.H1(doc.Title)
	m.PlainTextf("%d snippets, generated %s", doc.Total, doc.GeneratedAt.Format("2006-01-02 15:04 UTC")).LF()

	for _, section := range doc.Categories {
		m.H2(section.Label)
		for _, s := range section.Snippets {
			m.H3(s.Title)
			items := []string{"ID: " + md.Code(s.ID)}
			if s.Language != "" {
				items = append(items, "Language: "+s.Language)
			}
			if len(s.Tags) > 0 {
				items = append(items, "Tags: "+joinCode(s.Tags))
			}
			m.BulletList(items...)
			m.CodeBlocks(md.SyntaxHighlight(s.Language), s.Code)
		}
	}
	return m.Build()
}

func joinCode(tags []string) string {
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += ", "
		}
		out += md.Code(t)
	}
	return out
}
