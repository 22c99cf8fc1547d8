package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/snipdeck/internal/cmd/table"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

func fixture() []snippets.Snippet {
	return []snippets.Snippet{
		{ID: "python-1", Title: "List Comprehension", Language: "python", Category: snippets.Python, Tags: []string{"list"}, Code: "squares = [x*x for x in range(10)]"},
		{ID: "react-1", Title: "React Component Template", Language: "jsx", Category: snippets.React, Code: "export default App;"},
	}
}

func TestFormatSnippetsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatSnippets(&buf, fixture(), snippets.DefaultRegistry(), FormatJSON))

	var got []snippets.Snippet
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, fixture(), got)
}

func TestFormatSnippetsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatSnippets(&buf, fixture(), snippets.DefaultRegistry(), FormatTable))
	out := buf.String()
	assert.Contains(t, out, "React Component Template")
	assert.Contains(t, out, "Python")
	assert.NotContains(t, out, "squares")
}

func TestFormatCategoriesYAML(t *testing.T) {
	rows := table.CategoryRows(snippets.DefaultRegistry(), map[snippets.CategoryKey]int{snippets.Python: 3})

	var buf bytes.Buffer
	require.NoError(t, FormatCategories(&buf, rows, FormatYAML))
	assert.Contains(t, buf.String(), "key: python")
	assert.Contains(t, buf.String(), "count: 3")
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("Snippets", fixture(), snippets.DefaultRegistry())
	assert.Equal(t, 2, doc.Total)
	require.Len(t, doc.Categories, 2)
	// Registry order, not input order.
	assert.Equal(t, snippets.React, doc.Categories[0].Key)
	assert.Equal(t, snippets.Python, doc.Categories[1].Key)
	assert.Equal(t, "Python", doc.Categories[1].Label)
}

func TestNewDocumentEmpty(t *testing.T) {
	doc := NewDocument("Snippets", nil, snippets.DefaultRegistry())
	assert.Equal(t, 0, doc.Total)
	assert.NotNil(t, doc.Categories)
	assert.Empty(t, doc.Categories)
}

func TestWriteDocumentMarkdown(t *testing.T) {
	var buf bytes.Buffer
	doc := NewDocument("Snippets", fixture(), snippets.DefaultRegistry())
	require.NoError(t, WriteDocument(&buf, doc, FormatMarkdown))

	out := buf.String()
	assert.Contains(t, out, "# Snippets")
	assert.Contains(t, out, "## React")
	assert.Contains(t, out, "### List Comprehension")
	assert.Contains(t, out, "```python")
	assert.Contains(t, out, "squares = [x*x for x in range(10)]")
}

func TestWriteDocumentJSON(t *testing.T) {
	var buf bytes.Buffer
	doc := NewDocument("Snippets", fixture(), snippets.DefaultRegistry())
	require.NoError(t, WriteDocument(&buf, doc, FormatJSON))

	var got struct {
		Total      int `json:"total"`
		Categories []struct {
			Key string `json:"key"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, "react", got.Categories[0].Key)
}

func TestWriteDocumentUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDocument(&buf, Document{}, FormatWide)
	assert.Error(t, err)
}
