package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/snipdeck"
	"github.com/agentstation/snipdeck/cmd/application"
	"github.com/agentstation/snipdeck/internal/cmd/output"
	"github.com/agentstation/snipdeck/pkg/logging"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

func execute(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	app := &application.Mock{
		ClientFunc: func(opts ...snipdeck.Option) (snipdeck.Client, error) {
			return snipdeck.New(append([]snipdeck.Option{snipdeck.WithLogger(logging.NewNopLogger())}, opts...)...)
		},
		OutputFormatFunc: func() string { return format },
	}
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExportMarkdownByDefault(t *testing.T) {
	out, err := execute(t, "")
	require.NoError(t, err)

	assert.Contains(t, out, "# Snippet Catalog")
	assert.Contains(t, out, "19 snippets")
	assert.Contains(t, out, "## Spring Boot")
	assert.NotContains(t, out, "## Java\n")
	assert.Contains(t, out, "```python")
}

func TestExportJSONCategory(t *testing.T) {
	out, err := execute(t, "json", "--category", "svelte")
	require.NoError(t, err)

	var doc output.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2, doc.Total)
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, snippets.Svelte, doc.Categories[0].Key)
	assert.Len(t, doc.Categories[0].Snippets, 2)
}

func TestExportYAMLToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")

	out, err := execute(t, "yaml", "-c", "python", "--file", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Title string `yaml:"title"`
		Total int    `yaml:"total"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "Snippet Catalog", doc.Title)
	assert.Equal(t, 3, doc.Total)
}

func TestExportRejectsTableFormat(t *testing.T) {
	_, err := execute(t, "table")
	assert.Error(t, err)
}

func TestExportUnknownCategory(t *testing.T) {
	_, err := execute(t, "", "-c", "rust")
	assert.Error(t, err)
}

func TestExportUnwritableFile(t *testing.T) {
	_, err := execute(t, "", "--file", filepath.Join(t.TempDir(), "missing", "out.md"))
	assert.Error(t, err)
}
