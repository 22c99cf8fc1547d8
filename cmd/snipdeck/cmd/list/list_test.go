package list

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/snipdeck"
	"github.com/agentstation/snipdeck/cmd/application"
	"github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/logging"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

func newTestApp(format string) *application.Mock {
	return &application.Mock{
		ClientFunc: func(opts ...snipdeck.Option) (snipdeck.Client, error) {
			return snipdeck.New(append([]snipdeck.Option{snipdeck.WithLogger(logging.NewNopLogger())}, opts...)...)
		},
		OutputFormatFunc: func() string { return format },
	}
}

func execute(t *testing.T, app *application.Mock, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestListAll(t *testing.T) {
	stdout, stderr, err := execute(t, newTestApp("table"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "react-1")
	assert.Contains(t, stderr, "Total: 19 snippets | Showing: 19")
}

func TestListCategoryJSON(t *testing.T) {
	stdout, stderr, err := execute(t, newTestApp("json"), "--category", "python")
	require.NoError(t, err)

	var list []snippets.Snippet
	require.NoError(t, json.Unmarshal([]byte(stdout), &list))
	require.Len(t, list, 3)
	for _, s := range list {
		assert.Equal(t, snippets.Python, s.Category)
	}
	assert.Contains(t, stderr, "Showing: 3")
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	upper, _, err := execute(t, newTestApp("json"), "-s", "REACT")
	require.NoError(t, err)
	lower, _, err := execute(t, newTestApp("json"), "-s", "react")
	require.NoError(t, err)

	assert.JSONEq(t, lower, upper)
}

func TestListNoResults(t *testing.T) {
	stdout, stderr, err := execute(t, newTestApp("table"), "--search", "nonexistent-xyz")
	require.NoError(t, err)

	assert.Contains(t, stdout, `No snippets found matching "nonexistent-xyz"`)
	assert.Contains(t, stderr, "Showing: 0")
}

func TestListNoResultsJSONIsEmptyArray(t *testing.T) {
	stdout, _, err := execute(t, newTestApp("json"), "-c", "java")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", stdout)
}

func TestListUnknownCategory(t *testing.T) {
	_, _, err := execute(t, newTestApp("table"), "-c", "rust")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestListRejectsArgs(t *testing.T) {
	_, _, err := execute(t, newTestApp("table"), "extra")
	assert.Error(t, err)
}
