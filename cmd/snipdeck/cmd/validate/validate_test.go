package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/snipdeck"
	"github.com/agentstation/snipdeck/cmd/application"
	"github.com/agentstation/snipdeck/pkg/loader"
	"github.com/agentstation/snipdeck/pkg/logging"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

func execute(t *testing.T, format string, base ...snipdeck.Option) (string, error) {
	t.Helper()
	app := &application.Mock{
		ClientFunc: func(opts ...snipdeck.Option) (snipdeck.Client, error) {
			all := append([]snipdeck.Option{snipdeck.WithLogger(logging.NewNopLogger())}, base...)
			return snipdeck.New(append(all, opts...)...)
		},
		OutputFormatFunc: func() string { return format },
	}
	cmd := NewCommand(app)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestValidateEmbeddedCatalog(t *testing.T) {
	out, err := execute(t, "table")
	require.NoError(t, err)

	assert.Contains(t, out, "Catalog is valid")
	assert.Contains(t, out, "19 snippets in 6 categories")
}

func TestValidateReportsRecordProblems(t *testing.T) {
	list := []snippets.Snippet{
		{ID: "1", Title: "One", Category: snippets.Python, Code: "pass"},
		{ID: "1", Title: "Dup", Category: snippets.Python, Code: "pass"},
		{ID: "2", Title: "Empty", Category: snippets.React},
	}

	out, err := execute(t, "json", snipdeck.WithStaticSnippets(list))
	require.ErrorIs(t, err, ErrInvalid)

	var alert struct {
		Level   string   `json:"level"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &alert))
	assert.Equal(t, "Catalog has 2 problem(s)", alert.Message)
	require.Len(t, alert.Details, 2)
	assert.Contains(t, alert.Details[0], `duplicate id "1"`)
}

func TestValidateReportsMisfiledRecords(t *testing.T) {
	src := loader.SourceFunc(func(_ context.Context, key snippets.CategoryKey) ([]snippets.Snippet, error) {
		if key != snippets.React {
			return nil, nil
		}
		return []snippets.Snippet{
			{Title: "Hook", Category: snippets.React, Code: "x"},
			{Title: "Stray", Category: snippets.Python, Code: "y"},
		}, nil
	})

	out, err := execute(t, "table", snipdeck.WithSource(src))
	require.ErrorIs(t, err, ErrInvalid)

	assert.Contains(t, out, "Catalog has 1 problem(s)")
	assert.Contains(t, out, `category does not match its module: snippet "Stray" in react module`)
}

func TestValidateReportsLoadFailures(t *testing.T) {
	src := loader.SourceFunc(func(_ context.Context, key snippets.CategoryKey) ([]snippets.Snippet, error) {
		if key == snippets.Python {
			return nil, errors.New("boom")
		}
		return nil, nil
	})

	out, err := execute(t, "table", snipdeck.WithSource(src))
	require.ErrorIs(t, err, ErrInvalid)

	assert.Contains(t, out, "Catalog has 1 problem(s)")
	assert.Contains(t, out, "loading category python")
	assert.Contains(t, out, "boom")
}
