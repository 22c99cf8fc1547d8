package clip

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/snipdeck"
	"github.com/agentstation/snipdeck/cmd/application"
	"github.com/agentstation/snipdeck/pkg/clipboard"
	pkgerrors "github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/logging"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

var fixture = []snippets.Snippet{
	{ID: "1", Title: "Hello", Language: "python", Category: snippets.Python, Code: "print('hi')"},
}

func execute(t *testing.T, w clipboard.Writer, args ...string) (string, string, error) {
	t.Helper()
	app := &application.Mock{
		ClientFunc: func(opts ...snipdeck.Option) (snipdeck.Client, error) {
			base := []snipdeck.Option{
				snipdeck.WithLogger(logging.NewNopLogger()),
				snipdeck.WithStaticSnippets(fixture),
				snipdeck.WithClipboard(w),
			}
			return snipdeck.New(append(base, opts...)...)
		},
	}
	cmd := NewCommand(app)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCopy(t *testing.T) {
	var copied string
	w := clipboard.WriterFunc(func(text string) error {
		copied = text
		return nil
	})

	stdout, _, err := execute(t, w, "1")
	require.NoError(t, err)

	assert.Equal(t, "Copied!\n", stdout)
	assert.Equal(t, "print('hi')", copied)
}

func TestCopyClipboardFailure(t *testing.T) {
	w := clipboard.WriterFunc(func(string) error { return errors.New("no display") })

	stdout, stderr, err := execute(t, w, "1")
	require.NoError(t, err)

	assert.Empty(t, stdout)
	assert.Equal(t, "Failed!\n", stderr)
}

func TestCopyUnknownID(t *testing.T) {
	w := clipboard.WriterFunc(func(string) error { return nil })

	_, _, err := execute(t, w, "404")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}
