package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/snipdeck/cmd/application"
)

func TestVersionText(t *testing.T) {
	cmd := NewCommand(&application.Mock{VersionValue: "v1.2.3"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "snipdeck v1.2.3\n")
	assert.Contains(t, out.String(), "commit:   none")
}

func TestVersionJSON(t *testing.T) {
	cmd := NewCommand(&application.Mock{OutputFormatFunc: func() string { return "json" }})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	var info Info
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, Info{Version: "dev", Commit: "none", Date: "unknown", BuiltBy: "test"}, info)
}
