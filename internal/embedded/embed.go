package embedded

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// FS embeds one YAML module per snippet category at build time.
// A category declared in the registry without a file here has no module.
//
//go:embed catalog/*
var FS embed.FS

// Static is the flat, single-array variant of the catalog with authored ids.
//
//go:embed static.yaml
var Static []byte

// Root is the directory inside FS that holds the category modules.
const Root = "catalog"

// Modules returns the category keys that have an embedded module, sorted.
func Modules() []string {
	entries, err := fs.ReadDir(FS, Root)
	if err != nil {
		return nil
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		keys = append(keys, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(keys)
	return keys
}
