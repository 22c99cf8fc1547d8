// Package embedded provides the built-in snippet catalog compiled into the binary.
package embedded

import (
	"context"

	embeddedCatalog "github.com/agentstation/snipdeck/internal/embedded"
	"github.com/agentstation/snipdeck/internal/sources"
	"github.com/agentstation/snipdeck/pkg/loader"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// Name identifies the embedded per-category source.
const Name = "embedded"

// New returns the per-category source over the embedded YAML modules.
func New() *sources.Modules {
	return sources.NewModules(Name, &sources.FSFileReader{
		FS:     embeddedCatalog.FS,
		Prefix: embeddedCatalog.Root,
	})
}

// Static returns the embedded flat catalog with authored ids.
func Static() ([]snippets.Snippet, error) {
	return sources.Parse(embeddedCatalog.Static, "static.yaml")
}

// NewStatic returns the static variant as a loader source.
func NewStatic(ctx context.Context) (*loader.StaticSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list, err := Static()
	if err != nil {
		return nil, err
	}
	return loader.NewStaticSource(Name+"-static", list), nil
}
