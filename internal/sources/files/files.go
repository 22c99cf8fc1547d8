// Package files provides snippet sources backed by the local filesystem:
// a directory of per-category YAML modules or a single static YAML array.
package files

import (
	"context"
	"os"
	"path/filepath"

	"github.com/agentstation/snipdeck/internal/sources"
	"github.com/agentstation/snipdeck/pkg/constants"
	pkgerrors "github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/loader"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// NewDirectory returns a per-category source reading "<category>.yaml" from dir.
func NewDirectory(dir string) *sources.Modules {
	return sources.NewModules("dir:"+dir, &sources.FilesystemFileReader{BasePath: dir})
}

// StaticFile is a source over a single YAML array with authored ids.
// The file is read on every call so edits are picked up on reload.
type StaticFile struct {
	path string
}

// NewStaticFile returns a source reading the YAML array at path.
func NewStaticFile(path string) *StaticFile {
	return &StaticFile{path: path}
}

// Name implements loader.Source.
func (f *StaticFile) Name() string {
	return "file:" + f.path
}

// Path returns the file path.
func (f *StaticFile) Path() string {
	return f.path
}

// LoadAll implements loader.Lister.
func (f *StaticFile) LoadAll(ctx context.Context) ([]snippets.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, pkgerrors.WrapIO("read", f.path, err)
	}
	return sources.Parse(data, filepath.Base(f.path))
}

// LoadCategory implements loader.Source.
func (f *StaticFile) LoadCategory(ctx context.Context, key snippets.CategoryKey) ([]snippets.Snippet, error) {
	list, err := f.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []snippets.Snippet{}
	for _, s := range list {
		if s.Category == key {
			out = append(out, s)
		}
	}
	return out, nil
}

// Open inspects path and returns the matching source with the id mode it
// implies: a directory yields per-category modules with synthesized ids, a
// file yields the static variant with authored ids.
func Open(path string) (loader.Source, loader.IDMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, loader.IDSynthesized, pkgerrors.WrapIO("stat", path, err)
	}
	if info.IsDir() {
		return NewDirectory(path), loader.IDSynthesized, nil
	}
	return NewStaticFile(path), loader.IDAuthored, nil
}

// Write stores list as a category module in dir.
func Write(dir string, key snippets.CategoryKey, list []snippets.Snippet) error {
	data, err := sources.Marshal(list)
	if err != nil {
		return pkgerrors.WrapResource("marshal", "snippets", key.String(), err)
	}
	path := filepath.Join(dir, sources.ModuleFile(key))
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return pkgerrors.WrapIO("write", path, err)
	}
	return nil
}
