// Package sources provides loader.Source implementations that read one YAML
// module per snippet category from an embedded or on-disk file tree.
package sources

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	pkgerrors "github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/logging"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// FileReader abstracts file system reads for different storage backends.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

// FSFileReader implements FileReader for an fs.FS such as embed.FS.
type FSFileReader struct {
	FS     fs.FS
	Prefix string
}

// ReadFile implements FileReader.
func (r *FSFileReader) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(r.FS, path.Join(r.Prefix, name))
}

// FilesystemFileReader implements FileReader for the regular filesystem.
type FilesystemFileReader struct {
	BasePath string
}

// ReadFile implements FileReader.
func (r *FilesystemFileReader) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(r.BasePath, name))
}

// Modules is a loader.Source that reads "<category>.yaml" through a FileReader.
type Modules struct {
	name   string
	reader FileReader
}

// NewModules creates a module source named name.
func NewModules(name string, reader FileReader) *Modules {
	return &Modules{name: name, reader: reader}
}

// Name implements loader.Source.
func (m *Modules) Name() string {
	return m.name
}

// LoadCategory implements loader.Source.
func (m *Modules) LoadCategory(ctx context.Context, key snippets.CategoryKey) ([]snippets.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file := ModuleFile(key)
	data, err := m.reader.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pkgerrors.NewNotFoundError("category", key.String())
		}
		return nil, pkgerrors.WrapIO("read", file, err)
	}

	list, err := Parse(data, file)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug().Str("file", file).Int("snippets", len(list)).Msg("Read category module")
	for i := range list {
		if list[i].Category == "" {
			list[i].Category = key
		}
	}
	return list, nil
}

// ModuleFile returns the file name of a category module.
func ModuleFile(key snippets.CategoryKey) string {
	return key.String() + ".yaml"
}
