// Package local reads diagram snapshots from JSON and YAML files.
package local

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/archexport/pkg/diagram"
	"github.com/matzehuels/archexport/pkg/source"
)

// extensions are tried in order when an id names no file directly.
var extensions = []string{".json", ".yaml", ".yml"}

// Provider resolves snapshot ids against a directory.
//
// An id is either a path to an existing file, or a base name looked up as
// <Dir>/<id>.json, <Dir>/<id>.yaml and <Dir>/<id>.yml.
type Provider struct {
	Dir string
}

var _ source.Provider = (*Provider)(nil)

// New returns a provider rooted at dir. An empty dir means the working
// directory.
func New(dir string) *Provider {
	if dir == "" {
		dir = "."
	}
	return &Provider{Dir: dir}
}

// Name implements [source.Provider].
func (p *Provider) Name() string { return "local" }

// Snapshot implements [source.Provider].
func (p *Provider) Snapshot(ctx context.Context, id string) (*diagram.Diagram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, ok := p.resolve(id)
	if !ok {
		return nil, source.NotFound(p.Name(), id).WithDetail("dir", p.Dir)
	}
	return diagram.ReadFile(path)
}

func (p *Provider) resolve(id string) (string, bool) {
	if isFile(id) {
		return id, true
	}
	for _, ext := range extensions {
		path := filepath.Join(p.Dir, id+ext)
		if isFile(path) {
			return path, true
		}
	}
	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
