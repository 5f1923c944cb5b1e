package testutil

import (
	"testing/fstest"

	"github.com/specialistvlad/resourcekit/internal/bundle"
	"github.com/specialistvlad/resourcekit/internal/extension"
	"github.com/specialistvlad/resourcekit/internal/registry"
)

// SimpleModule is a test helper for easily creating a bundle whose files
// live in memory. Files are relative to the bundle root, e.g.
// "config/services.yml".
type SimpleModule struct {
	Descriptor bundle.Descriptor
	Files      map[string]string
	Options    []extension.Option
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	fsys := fstest.MapFS{}
	for name, content := range m.Files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	desc := m.Descriptor
	desc.FS = fsys
	r.Register(desc, m.Options...)
}
