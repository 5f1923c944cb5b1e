package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// Locator resolves file names against a configuration directory and its
// "services" subdirectory.
type Locator struct {
	fsys fs.FS
	dir  string
}

// NewLocator fails with MissingConfigDirectoryError when dir is not a
// directory of fsys.
func NewLocator(fsys fs.FS, dir string) (*Locator, error) {
	dir = path.Clean(dir)
	info, err := fs.Stat(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingConfigDirectoryError{Dir: dir}
		}
		return nil, fmt.Errorf("loader: stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, &MissingConfigDirectoryError{Dir: dir}
	}
	return &Locator{fsys: fsys, dir: dir}, nil
}

// Dir returns the configuration directory.
func (l *Locator) Dir() string { return l.dir }

// Candidates returns the paths tried for name, in lookup order.
func (l *Locator) Candidates(name string) []string {
	return []string{
		path.Join(l.dir, name),
		path.Join(l.dir, "services", name),
	}
}

// Locate returns the first existing candidate path for name.
func (l *Locator) Locate(name string) (string, error) {
	candidates := l.Candidates(name)
	for _, p := range candidates {
		info, err := fs.Stat(l.fsys, p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("loader: stat %s: %w", p, err)
		}
	}
	return "", &MissingServiceDefinitionError{Name: name, Candidates: candidates}
}

// ReadFile reads a path returned by Locate.
func (l *Locator) ReadFile(p string) ([]byte, error) {
	return fs.ReadFile(l.fsys, p)
}
