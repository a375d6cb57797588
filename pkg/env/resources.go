package env

import (
	"os"
	"path/filepath"
)

// FileResources resolves resource paths against the local filesystem.
// Relative paths are resolved under the base directory; absolute paths are
// checked as-is. It implements condition.ResourceResolver.
type FileResources struct {
	base string
}

// NewFileResources creates a resolver rooted at base. An empty base
// resolves relative paths against the working directory.
func NewFileResources(base string) *FileResources {
	return &FileResources{base: base}
}

// Exists reports whether the resource at path is resolvable.
func (r *FileResources) Exists(path string) bool {
	if path == "" {
		return false
	}
	if !filepath.IsAbs(path) && r.base != "" {
		path = filepath.Join(r.base, path)
	}
	_, err := os.Stat(path)
	return err == nil
}
