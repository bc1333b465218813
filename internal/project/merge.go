package project

import (
	"path/filepath"
)

// New returns a descriptor listing exactly root then external.
func New(root, external Folder) *Descriptor {
	return &Descriptor{
		Folders:      []Folder{root, external},
		Settings:     map[string]any{},
		BuildSystems: []any{},
	}
}

// Merge reconciles the external sources folder into an existing descriptor.
//
// With no existing descriptor it returns New(root, external). If a folder
// with external's path is already listed, existing is returned as is and
// changed is false. Otherwise a copy with external appended is returned.
// The root folder is only consulted when building a fresh descriptor, so
// folders added or removed by hand are left alone.
func Merge(existing *Descriptor, root, external Folder) (merged *Descriptor, changed bool) {
	if existing == nil {
		return New(root, external), true
	}
	if existing.HasFolder(external.Path) {
		return existing, false
	}

	folders := make([]Folder, 0, len(existing.Folders)+1)
	folders = append(folders, existing.Folders...)
	folders = append(folders, external)
	return &Descriptor{
		Folders:      folders,
		Settings:     existing.Settings,
		BuildSystems: existing.BuildSystems,
		Extra:        existing.Extra,
	}, true
}

// HasFolder reports whether a folder with the given path is listed.
// Paths are compared after filepath.Clean.
func (d *Descriptor) HasFolder(path string) bool {
	want := filepath.Clean(path)
	for _, f := range d.Folders {
		if filepath.Clean(f.Path) == want {
			return true
		}
	}
	return false
}
