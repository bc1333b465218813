package lock

import "path/filepath"

// FileName is the record's name inside the external sources directory.
const FileName = ".sources.lock.yaml"

// File represents .sources.lock.yaml.
type File struct {
	Version     int       `yaml:"version"`
	Project     string    `yaml:"project"`
	GeneratedAt string    `yaml:"generated_at"`
	ToolVersion string    `yaml:"tool_version"`
	Transitive  bool      `yaml:"transitive"`
	Archives    []Archive `yaml:"archives"`
}

// Archive records one extracted source archive.
type Archive struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Dir  string `yaml:"dir"`
}

// Extracted reports whether an archive with the given artifact name was extracted.
func (f *File) Extracted(name string) bool {
	if f == nil {
		return false
	}
	for _, a := range f.Archives {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Path returns the lock location inside an external sources directory.
func Path(externalSourceDir string) string {
	return filepath.Join(externalSourceDir, FileName)
}
