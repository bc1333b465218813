package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsafeExternalDir is returned when the external sources directory
// would take the build or the project file with it on reset.
var ErrUnsafeExternalDir = errors.New("unsafe external sources directory")

// CheckExternalDir verifies that clearing s.ExternalSourceDir cannot remove
// anything the tool does not own: a filesystem root, the build root or one of
// its ancestors, or the directory holding the project file.
func (s Settings) CheckExternalDir(root string) error {
	dir := filepath.Clean(s.ExternalSourceDir)
	switch {
	case dir == "." || dir == "":
		return fmt.Errorf("%w: directory is not set", ErrUnsafeExternalDir)
	case filepath.Dir(dir) == dir:
		return fmt.Errorf("%w: %s is a filesystem root", ErrUnsafeExternalDir, dir)
	case Within(dir, root):
		return fmt.Errorf("%w: %s contains the build root %s", ErrUnsafeExternalDir, dir, root)
	case s.ProjectDir != "" && Within(dir, s.ProjectDir):
		return fmt.Errorf("%w: %s contains the project directory %s", ErrUnsafeExternalDir, dir, s.ProjectDir)
	case s.ProjectFile != "" && Within(dir, s.ProjectFile):
		return fmt.Errorf("%w: %s contains the project file %s", ErrUnsafeExternalDir, dir, s.ProjectFile)
	}
	return nil
}

// Within reports whether p is dir itself or lies below it.
func Within(dir, p string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(p))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
