package extract

import (
	"io/fs"
	"os"
	"path/filepath"
)

var chmod = os.Chmod

// MarkReadOnly clears the write bits of every regular file below dir.
// Directories are walked but left writable. Failures are collected and the
// walk continues.
func MarkReadOnly(dir string) []Failure {
	var failures []Failure
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			failures = append(failures, Failure{Path: path, Err: err})
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			failures = append(failures, Failure{Path: path, Err: err})
			return nil
		}
		if err := readOnly(path, info.Mode()); err != nil {
			failures = append(failures, Failure{Path: path, Err: err})
		}
		return nil
	})
	return failures
}

// MarkFileReadOnly clears the write bits of a single file, for files added to
// the tree after MarkReadOnly ran.
func MarkFileReadOnly(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return readOnly(path, info.Mode())
}

func readOnly(path string, mode fs.FileMode) error {
	return chmod(path, mode.Perm()&^0222)
}
