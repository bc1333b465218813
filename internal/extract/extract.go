package extract

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rathboma/sbt-sublime/internal/artifact"
)

// ErrUnsafePath is returned for archive entries that would land outside
// their destination directory.
var ErrUnsafePath = errors.New("archive entry escapes destination")

// Extracted records one unpacked archive.
type Extracted struct {
	Artifact artifact.Resolved
	Dir      string
	Files    int
}

// Collision records an archive unpacked into a directory already populated
// by an earlier archive of the same run.
type Collision struct {
	Dir      string
	Previous string
	Archive  string
	Replaced int // files of Previous overwritten by Archive
}

// Failure is a file that could not be marked read-only.
type Failure struct {
	Path string
	Err  error
}

// Result summarizes an extraction run.
type Result struct {
	Dir              string
	Archives         []Extracted
	Collisions       []Collision
	ReadOnlyFailures []Failure
}

// Reset removes dir and everything under it, then recreates it empty.
func Reset(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clearing %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // sources tree is meant to be browsed
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// DirName derives the per-archive directory name: the file name without its
// extension and without a trailing "-sources". When stripping leaves nothing
// usable ("", "." or "..") the full file name is kept.
func DirName(archivePath string) string {
	base := filepath.Base(archivePath)
	name := strings.TrimSuffix(strings.TrimSuffix(base, filepath.Ext(base)), "-sources")
	if name == "" || name == "." || name == ".." {
		return base
	}
	return name
}

// Extract resets dir, unpacks every archive into dir/DirName(archive) and
// marks the resulting files read-only. Read-only failures are collected in
// the result rather than returned.
func Extract(dir string, jars []artifact.Resolved) (*Result, error) {
	if err := Reset(dir); err != nil {
		return nil, err
	}

	res := &Result{Dir: dir}
	owners := make(map[string]string, len(jars))
	for _, j := range jars {
		name := DirName(j.Path)
		if name == "." || name == ".." {
			return nil, fmt.Errorf("%w: archive %s", ErrUnsafePath, j.Path)
		}
		dest := filepath.Join(dir, name)

		var (
			n   int
			err error
		)
		if prev, ok := owners[name]; ok {
			var c Collision
			c, n, err = overwrite(dest, prev, j.Path)
			res.Collisions = append(res.Collisions, c)
		} else {
			n, err = unpack(dest, j.Path, nil)
		}
		if err != nil {
			return nil, err
		}
		owners[name] = j.Path
		res.Archives = append(res.Archives, Extracted{Artifact: j, Dir: dest, Files: n})
	}

	res.ReadOnlyFailures = MarkReadOnly(dir)
	return res, nil
}

// overwrite unpacks archive into dest on top of the files previously
// unpacked there; files present in both are taken from archive.
func overwrite(dest, previous, archive string) (Collision, int, error) {
	c := Collision{Dir: dest, Previous: previous, Archive: archive}
	n, err := unpack(dest, archive, func(string) { c.Replaced++ })
	return c, n, err
}

// unpack writes every entry of archive below dest and returns the number of
// files written. replaced, when set, is called once for each file that
// existed before this archive was opened.
func unpack(dest, archive string, replaced func(rel string)) (int, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return 0, fmt.Errorf("opening archive %s: %w", archive, err)
	}
	defer func() { _ = zr.Close() }()

	if err := os.MkdirAll(dest, 0755); err != nil { //nolint:gosec // sources tree is meant to be browsed
		return 0, fmt.Errorf("creating %s: %w", dest, err)
	}

	n := 0
	written := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		target, err := entryPath(dest, f.Name)
		if err != nil {
			return n, fmt.Errorf("archive %s: %w", archive, err)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil { //nolint:gosec // sources tree is meant to be browsed
				return n, fmt.Errorf("creating %s: %w", target, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil { //nolint:gosec // sources tree is meant to be browsed
			return n, fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
		}
		if replaced != nil && !written[target] {
			if _, err := os.Lstat(target); err == nil {
				replaced(f.Name)
			}
		}
		written[target] = true
		if err := writeEntry(target, f); err != nil {
			return n, fmt.Errorf("archive %s: %w", archive, err)
		}
		n++
	}
	return n, nil
}

func entryPath(dest, name string) (string, error) {
	rel := filepath.FromSlash(name)
	if filepath.IsAbs(rel) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	target := filepath.Join(dest, rel)
	if target != dest && !strings.HasPrefix(target, dest+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}

func writeEntry(target string, f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // target is checked by entryPath
	if err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if _, err := io.Copy(out, rc); err != nil { //nolint:gosec // archives are trusted local dependency sources
		_ = out.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}
