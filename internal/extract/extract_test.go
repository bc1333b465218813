package extract

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rathboma/sbt-sublime/internal/artifact"
	"github.com/rathboma/sbt-sublime/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourcesJar(t *testing.T, dir, file string, files map[string]string) artifact.Resolved {
	t.Helper()
	p := filepath.Join(dir, file)
	testutil.CreateJar(t, p, files)
	return artifact.Resolved{
		Descriptor: artifact.Descriptor{Name: file, Type: artifact.TypeSources, Extension: "jar", Classifier: "sources"},
		Path:       p,
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)
	return string(data)
}

func TestDirName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/repo/guava-33.0.0-sources.jar", "guava-33.0.0"},
		{"cats-core_2.13-2.10.0-sources.jar", "cats-core_2.13-2.10.0"},
		{"plain.zip", "plain"},
		{"no-extension-sources", "no-extension"},
		{"-sources.jar", "-sources.jar"},
		{"/repo/..-sources.jar", "..-sources.jar"},
		{".-sources.jar", ".-sources.jar"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := DirName(tt.in); got != tt.want {
				t.Errorf("DirName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtract_unpacksEachArchive(t *testing.T) {
	repo := t.TempDir()
	out := filepath.Join(t.TempDir(), "external-sources")

	a := sourcesJar(t, repo, "foo-1.0-sources.jar", map[string]string{
		"com/foo/Foo.java": "class Foo {}",
		"com/foo/":         "",
	})
	b := sourcesJar(t, repo, "bar-2.0-sources.jar", map[string]string{"Bar.scala": "object Bar"})

	res, err := Extract(out, []artifact.Resolved{a, b})
	require.NoError(t, err)

	require.Len(t, res.Archives, 2)
	assert.Equal(t, filepath.Join(out, "foo-1.0"), res.Archives[0].Dir)
	assert.Equal(t, 1, res.Archives[0].Files)
	assert.Empty(t, res.Collisions)
	assert.Empty(t, res.ReadOnlyFailures)

	assert.Equal(t, "class Foo {}", readFile(t, filepath.Join(out, "foo-1.0", "com", "foo", "Foo.java")))
	assert.Equal(t, "object Bar", readFile(t, filepath.Join(out, "bar-2.0", "Bar.scala")))
}

func TestExtract_marksFilesReadOnly(t *testing.T) {
	repo := t.TempDir()
	out := filepath.Join(t.TempDir(), "ext")
	a := sourcesJar(t, repo, "foo-1.0-sources.jar", map[string]string{"pkg/Foo.java": "class Foo {}"})

	_, err := Extract(out, []artifact.Resolved{a})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(out, "foo-1.0", "pkg", "Foo.java"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&0222, "file should have no write bits: %v", info.Mode())

	dirInfo, err := os.Stat(filepath.Join(out, "foo-1.0", "pkg"))
	require.NoError(t, err)
	assert.NotZero(t, dirInfo.Mode().Perm()&0200, "directories stay writable")
}

func TestExtract_resetRemovesStaleSources(t *testing.T) {
	repo := t.TempDir()
	out := filepath.Join(t.TempDir(), "ext")
	old := sourcesJar(t, repo, "removed-1.0-sources.jar", map[string]string{"Old.java": "old"})
	kept := sourcesJar(t, repo, "kept-1.0-sources.jar", map[string]string{"Kept.java": "kept"})

	_, err := Extract(out, []artifact.Resolved{old, kept})
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(out, "removed-1.0", "Old.java"))

	_, err = Extract(out, []artifact.Resolved{kept})
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(out, "removed-1.0"))
	assert.FileExists(t, filepath.Join(out, "kept-1.0", "Kept.java"))
}

func TestExtract_collisionLastWriteWins(t *testing.T) {
	first := sourcesJar(t, t.TempDir(), "lib-1.0-sources.jar", map[string]string{
		"Shared.java": "first",
		"OnlyA.java":  "a",
	})
	second := sourcesJar(t, t.TempDir(), "lib-1.0-sources.jar", map[string]string{
		"Shared.java": "second",
		"OnlyB.java":  "b",
	})
	out := filepath.Join(t.TempDir(), "ext")

	res, err := Extract(out, []artifact.Resolved{first, second})
	require.NoError(t, err)

	require.Len(t, res.Collisions, 1)
	c := res.Collisions[0]
	assert.Equal(t, filepath.Join(out, "lib-1.0"), c.Dir)
	assert.Equal(t, first.Path, c.Previous)
	assert.Equal(t, second.Path, c.Archive)
	assert.Equal(t, 1, c.Replaced)

	dir := filepath.Join(out, "lib-1.0")
	assert.Equal(t, "second", readFile(t, filepath.Join(dir, "Shared.java")))
	assert.FileExists(t, filepath.Join(dir, "OnlyA.java"))
	assert.FileExists(t, filepath.Join(dir, "OnlyB.java"))
}

// rawJar writes a zip whose entries are added in order, allowing repeated names.
func rawJar(t *testing.T, path string, entries [][2]string) artifact.Resolved {
	t.Helper()
	f, err := os.Create(path) //nolint:gosec // test file
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e[0])
		require.NoError(t, err)
		_, err = w.Write([]byte(e[1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return artifact.Resolved{Path: path}
}

func TestExtract_collisionCountsOnlyPreviousFiles(t *testing.T) {
	first := sourcesJar(t, t.TempDir(), "lib-1.0-sources.jar", map[string]string{"Shared.java": "first"})
	second := rawJar(t, filepath.Join(t.TempDir(), "lib-1.0-sources.jar"), [][2]string{
		{"Shared.java", "second"},
		{"Twice.java", "one"},
		{"Twice.java", "two"},
	})
	out := filepath.Join(t.TempDir(), "ext")

	res, err := Extract(out, []artifact.Resolved{first, second})
	require.NoError(t, err)

	require.Len(t, res.Collisions, 1)
	assert.Equal(t, 1, res.Collisions[0].Replaced, "repeats inside the later archive are not collisions")
	assert.Equal(t, "two", readFile(t, filepath.Join(out, "lib-1.0", "Twice.java")))
}

func TestExtract_dotDotArchiveStaysInside(t *testing.T) {
	parent := t.TempDir()
	out := filepath.Join(parent, "ext")
	jar := sourcesJar(t, t.TempDir(), "..-sources.jar", map[string]string{"Escaped.java": "x"})

	res, err := Extract(out, []artifact.Resolved{jar})
	require.NoError(t, err)
	require.Len(t, res.Archives, 1)
	assert.Equal(t, filepath.Join(out, "..-sources.jar"), res.Archives[0].Dir)
	assert.FileExists(t, filepath.Join(out, "..-sources.jar", "Escaped.java"))
	assert.NoFileExists(t, filepath.Join(parent, "Escaped.java"))
}

func TestExtract_rejectsEscapingEntries(t *testing.T) {
	p := filepath.Join(t.TempDir(), "evil-1.0-sources.jar")
	f, err := os.Create(p) //nolint:gosec // test file
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("../../escaped.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	parent := t.TempDir()
	out := filepath.Join(parent, "ext")
	_, err = Extract(out, []artifact.Resolved{{Path: p}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsafePath))
	assert.NoFileExists(t, filepath.Join(parent, "escaped.txt"))
}

func TestExtract_unreadableArchive(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken-1.0-sources.jar")
	require.NoError(t, os.WriteFile(p, []byte("not a zip"), 0644)) //nolint:gosec // test file

	_, err := Extract(filepath.Join(t.TempDir(), "ext"), []artifact.Resolved{{Path: p}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), p)
}

func TestReset_failsWhenParentIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644)) //nolint:gosec // test file

	err := Reset(filepath.Join(file, "ext"))
	assert.Error(t, err)
}

func TestMarkReadOnly_collectsFailures(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644)) //nolint:gosec // test file
	}

	orig := chmod
	t.Cleanup(func() { chmod = orig })
	var attempted []string
	chmod = func(name string, mode os.FileMode) error {
		attempted = append(attempted, filepath.Base(name))
		if filepath.Base(name) == "b.txt" {
			return errors.New("permission denied")
		}
		return orig(name, mode)
	}

	failures := MarkReadOnly(dir)

	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, attempted, "walk continues past a failure")
	require.Len(t, failures, 1)
	assert.Equal(t, filepath.Join(dir, "b.txt"), failures[0].Path)

	info, err := os.Stat(filepath.Join(dir, "c.txt"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&0222)
}
