// Package testutil builds on-disk fixtures shared by package tests: source
// archives and Maven-layout local repositories.
package testutil

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// CreateJar writes a zip archive at path containing the given files.
// Keys ending in "/" create directory entries.
func CreateJar(t *testing.T, path string, files map[string]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // test directory
		t.Fatal(err)
	}
	f, err := os.Create(path) //nolint:gosec // test file
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if strings.HasSuffix(name, "/") {
			continue
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

// Artifact describes one module published into a fixture repository.
type Artifact struct {
	Org      string
	Name     string // full artifact name, including any cross suffix
	Revision string
	Sources  map[string]string // nil: no sources jar is published
	Javadoc  bool
	Deps     []PomDep
}

// PomDep is a dependency entry written into the fixture POM.
type PomDep struct {
	Org      string
	Name     string
	Revision string
	Scope    string
	Optional bool
}

// Dir returns the Maven-layout directory of a within root.
func (a Artifact) Dir(root string) string {
	return filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(a.Org, ".", "/")), a.Name, a.Revision)
}

// SourcesPath returns where the sources jar of a lives within root.
func (a Artifact) SourcesPath(root string) string {
	return filepath.Join(a.Dir(root), fmt.Sprintf("%s-%s-sources.jar", a.Name, a.Revision))
}

// Publish writes the binary jar, POM, and optional sources/javadoc jars of
// each artifact into a Maven-layout repository at root.
func Publish(t *testing.T, root string, artifacts ...Artifact) {
	t.Helper()
	for _, a := range artifacts {
		dir := a.Dir(root)
		base := fmt.Sprintf("%s-%s", a.Name, a.Revision)
		CreateJar(t, filepath.Join(dir, base+".jar"), map[string]string{"META-INF/MANIFEST.MF": "Manifest-Version: 1.0\n"})
		if a.Sources != nil {
			CreateJar(t, filepath.Join(dir, base+"-sources.jar"), a.Sources)
		}
		if a.Javadoc {
			CreateJar(t, filepath.Join(dir, base+"-javadoc.jar"), map[string]string{"index.html": "<html></html>"})
		}
		writePom(t, filepath.Join(dir, base+".pom"), a)
	}
}

func writePom(t *testing.T, path string, a Artifact) {
	t.Helper()
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<project xmlns="http://maven.apache.org/POM/4.0.0">` + "\n")
	fmt.Fprintf(&b, "  <groupId>%s</groupId>\n  <artifactId>%s</artifactId>\n  <version>%s</version>\n", a.Org, a.Name, a.Revision)
	if len(a.Deps) > 0 {
		b.WriteString("  <dependencies>\n")
		for _, d := range a.Deps {
			b.WriteString("    <dependency>\n")
			fmt.Fprintf(&b, "      <groupId>%s</groupId>\n      <artifactId>%s</artifactId>\n      <version>%s</version>\n", d.Org, d.Name, d.Revision)
			if d.Scope != "" {
				fmt.Fprintf(&b, "      <scope>%s</scope>\n", d.Scope)
			}
			if d.Optional {
				b.WriteString("      <optional>true</optional>\n")
			}
			b.WriteString("    </dependency>\n")
		}
		b.WriteString("  </dependencies>\n")
	}
	b.WriteString("</project>\n")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}
