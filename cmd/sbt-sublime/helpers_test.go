package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rathboma/sbt-sublime/internal/manifest"
	"github.com/rathboma/sbt-sublime/internal/testutil"
)

var (
	catsCore = testutil.Artifact{
		Org: "org.typelevel", Name: "cats-core_2.13", Revision: "2.10.0",
		Sources: map[string]string{"cats/Functor.scala": "package cats\n\ntrait Functor[F[_]]\n"},
		Deps:    []testutil.PomDep{{Org: "org.typelevel", Name: "cats-kernel_2.13", Revision: "2.10.0"}},
	}
	catsKernel = testutil.Artifact{
		Org: "org.typelevel", Name: "cats-kernel_2.13", Revision: "2.10.0",
		Sources: map[string]string{"cats/kernel/Eq.scala": "package cats.kernel\n\ntrait Eq[A]\n"},
	}
	slf4j = testutil.Artifact{
		Org: "org.slf4j", Name: "slf4j-api", Revision: "2.0.9",
	}
)

// setupBuild creates a build root and a local repository holding the
// fixture artifacts. The build declares cats-core (cross-built) and slf4j-api.
func setupBuild(t *testing.T) (root, repo string) {
	t.Helper()
	root = t.TempDir()
	repo = t.TempDir()
	testutil.Publish(t, repo, catsCore, catsKernel, slf4j)

	b := &manifest.Build{
		Version:      1,
		Name:         "demo",
		ScalaVersion: "2.13",
		Repositories: []string{repo},
		Modules: []manifest.Module{{
			ID: "core",
			Dependencies: []manifest.Dependency{
				{Org: "org.typelevel", Name: "cats-core", Revision: "2.10.0", Cross: true},
				{Org: "org.slf4j", Name: "slf4j-api", Revision: "2.0.9"},
			},
		}},
	}
	if err := manifest.Save(filepath.Join(root, manifest.FileName), b); err != nil {
		t.Fatal(err)
	}
	return root, repo
}

// execute runs the CLI with args and returns stdout. Diagnostic logs go to
// a separate buffer.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func externalDir(root string) string {
	return filepath.Join(root, "target", "external-sources")
}
