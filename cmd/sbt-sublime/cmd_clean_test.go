package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rathboma/sbt-sublime/internal/config"
)

func TestRunClean_requiresForce(t *testing.T) {
	root, _ := setupBuild(t)
	if _, err := execute(t, "--root", root, "clean"); err == nil {
		t.Fatal("expected error without --force")
	}
}

func TestRunClean_removesExternalSources(t *testing.T) {
	root, _ := setupBuild(t)
	if _, err := execute(t, "--root", root, "gen-sublime"); err != nil {
		t.Fatalf("gen-sublime failed: %v", err)
	}

	out, err := execute(t, "--root", root, "clean", "--force")
	if err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	if !strings.Contains(out, "External sources removed") {
		t.Errorf("unexpected output: %s", out)
	}
	if _, err := os.Stat(externalDir(root)); !os.IsNotExist(err) {
		t.Error("external sources directory should be removed")
	}
	if _, err := os.Stat(filepath.Join(root, "build.yaml")); err != nil {
		t.Error("build definition must survive clean")
	}

	out, err = execute(t, "--root", root, "clean", "--force")
	if err != nil {
		t.Fatalf("second clean failed: %v", err)
	}
	if !strings.Contains(out, "Nothing to clean") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestRunClean_refusesUnmanagedDirectory(t *testing.T) {
	root, _ := setupBuild(t)
	keep := filepath.Join(externalDir(root), "keep.txt")
	if err := os.MkdirAll(filepath.Dir(keep), 0755); err != nil { //nolint:gosec // test dir
		t.Fatal(err)
	}
	if err := os.WriteFile(keep, []byte("x"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}

	if _, err := execute(t, "--root", root, "clean", "--force"); err == nil {
		t.Fatal("expected refusal without a sources lock")
	}
	if _, err := os.Stat(keep); err != nil {
		t.Error("unmanaged directory should be left alone")
	}
}

func TestCheckCleanTarget(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "ide")

	tests := []struct {
		name string
		dir  string
	}{
		{"filesystem root", string(filepath.Separator)},
		{"build root", root},
		{"build root unclean", root + string(filepath.Separator) + "."},
		{"ancestor of build root", filepath.Dir(root)},
		{"project dir", project},
		{"no lock", filepath.Join(root, "target", "src")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := config.Settings{ExternalSourceDir: tt.dir, ProjectDir: project}
			if err := checkCleanTarget(s, root); err == nil {
				t.Errorf("checkCleanTarget(%q) should refuse", tt.dir)
			}
		})
	}
}
