package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rathboma/sbt-sublime/internal/config"
	"github.com/rathboma/sbt-sublime/internal/lock"
	"github.com/rathboma/sbt-sublime/internal/manifest"
)

// Context holds the resolved paths and loaded build definition.
type Context struct {
	Root         string
	ManifestPath string
	EnvPath      string
	Manifest     *manifest.Build
}

// Load resolves the build root and loads build.yaml from it.
func Load(root string) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving build root: %w", err)
	}

	manifestPath := filepath.Join(root, manifest.FileName)
	b, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	return &Context{
		Root:         root,
		ManifestPath: manifestPath,
		EnvPath:      filepath.Join(root, config.EnvFile),
		Manifest:     b,
	}, nil
}

// Settings resolves the run configuration: defaults from the build, then the
// build's sublime block, the environment (.env and process), and flags.
func (c *Context) Settings(flags config.Layer) (config.Settings, error) {
	env, err := config.LoadEnv(c.EnvPath)
	if err != nil {
		return config.Settings{}, err
	}
	envLayer, err := config.FromEnv(env)
	if err != nil {
		return config.Settings{}, err
	}
	return config.Resolve(c.Root, c.Manifest.Name, config.FromManifest(c.Manifest.Sublime), envLayer, flags), nil
}

// ModuleDir returns the absolute directory of a module.
func (c *Context) ModuleDir(m manifest.Module) string {
	return filepath.Join(c.Root, m.Path)
}

// Repositories returns the build's repository roots followed by extra.
// Relative entries are taken relative to the build root; "~" is kept for
// the resolver to expand.
func (c *Context) Repositories(extra []string) []string {
	all := append(append([]string(nil), c.Manifest.Repositories...), extra...)
	out := make([]string, 0, len(all))
	for _, r := range all {
		if filepath.IsAbs(r) || r == "~" || strings.HasPrefix(r, "~/") {
			out = append(out, r)
			continue
		}
		out = append(out, filepath.Join(c.Root, r))
	}
	return out
}

// LockPath returns where the sources lock lives for the given settings.
func LockPath(s config.Settings) string {
	return lock.Path(s.ExternalSourceDir)
}

// LoadLock loads the sources lock if one exists. A missing lock is (nil, nil).
func LoadLock(s config.Settings) (*lock.File, error) {
	path := LockPath(s)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return lock.Load(path)
}
