package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvFile is the optional dotenv file read from the build root.
const EnvFile = ".env"

// Environment keys recognized by FromEnv.
const (
	EnvExternalSourceDirName   = "SUBLIME_EXTERNAL_SOURCE_DIRECTORY_NAME"
	EnvExternalSourceDirParent = "SUBLIME_EXTERNAL_SOURCE_DIRECTORY_PARENT"
	EnvExternalSourceDir       = "SUBLIME_EXTERNAL_SOURCE_DIRECTORY"
	EnvTransitive              = "SUBLIME_TRANSITIVE"
	EnvProjectName             = "SUBLIME_PROJECT_NAME"
	EnvProjectDir              = "SUBLIME_PROJECT_DIR"
)

var envKeys = []string{
	EnvExternalSourceDirName,
	EnvExternalSourceDirParent,
	EnvExternalSourceDir,
	EnvTransitive,
	EnvProjectName,
	EnvProjectDir,
}

// LoadEnv reads the dotenv file at path, if present, and overlays the
// recognized keys from the process environment.
func LoadEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		env = map[string]string{}
	} else if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}

// FromEnv builds a layer from environment values. Empty values are ignored.
func FromEnv(env map[string]string) (Layer, error) {
	l := Layer{
		ExternalSourceDirName:   nonEmpty(env[EnvExternalSourceDirName]),
		ExternalSourceDirParent: nonEmpty(env[EnvExternalSourceDirParent]),
		ExternalSourceDir:       nonEmpty(env[EnvExternalSourceDir]),
		ProjectName:             nonEmpty(env[EnvProjectName]),
		ProjectDir:              nonEmpty(env[EnvProjectDir]),
	}
	if v := env[EnvTransitive]; v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Layer{}, fmt.Errorf("%s: invalid boolean %q", EnvTransitive, v)
		}
		l.Transitive = &b
	}
	return l, nil
}
