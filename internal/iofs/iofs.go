// Package iofs creates the fixgen directories and small files around
// datasets and fixtures.
package iofs

import (
	_ "embed"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/evefrontier/fixgen/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config and log directories under homeDir.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureParentDir creates the directory a file is going to be written to.
func EnsureParentDir(path string) error {
	return touchDir(filepath.Dir(path))
}

// EnsureConfigFile writes the embedded config.yaml unless the user
// already has one.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// FileExists reports whether a regular file exists at path.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, ReadFileError(path, err)
	}
	return !info.IsDir(), nil
}

// RequireFile returns FileNotFoundError unless a regular file exists at
// path. What names the file in the message (dataset, manifest...).
func RequireFile(what, path string) error {
	ok, err := FileExists(path)
	if err != nil {
		return err
	}
	if !ok {
		return FileNotFoundError(what, path)
	}
	return nil
}

// CopyFile copies src to dst, replacing dst.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return ReadFileError(src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return CopyFileError(dst, err)
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return CopyFileError(dst, err)
	}
	if err = out.Close(); err != nil {
		return CopyFileError(dst, err)
	}
	return nil
}
