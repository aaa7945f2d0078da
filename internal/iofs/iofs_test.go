package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evefrontier/fixgen/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	// Create temporary test directory
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	// Verify config directory exists
	configDir := filepath.Join(tmpDir, ".config", "fixgen")
	info, err := os.Stat(configDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(),
		"Config directory should exist")

	// Verify log directory exists
	logDir := filepath.Join(tmpDir, ".local", "share", "fixgen",
		"logs")
	info, err = os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(),
		"Log directory should exist")
}

// TestEnsureDirs_Idempotent verifies multiple calls work.
func TestEnsureDirs_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	// First call
	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	// Second call should succeed
	err = EnsureDirs(tmpDir)
	require.NoError(t, err)

	// Third call should still succeed
	err = EnsureDirs(tmpDir)
	require.NoError(t, err)
}

// TestEnsureDirs_PermissionsCorrect verifies directory
// permissions are set correctly.
func TestEnsureDirs_PermissionsCorrect(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	configDir := filepath.Join(tmpDir, ".config", "fixgen")
	info, err := os.Stat(configDir)
	require.NoError(t, err)

	// Check permissions (0755)
	mode := info.Mode().Perm()
	assert.Equal(t, os.FileMode(0755), mode,
		"Directory should have 0755 permissions")
}

// TestTouchDir_CreatesNewDirectory verifies new directory
// creation.
func TestTouchDir_CreatesNewDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	newDir := filepath.Join(tmpDir, "test", "subdir")

	err := touchDir(newDir)
	require.NoError(t, err)

	info, err := os.Stat(newDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// TestTouchDir_ExistingDirectory verifies existing directory
// is not modified.
func TestTouchDir_ExistingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	existingDir := filepath.Join(tmpDir, "existing")

	// Create directory first
	err := os.MkdirAll(existingDir, 0755)
	require.NoError(t, err)

	// Get original info
	originalInfo, err := os.Stat(existingDir)
	require.NoError(t, err)

	// Call touchDir on existing directory
	err = touchDir(existingDir)
	require.NoError(t, err)

	// Verify directory still exists and unchanged
	newInfo, err := os.Stat(existingDir)
	require.NoError(t, err)
	assert.True(t, newInfo.IsDir())
	assert.Equal(t, originalInfo.Mode(), newInfo.Mode())
}

// TestEnsureConfigFile_CreatesFile verifies config file
// is created.
func TestEnsureConfigFile_CreatesFile(t *testing.T) {
	tmpDir := t.TempDir()

	// First ensure directories exist
	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	// Create config file
	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	// Verify file exists
	configPath := filepath.Join(tmpDir, ".config", "fixgen",
		"config.yaml")
	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir(),
		"Config file should be a file, not directory")

	// Verify file is not empty
	assert.Greater(t, info.Size(), int64(0),
		"Config file should not be empty")
}

// TestEnsureConfigFile_ContentCorrect verifies config file
// content matches embedded template.
func TestEnsureConfigFile_ContentCorrect(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, ".config", "fixgen",
		"config.yaml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)

	// Verify content matches embedded ConfigYAML
	assert.Equal(t, ConfigYAML, string(content),
		"Config file content should match embedded template")
}

// TestEnsureConfigFile_Idempotent verifies existing file
// is not overwritten.
func TestEnsureConfigFile_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	// Create config file
	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, ".config", "fixgen",
		"config.yaml")

	// Modify the file
	customContent := "# Custom config\nsource:\n  path: /data/static_data.db"
	err = os.WriteFile(configPath, []byte(customContent),
		0644)
	require.NoError(t, err)

	// Call EnsureConfigFile again
	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	// Verify file still has custom content
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, customContent, string(content),
		"Existing config file should not be overwritten")
}

// TestEnsureConfigFile_PermissionsCorrect verifies file
// permissions are set correctly.
func TestEnsureConfigFile_PermissionsCorrect(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, ".config", "fixgen",
		"config.yaml")
	info, err := os.Stat(configPath)
	require.NoError(t, err)

	// Check permissions (0644)
	mode := info.Mode().Perm()
	assert.Equal(t, os.FileMode(0644), mode,
		"Config file should have 0644 permissions")
}

// TestConfigYAML_Embedded verifies embedded config is
// not empty.
func TestConfigYAML_Embedded(t *testing.T) {
	assert.NotEmpty(t, ConfigYAML,
		"Embedded ConfigYAML should not be empty")
	assert.Contains(t, ConfigYAML, "source:",
		"ConfigYAML should contain source section")
	assert.Contains(t, ConfigYAML, "log",
		"ConfigYAML should contain log section")
}

// TestFileExists verifies files, directories and missing
// paths are told apart.
func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "static_data.db")
	err := os.WriteFile(file, []byte("x"), 0644)
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		ok   bool
	}{
		{"regular file", file, true},
		{"directory", tmpDir, false},
		{"missing", filepath.Join(tmpDir, "nope.db"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := FileExists(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

// TestRequireFile_Missing verifies a missing file gives
// FileNotFoundError.
func TestRequireFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "route.meta.json")

	err := RequireFile("manifest", path)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.FileNotFoundError, gnErr.Code)
	assert.Equal(t, []any{"manifest", path}, gnErr.Vars)
}

// TestCopyFile verifies content is copied and the target
// replaced.
func TestCopyFile(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "static_data.db.release")
	dst := filepath.Join(tmpDir, "fixture.db.release")
	require.NoError(t, os.WriteFile(src, []byte("resolved=e6c3\n"), 0644))
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0644))

	err := CopyFile(src, dst)
	require.NoError(t, err)

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "resolved=e6c3\n", string(content))
}

// TestEnsureParentDir verifies nested output directories
// are created.
func TestEnsureParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "fixtures", "route.db")
	err := EnsureParentDir(path)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
