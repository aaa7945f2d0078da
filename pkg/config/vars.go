package config

import (
	"path/filepath"
	"strings"
)

var (
	// AppName is used in generating file system paths.
	AppName = "fixgen"

	// ManifestExt replaces the fixture extension to form the manifest name.
	ManifestExt = ".meta.json"

	// CorridorExt replaces the fixture extension to form the name of the
	// corridor summary.
	CorridorExt = ".corridor.json"

	// ReleaseExt is appended to a dataset path to form its release marker.
	ReleaseExt = ".release"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/fixgen by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/fixgen/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/fixgen/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// ManifestPath returns the manifest location of a fixture:
// fixtures/route.db becomes fixtures/route.meta.json.
func ManifestPath(fixturePath string) string {
	base := strings.TrimSuffix(fixturePath, filepath.Ext(fixturePath))
	return base + ManifestExt
}

// CorridorSummaryPath returns where a corridor fixture is described:
// fixtures/route.db becomes fixtures/route.corridor.json.
func CorridorSummaryPath(fixturePath string) string {
	base := strings.TrimSuffix(fixturePath, filepath.Ext(fixturePath))
	return base + CorridorExt
}

// ReleaseMarkerPath returns the release marker location of a dataset:
// fixtures/route.db becomes fixtures/route.db.release.
func ReleaseMarkerPath(dbPath string) string {
	return dbPath + ReleaseExt
}
