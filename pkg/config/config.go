// Package config provides configuration management for fixgen.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Source: path, routes_path, release
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Extract.SeedNames, AdjacencyDepth, RadiusLy, RadiusOrigin,
//     CorridorThreshold, OutputPath, Record, WithProgress (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use FIXGEN_ prefix with underscores for nesting:
//
//	FIXGEN_SOURCE_PATH=/data/static_data.db
//	FIXGEN_SOURCE_ROUTES_PATH=/data/routes.csv
//	FIXGEN_LOG_LEVEL=info
package config

// Config represents the complete fixgen configuration.
type Config struct {
	// Source describes the full starmap dataset and the route corpus.
	Source SourceConfig `mapstructure:"source" yaml:"source"`

	// Extract contains the inclusion criteria of the extract command.
	Extract ExtractConfig `yaml:"-"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// SourceConfig locates the read-only inputs of an extraction.
type SourceConfig struct {
	// Path is the SQLite file with the full static starmap dataset.
	Path string `mapstructure:"path" yaml:"path"`

	// RoutesPath is the CSV file with discovered routes. It is only
	// needed when a corridor threshold is requested.
	RoutesPath string `mapstructure:"routes_path" yaml:"routes_path"`

	// Release is written into a fixture release marker when the source
	// dataset has no marker of its own.
	Release string `mapstructure:"release" yaml:"release"`
}

// ExtractConfig holds the inclusion criteria. The union of every given
// criterion becomes the target system set.
type ExtractConfig struct {
	// SeedNames are solar system names that are always included.
	SeedNames []string

	// AdjacencyDepth is the number of single-hop gate expansions applied
	// to seeds. Zero keeps seeds only.
	AdjacencyDepth int

	// RadiusLy includes every system within this many light-years of
	// RadiusOrigin. Zero disables the spatial criterion.
	RadiusLy float64

	// RadiusOrigin is the name of the system the radius is measured from.
	RadiusOrigin string

	// CorridorThreshold keeps systems seen in at least this many
	// discovered routes. Zero disables the corridor criterion.
	CorridorThreshold int

	// OutputPath is the fixture file to create or replace.
	OutputPath string

	// Record writes the fixture manifest right after materialization.
	Record bool

	// WithProgress shows a progress bar while rows are copied.
	WithProgress bool
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// HasCriteria reports whether at least one inclusion criterion is set.
func (e ExtractConfig) HasCriteria() bool {
	return len(e.SeedNames) > 0 || e.RadiusLy > 0 || e.CorridorThreshold > 0
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Extract: ExtractConfig{
			AdjacencyDepth: 1,
			OutputPath:     "fixture.db",
			WithProgress:   true,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
