package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptSourcePath sets the SQLite file with the full starmap dataset.
func OptSourcePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Path", s) {
			c.Source.Path = s
		}
	}
}

// OptSourceRoutesPath sets the CSV file with discovered routes.
func OptSourceRoutesPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Routes Path", s) {
			c.Source.RoutesPath = s
		}
	}
}

// OptSourceRelease sets the release written to fixture markers when the
// source has no marker file.
func OptSourceRelease(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Release", s) {
			c.Source.Release = s
		}
	}
}

// OptExtractSeedNames sets the names of systems that are always included.
// Blank names are dropped, duplicates are kept once in given order.
// Runtime-only field - not in ToOptions().
func OptExtractSeedNames(ss []string) Option {
	var names []string
	seen := make(map[string]struct{})
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		names = append(names, s)
	}
	return func(c *Config) {
		if len(names) > 0 {
			c.Extract.SeedNames = names
		}
	}
}

// OptExtractAdjacencyDepth sets how many gate hops are added to seeds.
// Zero means seeds only.
// Runtime-only field - not in ToOptions().
func OptExtractAdjacencyDepth(i int) Option {
	return func(c *Config) {
		if isValidNonNegative("Adjacency Depth", i) {
			c.Extract.AdjacencyDepth = i
		}
	}
}

// OptExtractRadiusLy sets the spatial radius in light-years.
// Runtime-only field - not in ToOptions().
func OptExtractRadiusLy(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Radius", f) {
			c.Extract.RadiusLy = f
		}
	}
}

// OptExtractRadiusOrigin sets the name of the system the radius is
// measured from.
// Runtime-only field - not in ToOptions().
func OptExtractRadiusOrigin(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Radius Origin", s) {
			c.Extract.RadiusOrigin = s
		}
	}
}

// OptExtractCorridorThreshold sets the minimal number of routes a system
// has to appear in to be part of the corridor.
// Runtime-only field - not in ToOptions().
func OptExtractCorridorThreshold(i int) Option {
	return func(c *Config) {
		if isValidInt("Corridor Threshold", i) {
			c.Extract.CorridorThreshold = i
		}
	}
}

// OptExtractOutputPath sets the fixture file to create.
// Runtime-only field - not in ToOptions().
func OptExtractOutputPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Path", s) {
			c.Extract.OutputPath = s
		}
	}
}

// OptExtractRecord sets whether a manifest is recorded after extraction.
// Runtime-only field - not in ToOptions().
func OptExtractRecord(b bool) Option {
	return func(c *Config) {
		c.Extract.Record = b
	}
}

// OptExtractWithProgress sets whether row copying shows a progress bar.
// Runtime-only field - not in ToOptions().
func OptExtractWithProgress(b bool) Option {
	return func(c *Config) {
		c.Extract.WithProgress = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
