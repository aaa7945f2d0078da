// Package ioconfig loads fixgen configuration from config.yaml, .env
// files and FIXGEN_* environment variables.
package ioconfig

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/evefrontier/fixgen/pkg/config"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable fixgen reads.
const EnvPrefix = "FIXGEN"

// LoadDotEnv loads variables from .env files into the environment.
// Variables that are already set win. Missing files are skipped, with
// no paths given ./.env is tried.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		err := godotenv.Load(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return ConfigLoadError(p, err)
		}
		slog.Info("Loaded environment file", "path", p)
	}
	return nil
}

// Load reads cfgPath and applies environment overrides. The returned
// Config holds only what was found, callers turn it into options with
// ToOptions and apply them to config.New().
func Load(cfgPath string) (*config.Config, error) {
	var err error
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, ConfigLoadError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, ConfigLoadError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Source configuration
	_ = v.BindEnv("source.path", EnvPrefix+"_SOURCE_PATH")
	_ = v.BindEnv("source.routes_path", EnvPrefix+"_SOURCE_ROUTES_PATH")
	_ = v.BindEnv("source.release", EnvPrefix+"_SOURCE_RELEASE")

	// Log configuration
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL")
	_ = v.BindEnv("log.format", EnvPrefix+"_LOG_FORMAT")
	_ = v.BindEnv("log.destination", EnvPrefix+"_LOG_DESTINATION")

	v.AutomaticEnv()
}
