/*
Copyright © 2025 The fixgen Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/evefrontier/fixgen/internal/ioconfig"
	"github.com/evefrontier/fixgen/internal/iofs"
	"github.com/evefrontier/fixgen/internal/iologger"
	app "github.com/evefrontier/fixgen/pkg"
	"github.com/evefrontier/fixgen/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the base command, called without any subcommands
// it prints the effective configuration.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "fixgen",
		Short:   "Fixgen extracts self-consistent EVE Frontier starmap fixtures",
		Long: `Fixgen carves small, referentially consistent test fixtures out of
the full EVE Frontier static starmap dataset (SQLite) and pins them with
a manifest, so tests that use a fixture notice when it changes.

Commands:
  - extract: select systems and write a fixture with all dependent rows
  - status, record, verify: compute, write and check fixture manifests
  - corridor: analyze discovered routes and their shared systems
  - inspect: show the schema and contents of a dataset

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (FIXGEN_*), also read from .env
  3. Config file (~/.config/fixgen/config.yaml)
  4. Built-in defaults

  Examples:
    FIXGEN_SOURCE_PATH          full static_data.db
    FIXGEN_SOURCE_ROUTES_PATH   discovered routes CSV
    FIXGEN_LOG_LEVEL            debug/info/warn/error`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "fixgen version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for fixgen")

	rootCmd.AddCommand(
		getExtractCmd(),
		getStatusCmd(),
		getRecordCmd(),
		getVerifyCmd(),
		getCorridorCmd(),
		getInspectCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	envFile := filepath.Join(config.ConfigDir(homeDir), ".env")
	if err = ioconfig.LoadDotEnv(".env", envFile); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	cfgPath := config.ConfigFilePath(homeDir)
	if cfgViper, err = ioconfig.Load(cfgPath); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", cfgPath)
	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
// Creates log file in the proper location now that we know HomeDir.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

func runRoot(cmd *cobra.Command, args []string) error {
	yml, err := ioconfig.GenerateConfig(cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)
	fmt.Fprint(cmd.OutOrStdout(), yml)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	iologger.Close()
	if err != nil {
		os.Exit(1)
	}
}
