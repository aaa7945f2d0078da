package cmd

import (
	"github.com/evefrontier/fixgen/pkg/config"
	"github.com/spf13/cobra"
)

// sourceFlags are shared by commands that read the full dataset or the
// route corpus.
type sourceFlags struct {
	path    string
	routes  string
	release string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(
		&f.path, "source", "s", "",
		"full static dataset (SQLite), overrides source.path",
	)
	cmd.Flags().StringVar(
		&f.routes, "routes", "",
		"discovered routes CSV, overrides source.routes_path",
	)
	cmd.Flags().StringVar(
		&f.release, "release", "",
		"release for the fixture marker, overrides source.release",
	)
}

// options returns config options for flags set explicitly.
func (f *sourceFlags) options(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("source") {
		res = append(res, config.OptSourcePath(f.path))
	}
	if cmd.Flags().Changed("routes") {
		res = append(res, config.OptSourceRoutesPath(f.routes))
	}
	if cmd.Flags().Changed("release") {
		res = append(res, config.OptSourceRelease(f.release))
	}
	return res
}

// manifestPath returns the manifest flag value or the default location
// next to the fixture.
func manifestPath(cmd *cobra.Command, fixturePath string) string {
	if cmd.Flags().Changed("manifest") {
		res, _ := cmd.Flags().GetString("manifest")
		if res != "" {
			return res
		}
	}
	return config.ManifestPath(fixturePath)
}

func manifestFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(
		"manifest", "m", "",
		"manifest file (default: <fixture>.meta.json next to the fixture)",
	)
}
