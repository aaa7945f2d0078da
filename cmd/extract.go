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
	"context"

	"github.com/evefrontier/fixgen/internal/ioextract"
	"github.com/evefrontier/fixgen/internal/iofixture"
	"github.com/evefrontier/fixgen/internal/iomanifest"
	"github.com/evefrontier/fixgen/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getExtractCmd returns the extract command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getExtractCmd() *cobra.Command {
	var (
		src        sourceFlags
		seeds      []string
		depth      int
		radius     float64
		origin     string
		corridor   int
		output     string
		record     bool
		noProgress bool
	)

	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a referentially consistent fixture from the starmap",
		Long: `Select solar systems and write them into a new SQLite fixture
together with every row they depend on.

Selection criteria (their union is extracted, at least one is required):
  --seed NAME       systems by name, expanded by --depth gate hops
  --radius LY       systems within LY light-years of --origin
  --corridor N      systems seen in N or more discovered routes

The fixture contains the selected SolarSystems, the Jumps between them,
their Regions, Constellations, Planets, Moons of those planets and
stations if the source has them. Tables keep the DDL of the source.

A release marker (<output>.release) is written next to the fixture,
copied from <source>.release when it exists.

Corridor thresholds: 4 = ~50%, 5 = ~40%, 3 = ~58%, 2 = ~73%
of sample routes covered.

Examples:
  # Nod and Brana, their neighbours and everything 80 ly around Brana
  fixgen extract -s static_data.db --seed Nod --seed Brana \
    --radius 80 --origin Brana -o route_fixture.db

  # Systems used by at least 4 discovered routes, with a manifest
  fixgen extract --corridor 4 --routes SampleRoutes.csv \
    -o route_testing.db --record`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var eopts []config.Option
			eopts = append(eopts, src.options(cmd)...)
			if cmd.Flags().Changed("seed") {
				eopts = append(eopts, config.OptExtractSeedNames(seeds))
			}
			if cmd.Flags().Changed("depth") {
				eopts = append(eopts, config.OptExtractAdjacencyDepth(depth))
			}
			if cmd.Flags().Changed("radius") {
				eopts = append(eopts, config.OptExtractRadiusLy(radius))
			}
			if cmd.Flags().Changed("origin") {
				eopts = append(eopts, config.OptExtractRadiusOrigin(origin))
			}
			if cmd.Flags().Changed("corridor") {
				eopts = append(eopts, config.OptExtractCorridorThreshold(corridor))
			}
			if cmd.Flags().Changed("output") {
				eopts = append(eopts, config.OptExtractOutputPath(output))
			}
			eopts = append(eopts,
				config.OptExtractRecord(record),
				config.OptExtractWithProgress(!noProgress),
			)
			cfg.Update(eopts)

			err := runExtract(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	src.register(extractCmd)
	extractCmd.Flags().StringSliceVar(
		&seeds, "seed", nil,
		"seed system name, repeat or separate with commas",
	)
	extractCmd.Flags().IntVarP(
		&depth, "depth", "d", 1,
		"gate hops added around seeds (0 = seeds only)",
	)
	extractCmd.Flags().Float64Var(
		&radius, "radius", 0,
		"include systems within this many light-years of --origin",
	)
	extractCmd.Flags().StringVar(
		&origin, "origin", "",
		"system name the radius is measured from",
	)
	extractCmd.Flags().IntVar(
		&corridor, "corridor", 0,
		"include systems seen in at least N discovered routes",
	)
	extractCmd.Flags().StringVarP(
		&output, "output", "o", "fixture.db",
		"fixture file to create or replace",
	)
	extractCmd.Flags().BoolVar(
		&record, "record", false,
		"record the fixture manifest after extraction",
	)
	extractCmd.Flags().BoolVarP(
		&noProgress, "quiet", "q", false,
		"do not show progress bar",
	)

	return extractCmd
}

func runExtract(cmd *cobra.Command) error {
	ctx := context.Background()
	ex := ioextract.New(
		cfg,
		iofixture.New(cfg.Extract.WithProgress),
		iomanifest.New(),
	)

	report, err := ex.Extract(ctx)
	if err != nil {
		return err
	}

	gn.Info("Fixture written to <em>%s</em>", report.OutputPath)
	return ioextract.PrintReport(cmd.OutOrStdout(), report)
}
