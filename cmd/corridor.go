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
	"github.com/evefrontier/fixgen/internal/ioroutes"
	"github.com/evefrontier/fixgen/pkg/corridor"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCorridorCmd returns the corridor command.
func getCorridorCmd() *cobra.Command {
	var (
		src       sourceFlags
		threshold int
		top       int
		sweep     int
	)

	corridorCmd := &cobra.Command{
		Use:   "corridor",
		Short: "Analyze discovered routes and the systems they share",
		Long: `Count how often every solar system appears in the discovered route
corpus and report the corridor for a threshold: systems seen at least
that many times and the routes whose whole path stays inside it.

A sweep over thresholds 1..N shows how many systems a fixture needs
for a given share of testable routes. Nothing is written.

Examples:
  fixgen corridor --routes docs/SampleRoutes.csv
  fixgen corridor -t 5 --top 20 --sweep 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(src.options(cmd))
			err := runCorridor(cmd, threshold, top, sweep)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	src.register(corridorCmd)
	corridorCmd.Flags().IntVarP(
		&threshold, "threshold", "t", 4,
		"minimum number of routes a corridor system appears in",
	)
	corridorCmd.Flags().IntVar(
		&top, "top", 10,
		"number of most common systems to list",
	)
	corridorCmd.Flags().IntVar(
		&sweep, "sweep", 8,
		"analyze thresholds 1..N (0 = no sweep)",
	)

	return corridorCmd
}

func runCorridor(cmd *cobra.Command, threshold, top, sweep int) error {
	routes, err := ioroutes.Load(cfg.Source.RoutesPath)
	if err != nil {
		return err
	}

	res := corridor.Analyze(routes, threshold)
	var points []corridor.Point
	if sweep > 0 {
		points = corridor.Sweep(routes, sweep)
	}
	return corridor.Report(cmd.OutOrStdout(), res, top, points)
}
