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
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/evefrontier/fixgen/internal/iosource"
	"github.com/evefrontier/fixgen/pkg/starmap"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getInspectCmd returns the inspect command.
func getInspectCmd() *cobra.Command {
	var sample int

	inspectCmd := &cobra.Command{
		Use:   "inspect [dataset]",
		Short: "Show schema variant, tables and sample systems of a dataset",
		Long: `Open a starmap dataset or fixture and print what fixgen understands
of it: the schema variant, the tables it found with their columns and
row counts, tolerated schema deviations and a few solar systems.

Without an argument the configured source dataset is inspected.

Examples:
  fixgen inspect static_data.db
  fixgen inspect docs/fixtures/minimal_static_data.db -n 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.Source.Path
			if len(args) == 1 {
				path = args[0]
			}
			err := runInspect(cmd.OutOrStdout(), path, sample)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	inspectCmd.Flags().IntVarP(
		&sample, "sample", "n", 5,
		"number of solar systems to show",
	)
	return inspectCmd
}

func runInspect(w io.Writer, path string, sample int) error {
	ctx := context.Background()
	ds, err := iosource.Open(ctx, path)
	if err != nil {
		return err
	}
	defer ds.Close()

	caps := ds.Capabilities()
	var b strings.Builder
	fmt.Fprintf(&b, "Dataset: %s\n", path)
	fmt.Fprintf(&b, "Schema:  %s\n", caps.Variant)
	fmt.Fprintf(&b, "Coordinates: %t\n", caps.HasPositions())

	b.WriteString("\nTables:\n")
	for _, t := range caps.Definition().Tables {
		n, err := ds.Count(ctx, t.Name)
		if err != nil {
			return err
		}
		name := t.Name
		if t.Physical != t.Name {
			name += " (" + t.Physical + ")"
		}
		fmt.Fprintf(&b, "  %-36s %10s rows\n", name, humanize.Comma(n))
		fmt.Fprintf(&b, "    %s\n", strings.Join(t.Columns, ", "))
	}

	if len(caps.Notes) > 0 {
		b.WriteString("\nNotes:\n")
		for _, n := range caps.Notes {
			fmt.Fprintf(&b, "  - %s\n", n)
		}
	}

	if sample > 0 {
		systems, err := ds.AllSystems(ctx)
		if err != nil {
			return err
		}
		slices.SortFunc(systems, func(a, b starmap.SolarSystem) int {
			return cmp.Compare(a.ID, b.ID)
		})
		if len(systems) > sample {
			systems = systems[:sample]
		}
		fmt.Fprintf(&b, "\nSample systems (%d):\n", len(systems))
		for _, s := range systems {
			fmt.Fprintf(&b, "  %d  %s\n", s.ID, s.Name)
		}
	}

	_, err = io.WriteString(w, b.String())
	return err
}
