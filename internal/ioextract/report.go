package ioextract

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/evefrontier/fixgen/pkg/fixture"
	"github.com/evefrontier/fixgen/pkg/schema"
	"github.com/gnames/gnfmt"
)

// namesShown limits the system list of a report.
const namesShown = 20

// PrintReport writes a human readable summary of an extraction.
func PrintReport(w io.Writer, r *fixture.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Fixture: %s (%s schema)\n", r.OutputPath, r.Variant)
	fmt.Fprintf(&b, "Selection: %s\n", r.SelectionID)

	b.WriteString("\nRows written:\n")
	for _, t := range schema.WriteOrder {
		n, ok := r.Counts[t]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %-15s %8s\n", t, humanize.Comma(n))
	}
	var extra []string
	for t := range r.Counts {
		if !slices.Contains(schema.WriteOrder, t) {
			extra = append(extra, t)
		}
	}
	slices.Sort(extra)
	for _, t := range extra {
		fmt.Fprintf(&b, "  %-15s %8s\n", t, humanize.Comma(r.Counts[t]))
	}

	if r.Missing > 0 {
		fmt.Fprintf(&b, "\nTargets not in source: %d\n", r.Missing)
	}
	if r.Routes > 0 {
		fmt.Fprintf(&b, "\nRoutes testable with corridor: %s of %s (%.1f%%)\n",
			humanize.Comma(int64(r.CoveredRoutes)),
			humanize.Comma(int64(r.Routes)),
			r.CoveragePct,
		)
	}

	fmt.Fprintf(&b, "\nSystems included (%d):\n", len(r.SystemNames))
	for i, name := range r.SystemNames {
		if i == namesShown {
			fmt.Fprintf(&b, "  ... and %d more\n", len(r.SystemNames)-namesShown)
			break
		}
		fmt.Fprintf(&b, "  %s\n", name)
	}

	if r.Manifest != nil {
		fmt.Fprintf(&b, "\nManifest recorded, sha256 %s\n", r.Manifest.SHA256)
	}
	if r.CorridorSummary != "" {
		fmt.Fprintf(&b, "\nCorridor summary written to %s\n", r.CorridorSummary)
	}
	if r.Duration > 0 {
		fmt.Fprintf(&b, "\nElapsed time: %s\n", gnfmt.TimeString(r.Duration))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
