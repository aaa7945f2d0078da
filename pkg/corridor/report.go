package corridor

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// Report writes a plain text summary of the analysis: corpus totals,
// corridor size and coverage, the top hubs and a threshold sweep.
func Report(w io.Writer, r *Result, top int, sweep []Point) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Total routes: %s\n", humanize.Comma(int64(r.Routes)))
	fmt.Fprintf(&b, "Unique systems: %s\n", humanize.Comma(int64(r.Unique())))
	fmt.Fprintf(&b, "Corridor systems (%d+ occurrences): %s\n",
		r.Threshold, humanize.Comma(int64(r.Corridor.Len())))
	fmt.Fprintf(&b, "Routes testable with corridor: %s (%.1f%%)\n",
		humanize.Comma(int64(len(r.Covered))), r.CoveragePct)

	if hubs := r.Top(top); len(hubs) > 0 {
		fmt.Fprintf(&b, "\nMost common systems (top %d):\n", len(hubs))
		for _, h := range hubs {
			fmt.Fprintf(&b, "  %d: %s (%d occurrences)\n", h.ID, h.Name, h.Count)
		}
	}

	if len(sweep) > 0 {
		b.WriteString("\nThreshold  Systems  Routes  Coverage\n")
		for _, p := range sweep {
			fmt.Fprintf(&b, "%9d  %7d  %6d  %7.1f%%\n",
				p.Threshold, p.Systems, p.Covered, p.CoveragePct)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
