package ioextract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/evefrontier/fixgen/internal/iofs"
	"github.com/evefrontier/fixgen/pkg/config"
	"github.com/evefrontier/fixgen/pkg/fixture"
	"github.com/evefrontier/fixgen/pkg/schema"
	"github.com/gnames/gnfmt"
)

// sampleSystems limits names listed in a corridor summary.
const sampleSystems = 10

// writeCorridorSummary describes a corridor fixture next to it. Runs
// without a corridor remove a summary left by an earlier run, it would
// describe a different fixture.
func (e *extractor) writeCorridorSummary(r *fixture.Report) (string, error) {
	path := config.CorridorSummaryPath(r.OutputPath)
	threshold := e.cfg.Extract.CorridorThreshold
	if threshold <= 0 {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", iofs.WriteFileError(path, err)
		}
		return "", nil
	}

	info, err := os.Stat(r.OutputPath)
	if err != nil {
		return "", iofs.ReadFileError(r.OutputPath, err)
	}

	sample := r.SystemNames
	if len(sample) > sampleSystems {
		sample = sample[:sampleSystems]
	}
	summary := fixture.CorridorSummary{
		Description: fmt.Sprintf(
			"Route testing fixture, systems seen in %d+ discovered routes",
			threshold,
		),
		Threshold:      threshold,
		SystemsCount:   r.Counts[schema.SolarSystemsTable],
		JumpsCount:     r.Counts[schema.JumpsTable],
		Routes:         r.Routes,
		TestableRoutes: r.CoveredRoutes,
		CoveragePct:    r.CoveragePct,
		SampleSystems:  sample,
		SelectionID:    r.SelectionID,
		FileSizeBytes:  info.Size(),
	}

	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(summary)
	if err != nil {
		return "", iofs.WriteFileError(path, err)
	}
	if err = os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", iofs.WriteFileError(path, err)
	}
	e.log.Info("Corridor summary written", "path", path)
	return path, nil
}
