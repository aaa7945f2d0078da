// Package ioextract runs a whole extraction: it turns inclusion criteria
// into a target system set, closes it over the source dataset, writes the
// fixture with its release marker and optionally records its manifest.
package ioextract

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/evefrontier/fixgen/internal/iofs"
	"github.com/evefrontier/fixgen/internal/iomanifest"
	"github.com/evefrontier/fixgen/internal/ioroutes"
	"github.com/evefrontier/fixgen/internal/iosource"
	"github.com/evefrontier/fixgen/pkg/closure"
	"github.com/evefrontier/fixgen/pkg/config"
	"github.com/evefrontier/fixgen/pkg/corridor"
	"github.com/evefrontier/fixgen/pkg/fixture"
	"github.com/evefrontier/fixgen/pkg/graph"
	"github.com/evefrontier/fixgen/pkg/starmap"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

// defaultRelease goes into the fixture release marker when neither the
// source nor the config provide one.
const defaultRelease = "fixture"

type extractor struct {
	cfg *config.Config
	mat fixture.Materializer
	fp  fixture.Fingerprinter
	log *slog.Logger
}

// New creates an Extractor. Fingerprinter is used only when
// cfg.Extract.Record is true.
func New(
	cfg *config.Config,
	mat fixture.Materializer,
	fp fixture.Fingerprinter,
) fixture.Extractor {
	return &extractor{cfg: cfg, mat: mat, fp: fp}
}

// Extract implements fixture.Extractor.
func (e *extractor) Extract(ctx context.Context) (*fixture.Report, error) {
	start := time.Now()
	ex := e.cfg.Extract
	report := &fixture.Report{
		RunID:      uuid.NewString(),
		OutputPath: ex.OutputPath,
	}
	e.log = slog.With("run_id", report.RunID)

	if !ex.HasCriteria() {
		return nil, ConfigNoCriteriaError()
	}
	if err := checkProtected(e.cfg.Source.Path, ex.OutputPath); err != nil {
		return nil, err
	}

	ds, err := iosource.Open(ctx, e.cfg.Source.Path)
	if err != nil {
		return nil, err
	}
	defer ds.Close()
	report.Variant = ds.Capabilities().Variant

	// Inputs are validated before anything is written.
	targets, cr, err := e.targets(ctx, ds)
	if err != nil {
		return nil, err
	}

	res, err := closure.Build(ctx, targets, ds)
	if err != nil {
		return nil, err
	}
	if err = res.Check(); err != nil {
		return nil, err
	}
	report.Missing = len(res.Missing)

	if cr != nil {
		// routes through corridor systems absent from the source cannot
		// be replayed with the fixture
		covered := cr.CoveredWithin(res.SystemIDs())
		report.Routes = cr.Routes
		report.CoveredRoutes = len(covered)
		report.CoveragePct = cr.Pct(len(covered))
		if dropped := len(cr.Covered) - len(covered); dropped > 0 {
			e.log.Warn("Covered routes lost to missing systems",
				"routes", dropped)
		}
	}

	report.Counts, err = e.mat.Materialize(
		ctx, res, ds.Capabilities().Definition(), ex.OutputPath,
	)
	if err != nil {
		return nil, err
	}

	if err = e.writeReleaseMarker(); err != nil {
		return nil, err
	}

	report.SelectionID = selectionID(res.SystemIDs())
	report.SystemNames = systemNames(res.Systems)
	report.CorridorSummary, err = e.writeCorridorSummary(report)
	if err != nil {
		return nil, err
	}

	if ex.Record {
		report.Manifest, err = e.fp.Record(
			ctx, ex.OutputPath, config.ManifestPath(ex.OutputPath),
		)
		if err != nil {
			return nil, err
		}
	}

	report.Duration = time.Since(start).Seconds()

	e.log.Info("Extraction complete",
		"output", ex.OutputPath,
		"selection_id", report.SelectionID,
		"systems", len(res.Systems),
		"missing", report.Missing,
	)
	return report, nil
}

// targets resolves every criterion and returns their union.
func (e *extractor) targets(
	ctx context.Context,
	ds *iosource.Dataset,
) (starmap.IDSet, *corridor.Result, error) {
	ex := e.cfg.Extract
	res := starmap.NewIDSet()

	var systems []starmap.SolarSystem
	var names map[string]starmap.ID
	if len(ex.SeedNames) > 0 || ex.RadiusLy > 0 {
		var err error
		if systems, err = ds.AllSystems(ctx); err != nil {
			return nil, nil, err
		}
		names = iosource.NameIndex(systems)
	}

	if len(ex.SeedNames) > 0 {
		seeds, err := graph.ResolveSeeds(ex.SeedNames, func(n string) (starmap.ID, bool) {
			id, ok := names[n]
			return id, ok
		})
		if err != nil {
			return nil, nil, err
		}
		if ex.AdjacencyDepth > 0 {
			jumps, err := ds.AllJumps(ctx)
			if err != nil {
				return nil, nil, err
			}
			seeds = graph.Expand(seeds, jumps, ex.AdjacencyDepth)
		}
		e.log.Info("Selected by seeds",
			"seeds", len(ex.SeedNames),
			"depth", ex.AdjacencyDepth,
			"systems", seeds.Len(),
		)
		res = res.Union(seeds)
	}

	if ex.RadiusLy > 0 {
		within, err := e.radius(ds, systems, names)
		if err != nil {
			return nil, nil, err
		}
		res = res.Union(within)
	}

	var cr *corridor.Result
	if ex.CorridorThreshold > 0 {
		routes, err := ioroutes.Load(e.cfg.Source.RoutesPath)
		if err != nil {
			return nil, nil, err
		}
		cr = corridor.Analyze(routes, ex.CorridorThreshold)
		e.log.Info("Selected by corridor",
			"threshold", ex.CorridorThreshold,
			"systems", cr.Corridor.Len(),
			"covered_routes", len(cr.Covered),
			"routes", cr.Routes,
		)
		res = res.Union(cr.Corridor)
	}

	return res, cr, nil
}

func (e *extractor) radius(
	ds *iosource.Dataset,
	systems []starmap.SolarSystem,
	names map[string]starmap.ID,
) (starmap.IDSet, error) {
	ex := e.cfg.Extract
	if ex.RadiusOrigin == "" {
		return nil, RadiusOriginNotFoundError("")
	}
	if !ds.Capabilities().HasPositions() {
		return nil, RadiusNoPositionError(ds.Path(), ex.RadiusOrigin)
	}
	id, ok := names[ex.RadiusOrigin]
	if !ok {
		return nil, RadiusOriginNotFoundError(ex.RadiusOrigin)
	}

	idx := slices.IndexFunc(systems, func(s starmap.SolarSystem) bool {
		return s.ID == id
	})
	origin := systems[idx]
	if !origin.HasPosition {
		return nil, RadiusNoPositionError(ds.Path(), ex.RadiusOrigin)
	}

	res := graph.WithinRadius(origin.Position, systems, ex.RadiusLy)
	e.log.Info("Selected by radius",
		"origin", ex.RadiusOrigin,
		"radius_ly", ex.RadiusLy,
		"systems", res.Len(),
	)
	return res, nil
}

// writeReleaseMarker copies the source marker next to the fixture, or
// writes one from the configured release.
func (e *extractor) writeReleaseMarker() error {
	src := config.ReleaseMarkerPath(e.cfg.Source.Path)
	dst := config.ReleaseMarkerPath(e.cfg.Extract.OutputPath)

	exists, err := iofs.FileExists(src)
	if err != nil {
		return err
	}
	if exists {
		if _, err = iomanifest.ReadReleaseMarker(src); err != nil {
			return err
		}
		e.log.Info("Copying release marker", "from", src, "to", dst)
		return iofs.CopyFile(src, dst)
	}

	release := e.cfg.Source.Release
	if release == "" {
		release = defaultRelease
	}
	e.log.Info("Writing release marker", "path", dst, "resolved", release)
	return iomanifest.WriteReleaseMarker(dst, release)
}

// checkProtected refuses to write over the source dataset or its
// release marker.
func checkProtected(source, output string) error {
	absSrc, err := filepath.Abs(source)
	if err != nil {
		return SourcePathError(source, err)
	}
	absOut, err := filepath.Abs(output)
	if err != nil {
		return SourcePathError(output, err)
	}
	if absSrc == absOut || absOut == config.ReleaseMarkerPath(absSrc) {
		return SourceProtectedPathError(output)
	}
	return nil
}

// selectionID is a UUIDv5 of the sorted system IDs, so the same
// selection is recognizable across runs and machines.
func selectionID(ids starmap.IDSet) string {
	sorted := ids.Sorted()
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(int64(id), 10)
	}
	return gnuuid.New(strings.Join(parts, ",")).String()
}

func systemNames(systems []starmap.SolarSystem) []string {
	res := make([]string, len(systems))
	for i, s := range systems {
		res[i] = s.Name
	}
	slices.Sort(res)
	return res
}
