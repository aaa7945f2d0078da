// Package closure computes the referentially complete subset of a
// starmap dataset for a set of target solar systems.
//
// Dependent rows are collected strictly top-down: systems give regions,
// constellations, jumps and planets, planets give moons. Nothing is ever
// pulled in sideways (a moon is not selected by its system column), so
// every foreign key of the result points inside the result.
package closure

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/evefrontier/fixgen/pkg/schema"
	"github.com/evefrontier/fixgen/pkg/starmap"
)

// Source reads rows of a starmap dataset filtered by keys.
type Source interface {
	// Capabilities describes the tables and fields of the dataset.
	Capabilities() *schema.Capabilities
	// Systems returns solar systems with the given IDs.
	Systems(ctx context.Context, ids starmap.IDSet) ([]starmap.SolarSystem, error)
	// Regions returns regions with the given IDs.
	Regions(ctx context.Context, ids starmap.IDSet) ([]starmap.Region, error)
	// Constellations returns constellations with the given IDs.
	Constellations(ctx context.Context, ids starmap.IDSet) ([]starmap.Constellation, error)
	// Jumps returns jumps whose both endpoints are in systemIDs.
	Jumps(ctx context.Context, systemIDs starmap.IDSet) ([]starmap.Jump, error)
	// Planets returns planets of the given systems.
	Planets(ctx context.Context, systemIDs starmap.IDSet) ([]starmap.Planet, error)
	// Moons returns moons of the given planets.
	Moons(ctx context.Context, planetIDs starmap.IDSet) ([]starmap.Moon, error)
	// Stations returns stations of the given systems.
	Stations(ctx context.Context, systemIDs starmap.IDSet) ([]starmap.Station, error)
	// Referenced returns rows of a table outside the starmap layout whose
	// column holds one of values.
	Referenced(
		ctx context.Context,
		tbl *schema.Table,
		column string,
		values []any,
	) ([]starmap.Row, error)
}

// Result is a closed subset of a dataset. Every slice is sorted by
// primary key.
type Result struct {
	Regions        []starmap.Region
	Constellations []starmap.Constellation
	Systems        []starmap.SolarSystem
	Jumps          []starmap.Jump
	Planets        []starmap.Planet
	Moons          []starmap.Moon
	Stations       []starmap.Station
	// Extra holds rows of tables outside the starmap layout by table
	// name. Only rows referenced from the rest of the result get here.
	Extra          map[string][]starmap.Row

	// Missing are target IDs that do not exist in the source.
	Missing []starmap.ID

	checkRegions        bool
	checkConstellations bool
	caps                *schema.Capabilities
}

// Build collects the closure of targets. Targets absent from the source
// are logged and left out. An empty target set gives an empty result.
func Build(
	ctx context.Context,
	targets starmap.IDSet,
	src Source,
) (*Result, error) {
	caps := src.Capabilities()
	res := &Result{caps: caps}
	if targets.Len() == 0 {
		return res, nil
	}

	systems, err := src.Systems(ctx, targets)
	if err != nil {
		return nil, err
	}
	systemIDs := starmap.NewIDSet()
	regionIDs := starmap.NewIDSet()
	constIDs := starmap.NewIDSet()
	for _, s := range systems {
		systemIDs.Add(s.ID)
		if s.RegionID != 0 {
			regionIDs.Add(s.RegionID)
		}
		if s.ConstellationID != 0 {
			constIDs.Add(s.ConstellationID)
		}
	}
	res.Systems = systems

	for _, id := range targets.Sorted() {
		if !systemIDs.Has(id) {
			res.Missing = append(res.Missing, id)
		}
	}
	if len(res.Missing) > 0 {
		slog.Warn("Target systems not found in source, skipping",
			"count", len(res.Missing), "ids", res.Missing)
	}
	if systemIDs.Len() == 0 {
		return res, nil
	}

	sysTbl, _ := caps.Table(schema.SolarSystemsTable)

	if caps.HasTable(schema.ConstellationsTable) &&
		sysTbl.Has(schema.FieldConstellationID) {
		res.checkConstellations = true
		if res.Constellations, err = src.Constellations(ctx, constIDs); err != nil {
			return nil, err
		}
		// constellations may reference regions no system points to directly
		for _, c := range res.Constellations {
			if c.RegionID != 0 {
				regionIDs.Add(c.RegionID)
			}
		}
	}

	if caps.HasTable(schema.RegionsTable) && (sysTbl.Has(schema.FieldRegionID) ||
		res.checkConstellations) {
		res.checkRegions = true
		if res.Regions, err = src.Regions(ctx, regionIDs); err != nil {
			return nil, err
		}
	}

	if res.Jumps, err = src.Jumps(ctx, systemIDs); err != nil {
		return nil, err
	}

	if caps.HasTable(schema.PlanetsTable) {
		if res.Planets, err = src.Planets(ctx, systemIDs); err != nil {
			return nil, err
		}
		planetIDs := starmap.NewIDSet()
		for _, p := range res.Planets {
			planetIDs.Add(p.ID)
		}
		if caps.HasTable(schema.MoonsTable) && planetIDs.Len() > 0 {
			if res.Moons, err = src.Moons(ctx, planetIDs); err != nil {
				return nil, err
			}
		}
	}

	if caps.HasTable(schema.NpcStationsTable) {
		if res.Stations, err = src.Stations(ctx, systemIDs); err != nil {
			return nil, err
		}
	} else {
		slog.Info("No station table in source, skipping")
	}

	if err = res.resolveReferences(ctx, src); err != nil {
		return nil, err
	}

	res.sort()
	return res, nil
}

func (r *Result) sort() {
	slices.SortFunc(r.Regions, func(a, b starmap.Region) int {
		return cmp.Compare(a.ID, b.ID)
	})
	slices.SortFunc(r.Constellations, func(a, b starmap.Constellation) int {
		return cmp.Compare(a.ID, b.ID)
	})
	slices.SortFunc(r.Systems, func(a, b starmap.SolarSystem) int {
		return cmp.Compare(a.ID, b.ID)
	})
	slices.SortFunc(r.Jumps, func(a, b starmap.Jump) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})
	slices.SortFunc(r.Planets, func(a, b starmap.Planet) int {
		return cmp.Compare(a.ID, b.ID)
	})
	slices.SortFunc(r.Moons, func(a, b starmap.Moon) int {
		return cmp.Compare(a.ID, b.ID)
	})
	slices.SortFunc(r.Stations, func(a, b starmap.Station) int {
		return cmp.Compare(a.ID, b.ID)
	})
}

// SystemIDs returns IDs of the systems in the result.
func (r *Result) SystemIDs() starmap.IDSet {
	res := starmap.NewIDSet()
	for _, s := range r.Systems {
		res.Add(s.ID)
	}
	return res
}

// Rows returns source rows of a logical table, in result order.
func (r *Result) Rows(table string) []starmap.Row {
	if rows, ok := r.Extra[table]; ok {
		return rows
	}
	var res []starmap.Row
	switch table {
	case schema.RegionsTable:
		for _, v := range r.Regions {
			res = append(res, v.Row)
		}
	case schema.ConstellationsTable:
		for _, v := range r.Constellations {
			res = append(res, v.Row)
		}
	case schema.SolarSystemsTable:
		for _, v := range r.Systems {
			res = append(res, v.Row)
		}
	case schema.JumpsTable:
		for _, v := range r.Jumps {
			res = append(res, v.Row)
		}
	case schema.PlanetsTable:
		for _, v := range r.Planets {
			res = append(res, v.Row)
		}
	case schema.MoonsTable:
		for _, v := range r.Moons {
			res = append(res, v.Row)
		}
	case schema.NpcStationsTable:
		for _, v := range r.Stations {
			res = append(res, v.Row)
		}
	}
	return res
}

// Counts returns the number of rows per logical table.
func (r *Result) Counts() map[string]int {
	res := map[string]int{
		schema.RegionsTable:        len(r.Regions),
		schema.ConstellationsTable: len(r.Constellations),
		schema.SolarSystemsTable:   len(r.Systems),
		schema.JumpsTable:          len(r.Jumps),
		schema.PlanetsTable:        len(r.Planets),
		schema.MoonsTable:          len(r.Moons),
		schema.NpcStationsTable:    len(r.Stations),
	}
	for t, rows := range r.Extra {
		res[t] = len(rows)
	}
	return res
}
