package iosource

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/evefrontier/fixgen/pkg/closure"
	"github.com/evefrontier/fixgen/pkg/schema"
	"github.com/evefrontier/fixgen/pkg/starmap"
)

var _ closure.Source = (*Dataset)(nil)

// AllSystems returns every solar system of the dataset.
func (d *Dataset) AllSystems(ctx context.Context) ([]starmap.SolarSystem, error) {
	tbl, _ := d.caps.Table(schema.SolarSystemsTable)
	rows, err := d.scanRows(ctx, tbl, selectAll(tbl))
	if err != nil {
		return nil, err
	}
	return decodeSystems(tbl, rows), nil
}

// AllJumps returns every gate edge of the dataset.
func (d *Dataset) AllJumps(ctx context.Context) ([]starmap.Jump, error) {
	tbl, _ := d.caps.Table(schema.JumpsTable)
	rows, err := d.scanRows(ctx, tbl, selectAll(tbl))
	if err != nil {
		return nil, err
	}
	return decodeJumps(tbl, rows), nil
}

// NameIndex maps system names to IDs. When a name is used by more than
// one system, the lowest ID wins and a warning is logged.
func NameIndex(systems []starmap.SolarSystem) map[string]starmap.ID {
	res := make(map[string]starmap.ID, len(systems))
	for _, s := range systems {
		if id, ok := res[s.Name]; ok {
			if s.ID < id {
				res[s.Name] = s.ID
			}
			slog.Warn("Duplicate system name", "name", s.Name)
			continue
		}
		res[s.Name] = s.ID
	}
	return res
}

// Systems implements closure.Source.
func (d *Dataset) Systems(
	ctx context.Context,
	ids starmap.IDSet,
) ([]starmap.SolarSystem, error) {
	tbl, _ := d.caps.Table(schema.SolarSystemsTable)
	rows, err := d.rowsWhereIn(ctx, tbl, schema.FieldID, ids)
	if err != nil {
		return nil, err
	}
	return decodeSystems(tbl, rows), nil
}

// Regions implements closure.Source.
func (d *Dataset) Regions(
	ctx context.Context,
	ids starmap.IDSet,
) ([]starmap.Region, error) {
	tbl, ok := d.caps.Table(schema.RegionsTable)
	if !ok {
		return nil, nil
	}
	rows, err := d.rowsWhereIn(ctx, tbl, schema.FieldID, ids)
	if err != nil {
		return nil, err
	}
	res := make([]starmap.Region, len(rows))
	for i, r := range rows {
		res[i] = starmap.Region{
			ID:   id(tbl, r, schema.FieldID),
			Name: text(tbl, r, schema.FieldName),
			Row:  r,
		}
	}
	return res, nil
}

// Constellations implements closure.Source.
func (d *Dataset) Constellations(
	ctx context.Context,
	ids starmap.IDSet,
) ([]starmap.Constellation, error) {
	tbl, ok := d.caps.Table(schema.ConstellationsTable)
	if !ok {
		return nil, nil
	}
	rows, err := d.rowsWhereIn(ctx, tbl, schema.FieldID, ids)
	if err != nil {
		return nil, err
	}
	res := make([]starmap.Constellation, len(rows))
	for i, r := range rows {
		res[i] = starmap.Constellation{
			ID:       id(tbl, r, schema.FieldID),
			Name:     text(tbl, r, schema.FieldName),
			RegionID: id(tbl, r, schema.FieldRegionID),
			Row:      r,
		}
	}
	return res, nil
}

// Jumps implements closure.Source. Edges are fetched by their origin and
// filtered by destination.
func (d *Dataset) Jumps(
	ctx context.Context,
	systemIDs starmap.IDSet,
) ([]starmap.Jump, error) {
	tbl, _ := d.caps.Table(schema.JumpsTable)
	rows, err := d.rowsWhereIn(ctx, tbl, schema.FieldFrom, systemIDs)
	if err != nil {
		return nil, err
	}
	var res []starmap.Jump
	for _, j := range decodeJumps(tbl, rows) {
		if systemIDs.Has(j.To) {
			res = append(res, j)
		}
	}
	return res, nil
}

// Planets implements closure.Source.
func (d *Dataset) Planets(
	ctx context.Context,
	systemIDs starmap.IDSet,
) ([]starmap.Planet, error) {
	tbl, ok := d.caps.Table(schema.PlanetsTable)
	if !ok {
		return nil, nil
	}
	rows, err := d.rowsWhereIn(ctx, tbl, schema.FieldSystemID, systemIDs)
	if err != nil {
		return nil, err
	}
	res := make([]starmap.Planet, len(rows))
	for i, r := range rows {
		res[i] = starmap.Planet{
			ID:       id(tbl, r, schema.FieldID),
			SystemID: id(tbl, r, schema.FieldSystemID),
			Row:      r,
		}
	}
	return res, nil
}

// Moons implements closure.Source.
func (d *Dataset) Moons(
	ctx context.Context,
	planetIDs starmap.IDSet,
) ([]starmap.Moon, error) {
	tbl, ok := d.caps.Table(schema.MoonsTable)
	if !ok {
		return nil, nil
	}
	rows, err := d.rowsWhereIn(ctx, tbl, schema.FieldPlanetID, planetIDs)
	if err != nil {
		return nil, err
	}
	res := make([]starmap.Moon, len(rows))
	for i, r := range rows {
		res[i] = starmap.Moon{
			ID:       id(tbl, r, schema.FieldID),
			PlanetID: id(tbl, r, schema.FieldPlanetID),
			Row:      r,
		}
	}
	return res, nil
}

// Stations implements closure.Source.
func (d *Dataset) Stations(
	ctx context.Context,
	systemIDs starmap.IDSet,
) ([]starmap.Station, error) {
	tbl, ok := d.caps.Table(schema.NpcStationsTable)
	if !ok {
		return nil, nil
	}
	rows, err := d.rowsWhereIn(ctx, tbl, schema.FieldSystemID, systemIDs)
	if err != nil {
		return nil, err
	}
	res := make([]starmap.Station, len(rows))
	for i, r := range rows {
		res[i] = starmap.Station{
			ID:       id(tbl, r, schema.FieldID),
			SystemID: id(tbl, r, schema.FieldSystemID),
			Row:      r,
		}
	}
	return res, nil
}

func decodeSystems(tbl *schema.Table, rows []starmap.Row) []starmap.SolarSystem {
	hasPos := tbl.Has(schema.FieldX) && tbl.Has(schema.FieldY) && tbl.Has(schema.FieldZ)
	res := make([]starmap.SolarSystem, len(rows))
	for i, r := range rows {
		s := starmap.SolarSystem{
			ID:              id(tbl, r, schema.FieldID),
			Name:            text(tbl, r, schema.FieldName),
			RegionID:        id(tbl, r, schema.FieldRegionID),
			ConstellationID: id(tbl, r, schema.FieldConstellationID),
			StarTemperature: optFloat(tbl, r, schema.FieldStarTemperature),
			StarLuminosity:  optFloat(tbl, r, schema.FieldStarLuminosity),
			Row:             r,
		}
		if hasPos {
			x := optFloat(tbl, r, schema.FieldX)
			y := optFloat(tbl, r, schema.FieldY)
			z := optFloat(tbl, r, schema.FieldZ)
			if x != nil && y != nil && z != nil {
				s.Position = starmap.Position{X: *x, Y: *y, Z: *z}
				s.HasPosition = true
			}
		}
		res[i] = s
	}
	return res
}

func decodeJumps(tbl *schema.Table, rows []starmap.Row) []starmap.Jump {
	res := make([]starmap.Jump, len(rows))
	for i, r := range rows {
		res[i] = starmap.Jump{
			From: id(tbl, r, schema.FieldFrom),
			To:   id(tbl, r, schema.FieldTo),
			Row:  r,
		}
	}
	return res
}

func value(tbl *schema.Table, r starmap.Row, field string) any {
	i := tbl.Index(field)
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}

// id reads an integer key. Absent fields and NULL give 0.
func id(tbl *schema.Table, r starmap.Row, field string) starmap.ID {
	switch v := value(tbl, r, field).(type) {
	case int64:
		return starmap.ID(v)
	case float64:
		return starmap.ID(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return starmap.ID(n)
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return starmap.ID(n)
	default:
		return 0
	}
}

func text(tbl *schema.Table, r starmap.Row, field string) string {
	switch v := value(tbl, r, field).(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return strconv.FormatInt(int64(id(tbl, r, field)), 10)
	}
}

func optFloat(tbl *schema.Table, r starmap.Row, field string) *float64 {
	var f float64
	switch v := value(tbl, r, field).(type) {
	case float64:
		f = v
	case int64:
		f = float64(v)
	case string:
		var err error
		if f, err = strconv.ParseFloat(v, 64); err != nil {
			return nil
		}
	default:
		return nil
	}
	return &f
}
