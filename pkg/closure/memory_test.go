package closure_test

import (
	"context"
	"slices"

	"github.com/evefrontier/fixgen/pkg/schema"
	"github.com/evefrontier/fixgen/pkg/starmap"
)

// memory is a closure.Source over slices.
type memory struct {
	caps           *schema.Capabilities
	regions        []starmap.Region
	constellations []starmap.Constellation
	systems        []starmap.SolarSystem
	jumps          []starmap.Jump
	planets        []starmap.Planet
	moons          []starmap.Moon
	stations       []starmap.Station
	// extras holds rows of tables outside the starmap layout by name.
	extras         map[string][]starmap.Row
}

func (m *memory) Capabilities() *schema.Capabilities { return m.caps }

func (m *memory) Systems(_ context.Context, ids starmap.IDSet) ([]starmap.SolarSystem, error) {
	var res []starmap.SolarSystem
	for _, v := range m.systems {
		if ids.Has(v.ID) {
			res = append(res, v)
		}
	}
	return res, nil
}

func (m *memory) Regions(_ context.Context, ids starmap.IDSet) ([]starmap.Region, error) {
	var res []starmap.Region
	for _, v := range m.regions {
		if ids.Has(v.ID) {
			res = append(res, v)
		}
	}
	return res, nil
}

func (m *memory) Constellations(_ context.Context, ids starmap.IDSet) ([]starmap.Constellation, error) {
	var res []starmap.Constellation
	for _, v := range m.constellations {
		if ids.Has(v.ID) {
			res = append(res, v)
		}
	}
	return res, nil
}

func (m *memory) Jumps(_ context.Context, ids starmap.IDSet) ([]starmap.Jump, error) {
	var res []starmap.Jump
	for _, v := range m.jumps {
		if ids.Has(v.From) && ids.Has(v.To) {
			res = append(res, v)
		}
	}
	return res, nil
}

func (m *memory) Planets(_ context.Context, ids starmap.IDSet) ([]starmap.Planet, error) {
	var res []starmap.Planet
	for _, v := range m.planets {
		if ids.Has(v.SystemID) {
			res = append(res, v)
		}
	}
	return res, nil
}

func (m *memory) Moons(_ context.Context, ids starmap.IDSet) ([]starmap.Moon, error) {
	var res []starmap.Moon
	for _, v := range m.moons {
		if ids.Has(v.PlanetID) {
			res = append(res, v)
		}
	}
	return res, nil
}

func (m *memory) Stations(_ context.Context, ids starmap.IDSet) ([]starmap.Station, error) {
	var res []starmap.Station
	for _, v := range m.stations {
		if ids.Has(v.SystemID) {
			res = append(res, v)
		}
	}
	return res, nil
}

func (m *memory) Referenced(
	_ context.Context,
	tbl *schema.Table,
	column string,
	values []any,
) ([]starmap.Row, error) {
	i := tbl.ColumnIndex(column)
	var res []starmap.Row
	for _, row := range m.extras[tbl.Name] {
		if slices.Contains(values, row[i]) {
			res = append(res, row)
		}
	}
	return res, nil
}

func resolve(models ...schema.DDLGenerator) *schema.Capabilities {
	var catalog []schema.TableInfo
	for _, m := range models {
		catalog = append(catalog, schema.TableInfo{
			Name:    m.TableName(),
			Columns: schema.ColumnNames(m),
			DDL:     m.TableDDL(),
		})
	}
	caps, err := schema.Resolve(catalog)
	if err != nil {
		panic(err)
	}
	return caps
}

// galaxy has two regions (1, 2), three constellations (10, 11, 20) and
// systems 100..104. System 104 sits in region 2. Jumps form a ring
// 100-101-102-103 plus 103-104. Planets 1000..1003 belong to systems
// 100, 101, 103 and 104, each with one moon. System 102 has no planets
// but has a station.
func galaxy() *memory {
	m := &memory{
		caps: resolve(append(schema.ModernModels(), schema.NpcStation{})...),
		regions: []starmap.Region{
			{ID: 2, Name: "Far"}, {ID: 1, Name: "Near"},
		},
		constellations: []starmap.Constellation{
			{ID: 10, RegionID: 1}, {ID: 11, RegionID: 1}, {ID: 20, RegionID: 2},
		},
		systems: []starmap.SolarSystem{
			{ID: 104, Name: "E", RegionID: 2, ConstellationID: 20},
			{ID: 100, Name: "A", RegionID: 1, ConstellationID: 10},
			{ID: 101, Name: "B", RegionID: 1, ConstellationID: 10},
			{ID: 102, Name: "C", RegionID: 1, ConstellationID: 11},
			{ID: 103, Name: "D", RegionID: 1, ConstellationID: 11},
		},
		jumps: []starmap.Jump{
			{From: 100, To: 101}, {From: 101, To: 100},
			{From: 101, To: 102}, {From: 102, To: 103},
			{From: 103, To: 100}, {From: 103, To: 104},
		},
		planets: []starmap.Planet{
			{ID: 1003, SystemID: 104}, {ID: 1000, SystemID: 100},
			{ID: 1001, SystemID: 101}, {ID: 1002, SystemID: 103},
		},
		moons: []starmap.Moon{
			{ID: 5000, PlanetID: 1000}, {ID: 5001, PlanetID: 1001},
			{ID: 5002, PlanetID: 1002}, {ID: 5003, PlanetID: 1003},
		},
		stations: []starmap.Station{
			{ID: 9000, SystemID: 102},
		},
	}
	return m
}
