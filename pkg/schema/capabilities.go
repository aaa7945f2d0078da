package schema

import (
	"fmt"
	"slices"
	"strings"
)

// TableInfo is what a database reports about one of its tables.
type TableInfo struct {
	Name       string
	Columns    []string
	DDL        string
	PrimaryKey []string
	// ForeignKeys are single column references declared in DDL.
	ForeignKeys []ForeignKey
}

// ForeignKey is a declared reference from Column to RefColumn of
// RefTable. RefColumn is empty when the reference targets the primary
// key implicitly.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Table describes how a logical table is stored in a concrete database.
type Table struct {
	// Name is the logical name, one of the *Table constants.
	Name string
	// Physical is the table name in the database.
	Physical string
	// Columns are the physical columns in declaration order.
	Columns []string
	// DDL is the CREATE TABLE statement reported by the database.
	DDL        string
	PrimaryKey []string
	// ForeignKeys are references declared in DDL, enforced when the
	// fixture is written.
	ForeignKeys []ForeignKey

	fields map[string]string
}

// ColumnIndex returns the position of a physical column, matched
// case-insensitively, or -1.
func (t *Table) ColumnIndex(col string) int {
	return slices.IndexFunc(t.Columns, func(c string) bool {
		return strings.EqualFold(c, col)
	})
}

// RefColumn returns the physical column of t a foreign key points to.
// An implicit reference resolves to a single column primary key, an
// empty string means the target cannot be resolved.
func (t *Table) RefColumn(fk ForeignKey) string {
	if fk.RefColumn == "" {
		if len(t.PrimaryKey) == 1 {
			return t.PrimaryKey[0]
		}
		return ""
	}
	if i := t.ColumnIndex(fk.RefColumn); i >= 0 {
		return t.Columns[i]
	}
	return ""
}

// Column returns the physical column of a logical field. The second
// value is false when the source does not carry the field.
func (t *Table) Column(field string) (string, bool) {
	col, ok := t.fields[field]
	return col, ok
}

// Has reports whether the logical field is present.
func (t *Table) Has(field string) bool {
	_, ok := t.fields[field]
	return ok
}

// Index returns the position of a logical field in Columns, or -1.
func (t *Table) Index(field string) int {
	col, ok := t.fields[field]
	if !ok {
		return -1
	}
	return slices.Index(t.Columns, col)
}

// Capabilities is resolved once per run and tells every component which
// tables and fields a dataset has.
type Capabilities struct {
	Variant Variant
	// Notes lists tolerated deviations, like partial coordinates or
	// optional tables without required columns.
	Notes []string

	tables map[string]*Table
	// extras are source tables outside the starmap layout, by name. They
	// are copied into fixtures, filled only with rows other fixture rows
	// reference.
	extras []*Table
}

// Table returns a present table by logical name.
func (c *Capabilities) Table(name string) (*Table, bool) {
	t, ok := c.tables[name]
	return t, ok
}

// HasTable reports whether a logical table is present.
func (c *Capabilities) HasTable(name string) bool {
	_, ok := c.tables[name]
	return ok
}

// Extras returns tables outside the starmap layout sorted by name.
func (c *Capabilities) Extras() []*Table {
	return c.extras
}

// Lookup finds a table of the definition by its physical name,
// case-insensitively.
func (c *Capabilities) Lookup(physical string) (*Table, bool) {
	for _, t := range c.Definition().Tables {
		if strings.EqualFold(t.Physical, physical) {
			return t, true
		}
	}
	return nil, false
}

// HasPositions reports whether solar systems carry full coordinates.
func (c *Capabilities) HasPositions() bool {
	t, ok := c.tables[SolarSystemsTable]
	return ok && t.Has(FieldX) && t.Has(FieldY) && t.Has(FieldZ)
}

// Definition returns the present tables in WriteOrder followed by the
// extra tables. A fixture built from these tables has the same shape as
// its source.
func (c *Capabilities) Definition() Definition {
	var res Definition
	for _, name := range WriteOrder {
		if t, ok := c.tables[name]; ok {
			res.Tables = append(res.Tables, t)
		}
	}
	res.Tables = append(res.Tables, c.extras...)
	return res
}

// Definition is the ordered list of tables a fixture is made of.
type Definition struct {
	Tables []*Table
}

// Names returns logical names of the tables.
func (d Definition) Names() []string {
	res := make([]string, len(d.Tables))
	for i, t := range d.Tables {
		res[i] = t.Name
	}
	return res
}

type fieldSpec struct {
	name     string
	aliases  []string
	required bool
}

type tableSpec struct {
	name string
	// modern and legacy are candidate physical names per variant.
	modern []string
	legacy []string
	fields []fieldSpec
	// coords are alternative coordinate column triples.
	coords [][3]string
}

var specs = []tableSpec{
	{
		name:   RegionsTable,
		modern: []string{RegionsTable},
		legacy: []string{RegionsTable},
		fields: []fieldSpec{
			{FieldID, []string{"regionId"}, true},
			{FieldName, []string{"name", "regionName"}, false},
		},
	},
	{
		name:   ConstellationsTable,
		modern: []string{ConstellationsTable},
		legacy: []string{ConstellationsTable},
		fields: []fieldSpec{
			{FieldID, []string{"constellationId"}, true},
			{FieldName, []string{"name", "constellationName"}, false},
			{FieldRegionID, []string{"regionId"}, false},
		},
	},
	{
		name:   SolarSystemsTable,
		modern: []string{SolarSystemsTable},
		legacy: []string{"mapSolarSystems"},
		fields: []fieldSpec{
			{FieldID, []string{"solarSystemId"}, true},
			{FieldName, []string{"name", "solarSystemName"}, true},
			{FieldRegionID, []string{"regionId"}, false},
			{FieldConstellationID, []string{"constellationId"}, false},
			{FieldStarTemperature, []string{"star_temperature", "starTemperature"}, false},
			{FieldStarLuminosity, []string{"star_luminosity", "starLuminosity"}, false},
		},
		coords: [][3]string{
			{"centerX", "centerY", "centerZ"},
			{"x", "y", "z"},
		},
	},
	{
		name:   JumpsTable,
		modern: []string{JumpsTable},
		legacy: []string{"mapSolarSystemJumps"},
		fields: []fieldSpec{
			{FieldFrom, []string{"fromSystemId", "fromSolarSystemId"}, true},
			{FieldTo, []string{"toSystemId", "toSolarSystemId"}, true},
		},
	},
	{
		name:   PlanetsTable,
		modern: []string{PlanetsTable},
		legacy: []string{PlanetsTable},
		fields: []fieldSpec{
			{FieldID, []string{"planetId"}, true},
			{FieldSystemID, []string{"solarSystemId"}, true},
		},
	},
	{
		name:   MoonsTable,
		modern: []string{MoonsTable},
		legacy: []string{MoonsTable},
		fields: []fieldSpec{
			{FieldID, []string{"moonId"}, true},
			{FieldPlanetID, []string{"planetId"}, true},
		},
	},
	{
		name:   NpcStationsTable,
		modern: []string{NpcStationsTable},
		legacy: []string{NpcStationsTable},
		fields: []fieldSpec{
			{FieldID, []string{"stationId", "npcStationId", "id"}, true},
			{FieldSystemID, []string{"solarSystemId"}, true},
		},
	},
}

// Resolve builds Capabilities from the tables a database reports.
// Table and column names are matched case-insensitively. The modern
// layout wins when both are present. ErrUnsupported is returned when
// neither layout has its solar system and jump tables with their
// required columns.
func Resolve(catalog []TableInfo) (*Capabilities, error) {
	byName := make(map[string]TableInfo, len(catalog))
	for _, ti := range catalog {
		byName[strings.ToLower(ti.Name)] = ti
	}

	var problems []string
	for _, v := range []Variant{Modern, Legacy} {
		caps, probs := resolveVariant(v, byName)
		if caps != nil {
			return caps, nil
		}
		problems = append(problems, probs...)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupported, strings.Join(problems, "; "))
}

func resolveVariant(
	v Variant,
	byName map[string]TableInfo,
) (*Capabilities, []string) {
	res := &Capabilities{Variant: v, tables: make(map[string]*Table)}
	var problems []string
	claimed := make(map[string]bool)

	for _, spec := range specs {
		candidates := spec.modern
		if v == Legacy {
			candidates = spec.legacy
		}
		ti, ok := lookup(byName, candidates)
		core := spec.name == SolarSystemsTable || spec.name == JumpsTable
		if !ok {
			if core {
				problems = append(problems,
					fmt.Sprintf("%s layout has no table %s", v, candidates[0]))
			}
			continue
		}

		tbl, missing := matchTable(spec, ti)
		if len(missing) > 0 {
			msg := fmt.Sprintf("table %s misses columns %s",
				ti.Name, strings.Join(missing, ", "))
			if core {
				problems = append(problems, msg)
			} else {
				res.Notes = append(res.Notes, msg+", copied without selection")
			}
			continue
		}
		if len(spec.coords) > 0 && !tbl.Has(FieldX) {
			res.Notes = append(res.Notes,
				fmt.Sprintf("table %s has no complete coordinates", ti.Name))
		}
		res.tables[spec.name] = tbl
		claimed[strings.ToLower(ti.Name)] = true
	}

	if len(problems) > 0 {
		return nil, problems
	}

	for key, ti := range byName {
		if claimed[key] {
			continue
		}
		if shadowsLogical(res.tables, ti.Name) {
			res.Notes = append(res.Notes,
				fmt.Sprintf("table %s is not part of the %s layout, not copied", ti.Name, v))
			continue
		}
		res.extras = append(res.extras, &Table{
			Name:        ti.Name,
			Physical:    ti.Name,
			Columns:     ti.Columns,
			DDL:         ti.DDL,
			PrimaryKey:  ti.PrimaryKey,
			ForeignKeys: ti.ForeignKeys,
		})
	}
	slices.SortFunc(res.extras, func(a, b *Table) int {
		return strings.Compare(a.Name, b.Name)
	})
	return res, nil
}

// shadowsLogical reports whether name matches a logical name of a
// resolved table stored under another physical name.
func shadowsLogical(tables map[string]*Table, name string) bool {
	for logical := range tables {
		if strings.EqualFold(logical, name) {
			return true
		}
	}
	return false
}

func lookup(byName map[string]TableInfo, candidates []string) (TableInfo, bool) {
	for _, c := range candidates {
		if ti, ok := byName[strings.ToLower(c)]; ok {
			return ti, true
		}
	}
	return TableInfo{}, false
}

func matchTable(spec tableSpec, ti TableInfo) (*Table, []string) {
	cols := make(map[string]string, len(ti.Columns))
	for _, c := range ti.Columns {
		cols[strings.ToLower(c)] = c
	}
	find := func(aliases []string) (string, bool) {
		for _, a := range aliases {
			if c, ok := cols[strings.ToLower(a)]; ok {
				return c, true
			}
		}
		return "", false
	}

	tbl := &Table{
		Name:        spec.name,
		Physical:    ti.Name,
		Columns:     ti.Columns,
		DDL:         ti.DDL,
		PrimaryKey:  ti.PrimaryKey,
		ForeignKeys: ti.ForeignKeys,
		fields:      make(map[string]string),
	}
	var missing []string
	for _, f := range spec.fields {
		if c, ok := find(f.aliases); ok {
			tbl.fields[f.name] = c
			continue
		}
		if f.required {
			missing = append(missing, f.aliases[0])
		}
	}

	for _, triple := range spec.coords {
		x, okX := find([]string{triple[0]})
		y, okY := find([]string{triple[1]})
		z, okZ := find([]string{triple[2]})
		if okX && okY && okZ {
			tbl.fields[FieldX] = x
			tbl.fields[FieldY] = y
			tbl.fields[FieldZ] = z
			break
		}
	}
	return tbl, missing
}
