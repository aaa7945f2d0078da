package iotesting

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evefrontier/fixgen/pkg/schema"
	"github.com/evefrontier/fixgen/pkg/starmap"
	_ "modernc.org/sqlite"
)

// IDs of the test galaxy. Brana sits at the origin, Nod 500 ly away.
// Near is inside 80 ly of Brana without a gate to it, Far is two gate
// hops from Nod. The mapping to the Nod/Brana route fixture recipe
// (seeds, one hop, 80 ly around Brana) is:
//
//	included: Nod, NodGate, Brana, BranaGate, Near
//	excluded: Far
const (
	RegionInner starmap.ID = 10000001
	RegionOuter starmap.ID = 10000002

	ConstInnerA starmap.ID = 20000001
	ConstInnerB starmap.ID = 20000002
	ConstOuter  starmap.ID = 20000003

	Nod       starmap.ID = 30000001
	Brana     starmap.ID = 30000002
	NodGate   starmap.ID = 30000003
	BranaGate starmap.ID = 30000004
	Near      starmap.ID = 30000005
	Far       starmap.ID = 30000006

	PlanetNod   starmap.ID = 40000001
	PlanetFar   starmap.ID = 40000002
	PlanetBrana starmap.ID = 40000003

	MoonNod   starmap.ID = 50000001
	MoonFar   starmap.ID = 50000002
	MoonBrana starmap.ID = 50000003

	StationNear starmap.ID = 60000001

	FactionOuter  = 500001
	FactionInner  = 500002
	FactionUnused = 500003
)

type sysRow struct {
	id, region, constellation starmap.ID
	name                      string
	x, y, z                   float64
}

var (
	ly = starmap.LightYearMeters

	systemRows = []sysRow{
		{Nod, RegionOuter, ConstOuter, "Nod", 500 * ly, 0, 0},
		{Brana, RegionInner, ConstInnerA, "Brana", 0, 0, 0},
		{NodGate, RegionOuter, ConstOuter, "Nod Gate", 510 * ly, 0, 0},
		{BranaGate, RegionInner, ConstInnerB, "Brana Gate", 0, 120 * ly, 0},
		{Near, RegionInner, ConstInnerA, "Near", 0, 0, 60 * ly},
		{Far, RegionOuter, ConstOuter, "Far", 300 * ly, 0, 0},
	}

	jumpRows = [][2]starmap.ID{
		{Nod, NodGate}, {NodGate, Nod},
		{Brana, BranaGate}, {BranaGate, Brana},
		{NodGate, Far}, {Far, NodGate},
		{Near, Far},
	}
)

// DatasetOption changes what a test dataset contains.
type DatasetOption func(*datasetOpts)

type datasetOpts struct {
	stations bool
	noCoords bool
	factions bool
}

// WithStations adds the optional NpcStations table.
func WithStations() DatasetOption {
	return func(o *datasetOpts) { o.stations = true }
}

// WithoutCoordinates drops coordinate columns from SolarSystems.
func WithoutCoordinates() DatasetOption {
	return func(o *datasetOpts) { o.noCoords = true }
}

// WithFactions adds tables outside the starmap layout. Regions gain a
// factionId referencing Factions, Observatories is referenced by
// nothing.
func WithFactions() DatasetOption {
	return func(o *datasetOpts) { o.factions = true }
}

const regionsWithFactions = `CREATE TABLE Regions (
    regionId INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    factionId INTEGER REFERENCES Factions(factionId)
)`

// ModernDataset writes the test galaxy in the modern layout to
// dir/static_data.db and returns its path.
func ModernDataset(t *testing.T, dir string, opts ...DatasetOption) string {
	t.Helper()
	var o datasetOpts
	for _, opt := range opts {
		opt(&o)
	}

	path := filepath.Join(dir, "static_data.db")
	db := openDB(t, path)
	defer db.Close()

	models := schema.ModernModels()
	if o.stations {
		models = append(models, schema.NpcStation{})
	}
	for _, m := range models {
		ddl := m.TableDDL()
		if o.noCoords && m.TableName() == schema.SolarSystemsTable {
			ddl = stripCoordinates(ddl)
		}
		if o.factions && m.TableName() == schema.RegionsTable {
			ddl = regionsWithFactions
		}
		exec(t, db, ddl)
	}

	if o.factions {
		exec(t, db, `CREATE TABLE Factions (
		factionId INTEGER PRIMARY KEY, name TEXT NOT NULL)`)
		exec(t, db, `CREATE TABLE Observatories (
		observatoryId INTEGER PRIMARY KEY, note TEXT)`)
		exec(t, db, `INSERT INTO Factions (factionId, name)
		VALUES (?, 'Outer Faction'), (?, 'Inner Faction'), (?, 'Unused Faction')`,
			FactionOuter, FactionInner, FactionUnused)
		exec(t, db, `INSERT INTO Observatories (observatoryId, note) VALUES (1, 'hidden')`)
		exec(t, db, `INSERT INTO Regions (regionId, name, factionId)
		VALUES (?, 'Inner', ?), (?, 'Outer', ?)`,
			RegionInner, FactionInner, RegionOuter, FactionOuter)
	} else {
		exec(t, db, `INSERT INTO Regions (regionId, name) VALUES (?, 'Inner'), (?, 'Outer')`,
			RegionInner, RegionOuter)
	}
	exec(t, db, `INSERT INTO Constellations (constellationId, name, regionId)
	VALUES (?, 'Inner A', ?), (?, 'Inner B', ?), (?, 'Outer', ?)`,
		ConstInnerA, RegionInner, ConstInnerB, RegionInner, ConstOuter, RegionOuter)

	for _, s := range systemRows {
		if o.noCoords {
			exec(t, db, `INSERT INTO SolarSystems
			(solarSystemId, name, regionId, constellationId, star_temperature, star_luminosity)
			VALUES (?, ?, ?, ?, NULL, NULL)`,
				s.id, s.name, s.region, s.constellation)
			continue
		}
		exec(t, db, `INSERT INTO SolarSystems
		(solarSystemId, name, regionId, constellationId, centerX, centerY, centerZ,
		 star_temperature, star_luminosity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
			s.id, s.name, s.region, s.constellation, s.x, s.y, s.z, 5800.5)
	}

	for _, j := range jumpRows {
		exec(t, db, `INSERT INTO Jumps (fromSystemId, toSystemId) VALUES (?, ?)`, j[0], j[1])
	}

	exec(t, db, `INSERT INTO Planets (planetId, solarSystemId, name, celestialIndex, radius)
	VALUES (?, ?, 'Nod I', 1, 1.5e6), (?, ?, 'Far I', 1, 2.5e6), (?, ?, 'Brana I', 1, 3.5e6)`,
		PlanetNod, Nod, PlanetFar, Far, PlanetBrana, Brana)
	// Moon of Far claims Nod as its system, it must still follow its planet.
	exec(t, db, `INSERT INTO Moons (moonId, planetId, name, solarSystemId)
	VALUES (?, ?, 'Nod I-a', ?), (?, ?, 'Far I-a', ?), (?, ?, 'Brana I-a', ?)`,
		MoonNod, PlanetNod, Nod, MoonFar, PlanetFar, Nod, MoonBrana, PlanetBrana, Brana)

	if o.stations {
		exec(t, db, `INSERT INTO NpcStations (stationId, solarSystemId, name)
		VALUES (?, ?, 'Near Outpost')`, StationNear, Near)
	}
	return path
}

// LegacyDataset writes three systems in the legacy layout to
// dir/legacy.db: Alpha(1) - Beta(2) - Gamma(3).
func LegacyDataset(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "legacy.db")
	db := openDB(t, path)
	defer db.Close()

	for _, m := range schema.LegacyModels() {
		exec(t, db, m.TableDDL())
	}
	exec(t, db, `INSERT INTO mapSolarSystems (solarSystemID, solarSystemName)
	VALUES (1, 'Alpha'), (2, 'Beta'), (3, 'Gamma')`)
	exec(t, db, `INSERT INTO mapSolarSystemJumps (fromSolarSystemID, toSolarSystemID)
	VALUES (1, 2), (2, 3)`)
	return path
}

// RawDataset creates dir/name from DDL statements, for schemas the
// helpers above do not cover.
func RawDataset(t *testing.T, dir, name string, stmts ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	db := openDB(t, path)
	defer db.Close()
	for _, s := range stmts {
		exec(t, db, s)
	}
	return path
}

// Exec runs statements against an existing SQLite file.
func Exec(t *testing.T, path string, stmts ...string) {
	t.Helper()
	db := openDB(t, path)
	defer db.Close()
	for _, s := range stmts {
		exec(t, db, s)
	}
}

func openDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	db.SetMaxOpenConns(1)
	return db
}

func exec(t *testing.T, db *sql.DB, q string, args ...any) {
	t.Helper()
	for i, a := range args {
		if id, ok := a.(starmap.ID); ok {
			args[i] = int64(id)
		}
	}
	if _, err := db.Exec(q, args...); err != nil {
		t.Fatalf("Failed to execute %q: %v", q, err)
	}
}

func stripCoordinates(ddl string) string {
	var lines []string
	for _, l := range strings.Split(ddl, "\n") {
		if strings.Contains(l, "centerX") || strings.Contains(l, "centerY") ||
			strings.Contains(l, "centerZ") {
			continue
		}
		lines = append(lines, l)
	}
	return strings.Join(lines, "\n")
}

// CountRows returns COUNT(*) of a table in an SQLite file.
func CountRows(t *testing.T, path, table string) int64 {
	t.Helper()
	db := openDB(t, path)
	defer db.Close()
	var res int64
	q := fmt.Sprintf("SELECT COUNT(*) FROM %q", table)
	if err := db.QueryRow(q).Scan(&res); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return res
}

// ForeignKeyViolations returns the number of rows PRAGMA
// foreign_key_check reports for an SQLite file.
func ForeignKeyViolations(t *testing.T, path string) int {
	t.Helper()
	db := openDB(t, path)
	defer db.Close()
	rows, err := db.Query("PRAGMA foreign_key_check")
	if err != nil {
		t.Fatalf("Failed to check foreign keys of %s: %v", path, err)
	}
	defer rows.Close()
	var res int
	for rows.Next() {
		res++
	}
	if err = rows.Err(); err != nil {
		t.Fatalf("Failed to check foreign keys of %s: %v", path, err)
	}
	return res
}
