// Package schema describes the starmap tables fixgen reads and writes.
//
// A source dataset comes in one of two layouts (see Variant). Resolve
// turns the tables and columns a database reports into Capabilities,
// a descriptor that maps every logical field to its physical column or
// marks it absent. All other components read rows through this
// descriptor and never guess column names themselves.
//
// The models in this file are the canonical modern layout. They are
// used to create throwaway datasets in tests; real fixtures copy DDL
// from their source instead.
package schema

// DDLGenerator defines how Go models generate SQLite DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// TableName returns the SQLite table name for this model.
	TableName() string
}

// Region is the top level of the starmap hierarchy.
type Region struct {
	ID   int64  `db:"regionId" ddl:"INTEGER PRIMARY KEY"`
	Name string `db:"name"     ddl:"TEXT NOT NULL"`
}

// Constellation groups solar systems inside a region.
type Constellation struct {
	ID       int64  `db:"constellationId" ddl:"INTEGER PRIMARY KEY"`
	Name     string `db:"name"            ddl:"TEXT NOT NULL"`
	RegionID int64  `db:"regionId"        ddl:"INTEGER NOT NULL REFERENCES Regions(regionId)"`
}

// SolarSystem is a node of the gate graph. Coordinates are in meters.
type SolarSystem struct {
	ID              int64    `db:"solarSystemId"    ddl:"INTEGER PRIMARY KEY"`
	Name            string   `db:"name"             ddl:"TEXT NOT NULL"`
	RegionID        int64    `db:"regionId"         ddl:"INTEGER NOT NULL REFERENCES Regions(regionId)"`
	ConstellationID int64    `db:"constellationId"  ddl:"INTEGER NOT NULL REFERENCES Constellations(constellationId)"`
	CenterX         float64  `db:"centerX"          ddl:"REAL NOT NULL"`
	CenterY         float64  `db:"centerY"          ddl:"REAL NOT NULL"`
	CenterZ         float64  `db:"centerZ"          ddl:"REAL NOT NULL"`
	StarTemperature *float64 `db:"star_temperature" ddl:"REAL"`
	StarLuminosity  *float64 `db:"star_luminosity"  ddl:"REAL"`
}

// Jump is a directed gate edge. Gates are traversable both ways, the
// dataset usually stores both directions.
type Jump struct {
	From int64 `db:"fromSystemId" ddl:"INTEGER NOT NULL REFERENCES SolarSystems(solarSystemId)"`
	To   int64 `db:"toSystemId"   ddl:"INTEGER NOT NULL REFERENCES SolarSystems(solarSystemId)"`
}

// Planet orbits a solar system.
type Planet struct {
	ID             int64   `db:"planetId"       ddl:"INTEGER PRIMARY KEY"`
	SystemID       int64   `db:"solarSystemId"  ddl:"INTEGER NOT NULL REFERENCES SolarSystems(solarSystemId)"`
	Name           string  `db:"name"           ddl:"TEXT"`
	CelestialIndex int     `db:"celestialIndex" ddl:"INTEGER"`
	Radius         float64 `db:"radius"         ddl:"REAL"`
}

// Moon orbits a planet. It also carries solarSystemId, but fixtures
// select moons through their planet only.
type Moon struct {
	ID       int64  `db:"moonId"        ddl:"INTEGER PRIMARY KEY"`
	PlanetID int64  `db:"planetId"      ddl:"INTEGER NOT NULL REFERENCES Planets(planetId)"`
	Name     string `db:"name"          ddl:"TEXT"`
	SystemID int64  `db:"solarSystemId" ddl:"INTEGER"`
}

// NpcStation is an optional table present in some releases.
type NpcStation struct {
	ID       int64  `db:"stationId"     ddl:"INTEGER PRIMARY KEY"`
	SystemID int64  `db:"solarSystemId" ddl:"INTEGER NOT NULL REFERENCES SolarSystems(solarSystemId)"`
	Name     string `db:"name"          ddl:"TEXT"`
}

// LegacySystem is a solar system of the older map export.
type LegacySystem struct {
	ID   int64  `db:"solarSystemID"   ddl:"INTEGER PRIMARY KEY"`
	Name string `db:"solarSystemName" ddl:"TEXT NOT NULL"`
}

// LegacyJump is a gate edge of the older map export.
type LegacyJump struct {
	From int64 `db:"fromSolarSystemID" ddl:"INTEGER NOT NULL"`
	To   int64 `db:"toSolarSystemID"   ddl:"INTEGER NOT NULL"`
}
