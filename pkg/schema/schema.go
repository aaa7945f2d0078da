package schema

import "errors"

// Logical table names. In the modern layout they are also the physical
// names.
const (
	RegionsTable        = "Regions"
	ConstellationsTable = "Constellations"
	SolarSystemsTable   = "SolarSystems"
	JumpsTable          = "Jumps"
	PlanetsTable        = "Planets"
	MoonsTable          = "Moons"
	NpcStationsTable    = "NpcStations"
)

// Logical field names used with Table.Column and Table.Index.
const (
	FieldID              = "id"
	FieldName            = "name"
	FieldRegionID        = "regionId"
	FieldConstellationID = "constellationId"
	FieldSystemID        = "solarSystemId"
	FieldPlanetID        = "planetId"
	FieldFrom            = "fromSystemId"
	FieldTo              = "toSystemId"
	FieldX               = "x"
	FieldY               = "y"
	FieldZ               = "z"
	FieldStarTemperature = "star_temperature"
	FieldStarLuminosity  = "star_luminosity"
)

// WriteOrder is the order in which tables are created and filled, so
// that every foreign key points to rows that already exist.
var WriteOrder = []string{
	RegionsTable,
	ConstellationsTable,
	SolarSystemsTable,
	JumpsTable,
	PlanetsTable,
	MoonsTable,
	NpcStationsTable,
}

// FingerprintTables are counted in a fixture manifest.
var FingerprintTables = []string{
	RegionsTable,
	ConstellationsTable,
	SolarSystemsTable,
	JumpsTable,
	PlanetsTable,
	MoonsTable,
}

// ErrUnsupported is returned by Resolve when a database has neither the
// modern nor the legacy layout.
var ErrUnsupported = errors.New("unsupported starmap schema")

// Variant tells which layout a dataset uses.
type Variant int

const (
	// Modern uses SolarSystems/Jumps with camel case identifiers.
	Modern Variant = iota
	// Legacy uses mapSolarSystems/mapSolarSystemJumps.
	Legacy
)

func (v Variant) String() string {
	switch v {
	case Modern:
		return "modern"
	case Legacy:
		return "legacy"
	default:
		return "unknown"
	}
}
