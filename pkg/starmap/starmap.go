// Package starmap holds the entities of the static starmap dataset and the
// pure helpers shared by selection, closure and materialization code.
//
// Every entity keeps the typed fields the extraction engine needs (its key
// and foreign keys) together with Row, the complete source row in the
// column order of its table. The key fields are used to decide what goes
// into a fixture, Row is what gets written.
package starmap

// ID is the numeric identifier used by every starmap table.
type ID int64

// Row is a full source row, values in the column order of the table they
// were read from.
type Row []any

// Position is a solar system location in the dataset's native units
// (meters).
type Position struct {
	X float64
	Y float64
	Z float64
}

// Region is the root of the containment hierarchy.
type Region struct {
	ID   ID
	Name string
	Row  Row
}

// Constellation belongs to exactly one Region.
type Constellation struct {
	ID       ID
	Name     string
	RegionID ID
	Row      Row
}

// SolarSystem is a node of the gate graph. RegionID and ConstellationID are
// zero when the source has no such columns (legacy layout).
type SolarSystem struct {
	ID              ID
	Name            string
	RegionID        ID
	ConstellationID ID

	// Position is meaningful only when HasPosition is true.
	Position    Position
	HasPosition bool

	// StarTemperature and StarLuminosity are nil when the source lacks the
	// columns or stores NULL.
	StarTemperature *float64
	StarLuminosity  *float64

	Row Row
}

// Jump is a directed gate edge. Physical gates are traversable in both
// directions, so selection code treats the relation as undirected.
type Jump struct {
	From ID
	To   ID
	Row  Row
}

// Planet belongs to one SolarSystem.
type Planet struct {
	ID       ID
	SystemID ID
	Row      Row
}

// Moon belongs to one Planet. The schema relates moons to planets only.
type Moon struct {
	ID       ID
	PlanetID ID
	Row      Row
}

// Station is a row of an optional station-like table keyed by system.
type Station struct {
	ID       ID
	SystemID ID
	Row      Row
}
