package closure

import (
	"fmt"

	"github.com/evefrontier/fixgen/pkg/schema"
	"github.com/evefrontier/fixgen/pkg/starmap"
)

// Check verifies that every reference inside the result resolves inside
// the result. A failure means a bug or a source row with a dangling
// reference, the result must not be written.
func (r *Result) Check() error {
	systems := r.SystemIDs()
	var violations []string
	add := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	regions := starmap.NewIDSet()
	for _, v := range r.Regions {
		regions.Add(v.ID)
	}
	consts := starmap.NewIDSet()
	for _, v := range r.Constellations {
		consts.Add(v.ID)
		if r.checkRegions && v.RegionID != 0 && !regions.Has(v.RegionID) {
			add("constellation %d: region %d", v.ID, v.RegionID)
		}
	}

	for _, s := range r.Systems {
		if r.checkRegions && s.RegionID != 0 && !regions.Has(s.RegionID) {
			add("system %d: region %d", s.ID, s.RegionID)
		}
		if r.checkConstellations && s.ConstellationID != 0 &&
			!consts.Has(s.ConstellationID) {
			add("system %d: constellation %d", s.ID, s.ConstellationID)
		}
	}

	for _, j := range r.Jumps {
		if !systems.Has(j.From) || !systems.Has(j.To) {
			add("jump %d->%d: endpoint outside systems", j.From, j.To)
		}
	}

	planets := starmap.NewIDSet()
	for _, p := range r.Planets {
		planets.Add(p.ID)
		if !systems.Has(p.SystemID) {
			add("planet %d: system %d", p.ID, p.SystemID)
		}
	}
	for _, m := range r.Moons {
		if !planets.Has(m.PlanetID) {
			add("moon %d: planet %d", m.ID, m.PlanetID)
		}
	}
	for _, s := range r.Stations {
		if !systems.Has(s.SystemID) {
			add("station %d: system %d", s.ID, s.SystemID)
		}
	}

	violations = append(violations, r.checkDeclared()...)

	if len(violations) > 0 {
		return IntegrityError(violations)
	}
	return nil
}

// Equal reports whether two results hold the same keys. Source rows are
// not compared.
func (r *Result) Equal(o *Result) bool {
	if len(r.Jumps) != len(o.Jumps) {
		return false
	}
	for i := range r.Jumps {
		if r.Jumps[i].From != o.Jumps[i].From || r.Jumps[i].To != o.Jumps[i].To {
			return false
		}
	}
	for _, t := range schema.WriteOrder {
		if !equalKeys(r.keys(t), o.keys(t)) {
			return false
		}
	}
	if len(r.Extra) != len(o.Extra) {
		return false
	}
	for t, rows := range r.Extra {
		other, ok := o.Extra[t]
		if !ok || len(rows) != len(other) {
			return false
		}
		tbl, ok := r.caps.Lookup(t)
		if !ok {
			return false
		}
		idx := keyIndexes(tbl)
		for i := range rows {
			if rowKey(rows[i], idx) != rowKey(other[i], idx) {
				return false
			}
		}
	}
	return true
}

func (r *Result) keys(table string) []starmap.ID {
	var res []starmap.ID
	switch table {
	case schema.RegionsTable:
		for _, v := range r.Regions {
			res = append(res, v.ID)
		}
	case schema.ConstellationsTable:
		for _, v := range r.Constellations {
			res = append(res, v.ID)
		}
	case schema.SolarSystemsTable:
		for _, v := range r.Systems {
			res = append(res, v.ID)
		}
	case schema.PlanetsTable:
		for _, v := range r.Planets {
			res = append(res, v.ID)
		}
	case schema.MoonsTable:
		for _, v := range r.Moons {
			res = append(res, v.ID)
		}
	case schema.NpcStationsTable:
		for _, v := range r.Stations {
			res = append(res, v.ID)
		}
	}
	return res
}

func equalKeys(a, b []starmap.ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
