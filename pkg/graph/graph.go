// Package graph selects solar systems by gate adjacency and by distance.
package graph

import (
	"github.com/evefrontier/fixgen/pkg/starmap"
)

// Adjacent returns seeds together with every system one gate hop away.
// Edges are directed in the dataset but gates work both ways, so both
// endpoints of an edge touching a seed are included.
func Adjacent(seeds starmap.IDSet, edges []starmap.Jump) starmap.IDSet {
	res := seeds.Union()
	for _, e := range edges {
		if seeds.Has(e.From) {
			res.Add(e.To)
		}
		if seeds.Has(e.To) {
			res.Add(e.From)
		}
	}
	return res
}

// Expand applies Adjacent depth times. Depth 0 returns a copy of seeds.
func Expand(
	seeds starmap.IDSet,
	edges []starmap.Jump,
	depth int,
) starmap.IDSet {
	res := seeds.Union()
	for range depth {
		next := Adjacent(res, edges)
		if next.Len() == res.Len() {
			break
		}
		res = next
	}
	return res
}

// ResolveSeeds maps system names to IDs. Every name must resolve,
// otherwise the error lists all names that did not.
func ResolveSeeds(
	names []string,
	lookup func(string) (starmap.ID, bool),
) (starmap.IDSet, error) {
	res := starmap.NewIDSet()
	var missing []string
	for _, name := range names {
		id, ok := lookup(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		res.Add(id)
	}
	if len(missing) > 0 {
		return nil, SeedNotFoundError(missing)
	}
	return res, nil
}

// WithinRadius returns systems at most radiusLy light-years from origin.
// The bound is inclusive. Systems without a position are ignored.
func WithinRadius(
	origin starmap.Position,
	systems []starmap.SolarSystem,
	radiusLy float64,
) starmap.IDSet {
	res := starmap.NewIDSet()
	for _, s := range systems {
		if !s.HasPosition {
			continue
		}
		if starmap.Distance(origin, s.Position) <= radiusLy {
			res.Add(s.ID)
		}
	}
	return res
}
