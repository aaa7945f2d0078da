// Package corridor finds the solar systems shared by many discovered
// routes. A fixture built from such a corridor can replay every route
// whose path lies entirely inside it.
package corridor

import (
	"cmp"
	"slices"

	"github.com/evefrontier/fixgen/pkg/starmap"
)

// Hop is one system of a discovered path.
type Hop struct {
	ID   starmap.ID `json:"Id"`
	Name string     `json:"Name"`
}

// Route is a record of the route corpus.
type Route struct {
	ID            int64
	StartID       starmap.ID
	EndID         starmap.ID
	AvoidGates    bool
	MaxLightyears float64
	Path          []Hop
}

// Result of a corridor analysis for one threshold.
type Result struct {
	Threshold int
	// Routes is the size of the analyzed corpus.
	Routes int
	// Counts holds how many times each system appears in all paths.
	// A system visited twice by one route counts twice.
	Counts map[starmap.ID]int
	// Names are taken from the paths.
	Names map[starmap.ID]string
	// Corridor are systems with Counts >= Threshold.
	Corridor starmap.IDSet
	// Covered are routes whose every hop is in Corridor, in corpus order.
	Covered []Route
	// CoveragePct is the share of covered routes, 0 for an empty corpus.
	CoveragePct float64
}

// Hub is a frequently visited system.
type Hub struct {
	ID    starmap.ID
	Name  string
	Count int
}

// Analyze counts path occurrences and selects the corridor for a
// threshold. Raising the threshold never grows the corridor or the
// covered route list.
func Analyze(routes []Route, threshold int) *Result {
	res := &Result{
		Threshold: threshold,
		Routes:    len(routes),
		Counts:    make(map[starmap.ID]int),
		Names:     make(map[starmap.ID]string),
		Corridor:  starmap.NewIDSet(),
	}

	for _, r := range routes {
		for _, h := range r.Path {
			res.Counts[h.ID]++
			if _, ok := res.Names[h.ID]; !ok {
				res.Names[h.ID] = h.Name
			}
		}
	}

	for id, count := range res.Counts {
		if count >= threshold {
			res.Corridor.Add(id)
		}
	}

	for _, r := range routes {
		if covered(r, res.Corridor) {
			res.Covered = append(res.Covered, r)
		}
	}

	res.CoveragePct = res.Pct(len(res.Covered))
	return res
}

// CoveredWithin returns covered routes whose every hop is also in
// systems. A fixture built from the corridor can replay only these when
// some corridor systems are missing from the dataset.
func (r *Result) CoveredWithin(systems starmap.IDSet) []Route {
	var res []Route
	for _, route := range r.Covered {
		if covered(route, systems) {
			res = append(res, route)
		}
	}
	return res
}

// Pct returns n routes as a percentage of the corpus, 0 for an empty
// corpus.
func (r *Result) Pct(n int) float64 {
	if r.Routes == 0 {
		return 0
	}
	return 100 * float64(n) / float64(r.Routes)
}

func covered(r Route, corridor starmap.IDSet) bool {
	for _, h := range r.Path {
		if !corridor.Has(h.ID) {
			return false
		}
	}
	return true
}

// Unique returns the number of distinct systems in the corpus.
func (r *Result) Unique() int {
	return len(r.Counts)
}

// Top returns up to n most visited systems. Ties are broken by
// ascending ID so the order is stable.
func (r *Result) Top(n int) []Hub {
	res := make([]Hub, 0, len(r.Counts))
	for id, count := range r.Counts {
		res = append(res, Hub{ID: id, Name: r.Names[id], Count: count})
	}
	slices.SortFunc(res, func(a, b Hub) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if n >= 0 && n < len(res) {
		res = res[:n]
	}
	return res
}

// Point is one row of a threshold sweep.
type Point struct {
	Threshold   int
	Systems     int
	Covered     int
	CoveragePct float64
}

// Sweep analyzes thresholds 1..maxThreshold and shows how corridor size
// trades against route coverage.
func Sweep(routes []Route, maxThreshold int) []Point {
	res := make([]Point, 0, maxThreshold)
	for th := 1; th <= maxThreshold; th++ {
		a := Analyze(routes, th)
		res = append(res, Point{
			Threshold:   th,
			Systems:     a.Corridor.Len(),
			Covered:     len(a.Covered),
			CoveragePct: a.CoveragePct,
		})
	}
	return res
}
