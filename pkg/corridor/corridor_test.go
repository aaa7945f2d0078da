package corridor_test

import (
	"bytes"
	"testing"

	"github.com/evefrontier/fixgen/pkg/corridor"
	"github.com/evefrontier/fixgen/pkg/starmap"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alpha   = corridor.Hop{ID: 1, Name: "Alpha"}
	bravo   = corridor.Hop{ID: 2, Name: "Bravo"}
	charlie = corridor.Hop{ID: 3, Name: "Charlie"}
	xray    = corridor.Hop{ID: 9, Name: "Xray"}
)

// corpus has Xray in exactly 3 routes, Alpha and Charlie in 4, Bravo in 6.
func corpus() []corridor.Route {
	paths := [][]corridor.Hop{
		{alpha, bravo, charlie},
		{alpha, bravo},
		{bravo, charlie},
		{alpha, charlie, bravo},
		{alpha, xray, bravo},
		{xray, charlie},
		{bravo, xray},
	}
	res := make([]corridor.Route, len(paths))
	for i, p := range paths {
		res[i] = corridor.Route{
			ID:      int64(i + 1),
			StartID: p[0].ID,
			EndID:   p[len(p)-1].ID,
			Path:    p,
		}
	}
	return res
}

func TestAnalyzeThresholdFour(t *testing.T) {
	res := corridor.Analyze(corpus(), 4)

	assert.Equal(t, 7, res.Routes)
	assert.Equal(t, 4, res.Unique())
	assert.Equal(t, 3, res.Counts[xray.ID])
	assert.Equal(t, []starmap.ID{1, 2, 3}, res.Corridor.Sorted())
	assert.False(t, res.Corridor.Has(xray.ID))

	var ids []int64
	for _, r := range res.Covered {
		ids = append(ids, r.ID)
		for _, h := range r.Path {
			assert.NotEqual(t, xray.ID, h.ID)
		}
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)
	assert.InDelta(t, 57.142857, res.CoveragePct, 1e-5)
}

func TestCoveredWithin(t *testing.T) {
	res := corridor.Analyze(corpus(), 4)

	all := res.CoveredWithin(starmap.NewIDSet(1, 2, 3))
	assert.Equal(t, res.Covered, all)

	// without Charlie only the Alpha-Bravo route stays testable
	within := res.CoveredWithin(starmap.NewIDSet(1, 2))
	require.Len(t, within, 1)
	assert.Equal(t, int64(2), within[0].ID)
	assert.InDelta(t, 100.0/7, res.Pct(len(within)), 1e-9)
	assert.Empty(t, res.CoveredWithin(starmap.NewIDSet()))
}

func TestAnalyzeRepeatedHop(t *testing.T) {
	routes := []corridor.Route{
		{ID: 1, Path: []corridor.Hop{alpha, bravo, alpha}},
	}
	res := corridor.Analyze(routes, 2)
	assert.Equal(t, 2, res.Counts[alpha.ID])
	assert.Equal(t, []starmap.ID{1}, res.Corridor.Sorted())
	assert.Empty(t, res.Covered)
}

func TestAnalyzeEmpty(t *testing.T) {
	res := corridor.Analyze(nil, 4)
	assert.Zero(t, res.Routes)
	assert.Zero(t, res.CoveragePct)
	assert.Zero(t, res.Corridor.Len())
	assert.Empty(t, res.Top(10))
}

func TestMonotonic(t *testing.T) {
	routes := corpus()
	prev := corridor.Analyze(routes, 1)
	for th := 2; th <= 7; th++ {
		cur := corridor.Analyze(routes, th)
		assert.True(t, prev.Corridor.Contains(cur.Corridor), "threshold %d", th)
		assert.LessOrEqual(t, len(cur.Covered), len(prev.Covered), "threshold %d", th)
		prev = cur
	}
}

func TestTop(t *testing.T) {
	res := corridor.Analyze(corpus(), 1)
	hubs := res.Top(3)
	require.Len(t, hubs, 3)
	assert.Equal(t, corridor.Hub{ID: 2, Name: "Bravo", Count: 6}, hubs[0])
	assert.Equal(t, starmap.ID(1), hubs[1].ID)
	assert.Equal(t, starmap.ID(3), hubs[2].ID)
	assert.Len(t, res.Top(100), 4)
}

func TestSweep(t *testing.T) {
	points := corridor.Sweep(corpus(), 5)
	require.Len(t, points, 5)
	assert.Equal(t, 4, points[0].Systems)
	assert.Equal(t, 7, points[0].Covered)
	assert.Equal(t, 3, points[3].Systems)
	assert.Equal(t, 1, points[4].Systems)
	assert.Zero(t, points[4].Covered)
}

func TestReport(t *testing.T) {
	routes := corpus()
	res := corridor.Analyze(routes, 4)

	var buf bytes.Buffer
	err := corridor.Report(&buf, res, 3, corridor.Sweep(routes, 5))
	require.Nil(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "report", buf.Bytes())
}
