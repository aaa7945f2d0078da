package iotesting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evefrontier/fixgen/internal/ioroutes"
	"github.com/evefrontier/fixgen/pkg/corridor"
	"github.com/evefrontier/fixgen/pkg/starmap"
)

// Route makes a corpus record from hop IDs. Names are looked up in the
// test galaxy and default to the ID.
func Route(id int64, hops ...starmap.ID) corridor.Route {
	r := corridor.Route{ID: id, MaxLightyears: 80}
	for _, h := range hops {
		r.Path = append(r.Path, corridor.Hop{ID: h, Name: systemName(h)})
	}
	if len(hops) > 0 {
		r.StartID = hops[0]
		r.EndID = hops[len(hops)-1]
	}
	return r
}

// RoutesCSV writes routes as dir/routes.csv and returns its path.
func RoutesCSV(t *testing.T, dir string, routes ...corridor.Route) string {
	t.Helper()
	path := filepath.Join(dir, "routes.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err = ioroutes.Write(f, routes); err != nil {
		t.Fatalf("Failed to write routes: %v", err)
	}
	return path
}

func systemName(id starmap.ID) string {
	for _, s := range systemRows {
		if s.id == id {
			return s.name
		}
	}
	return ""
}
