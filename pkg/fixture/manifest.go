package fixture

import (
	"fmt"
	"maps"
	"slices"
)

// Manifest pins a fixture: the release it came from, a digest of the
// file and row counts of the fingerprinted tables. Fields are declared
// in alphabetical order so the JSON form has sorted keys.
type Manifest struct {
	// Fixture is the fixture path relative to the manifest directory.
	Fixture string `json:"fixture"`
	// Release is the resolved value of the release marker.
	Release string `json:"release"`
	// SHA256 is the hex digest of the fixture file.
	SHA256 string `json:"sha256"`
	// Tables holds exact row counts.
	Tables map[string]int64 `json:"tables"`
}

// Verification is the outcome of comparing a recorded manifest with a
// freshly computed one.
type Verification struct {
	Match    bool
	Recorded *Manifest
	Current  *Manifest
	// Diffs describe every mismatching field, empty when Match is true.
	Diffs []string
}

// Compare checks two manifests for exact equality.
func Compare(recorded, current *Manifest) *Verification {
	res := &Verification{Recorded: recorded, Current: current}
	diff := func(field string, rec, cur any) {
		res.Diffs = append(res.Diffs,
			fmt.Sprintf("%s: recorded %v, current %v", field, rec, cur))
	}

	if recorded.Fixture != current.Fixture {
		diff("fixture", recorded.Fixture, current.Fixture)
	}
	if recorded.Release != current.Release {
		diff("release", recorded.Release, current.Release)
	}
	if recorded.SHA256 != current.SHA256 {
		diff("sha256", recorded.SHA256, current.SHA256)
	}

	tables := make(map[string]struct{})
	for k := range recorded.Tables {
		tables[k] = struct{}{}
	}
	for k := range current.Tables {
		tables[k] = struct{}{}
	}
	for _, t := range slices.Sorted(maps.Keys(tables)) {
		rec, okRec := recorded.Tables[t]
		cur, okCur := current.Tables[t]
		switch {
		case !okRec:
			diff("tables."+t, "absent", cur)
		case !okCur:
			diff("tables."+t, rec, "absent")
		case rec != cur:
			diff("tables."+t, rec, cur)
		}
	}

	res.Match = len(res.Diffs) == 0
	return res
}
