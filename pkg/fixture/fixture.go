// Package fixture defines the contracts of fixture extraction and the
// manifest that pins a fixture to its exact content.
package fixture

import (
	"context"

	"github.com/evefrontier/fixgen/pkg/closure"
	"github.com/evefrontier/fixgen/pkg/schema"
)

// RowCounts maps logical table names to the number of rows written.
type RowCounts map[string]int64

// Extractor runs the whole pipeline: criteria, selection, closure,
// materialization and, if asked, manifest recording.
// Config is provided during construction.
type Extractor interface {
	// Extract creates or replaces the fixture and returns a summary.
	Extract(ctx context.Context) (*Report, error)
}

// Materializer writes a closure into a fresh SQLite file.
type Materializer interface {
	// Materialize builds the fixture at outputPath with tables of def.
	// A previous file at outputPath is replaced only after the new one is
	// complete, a failed run leaves it untouched.
	Materialize(
		ctx context.Context,
		res *closure.Result,
		def schema.Definition,
		outputPath string,
	) (RowCounts, error)
}

// Fingerprinter computes and compares fixture manifests.
type Fingerprinter interface {
	// Fingerprint computes the manifest of a fixture file.
	Fingerprint(ctx context.Context, fixturePath string) (*Manifest, error)

	// Record writes the manifest of a fixture to manifestPath.
	Record(ctx context.Context, fixturePath, manifestPath string) (*Manifest, error)

	// Verify recomputes the manifest and compares it with the recorded one.
	// A mismatch is not an error, it is reported in Verification.
	Verify(ctx context.Context, fixturePath, manifestPath string) (*Verification, error)
}

// Report summarizes an extraction.
type Report struct {
	// RunID is unique per run and is attached to log records.
	RunID string
	// SelectionID is derived from the sorted system IDs. The same
	// selection gives the same ID on every run.
	SelectionID string
	// OutputPath is the written fixture.
	OutputPath string
	// Variant of the source schema.
	Variant schema.Variant
	// Counts are rows written per table.
	Counts RowCounts
	// SystemNames are names of included systems sorted alphabetically.
	SystemNames []string
	// Missing are target IDs absent from the source.
	Missing int
	// Routes and CoveredRoutes are set when a corridor was used.
	Routes        int
	CoveredRoutes int
	CoveragePct   float64
	// Manifest is set when the run recorded one.
	Manifest *Manifest
	// CorridorSummary is the path of the written CorridorSummary, set
	// when a corridor was used.
	CorridorSummary string
	// Duration of the run in seconds.
	Duration float64
}

// CorridorSummary documents a fixture selected by a route corridor. It
// is written next to the fixture for people reading the test data and is
// not verified like a Manifest.
type CorridorSummary struct {
	Description    string   `json:"description"`
	Threshold      int      `json:"threshold"`
	SystemsCount   int64    `json:"systems_count"`
	JumpsCount     int64    `json:"jumps_count"`
	Routes         int      `json:"routes"`
	TestableRoutes int      `json:"testable_routes"`
	CoveragePct    float64  `json:"coverage_pct"`
	SampleSystems  []string `json:"sample_systems"`
	SelectionID    string   `json:"selection_id"`
	FileSizeBytes  int64    `json:"file_size_bytes"`
}
