// Package iomanifest computes, records and verifies fixture manifests.
// A manifest pins a fixture by the SHA-256 of its file, exact row counts
// of the core tables and the release recorded in its release marker.
package iomanifest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/evefrontier/fixgen/internal/iofs"
	"github.com/evefrontier/fixgen/internal/iosource"
	"github.com/evefrontier/fixgen/pkg/config"
	"github.com/evefrontier/fixgen/pkg/fixture"
	"github.com/evefrontier/fixgen/pkg/schema"
	"github.com/gnames/gnfmt"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"
)

// chunkSize is the read buffer used for hashing.
const chunkSize = 1 << 20

type fingerprinter struct{}

// New creates a Fingerprinter.
func New() fixture.Fingerprinter {
	return &fingerprinter{}
}

// Fingerprint implements fixture.Fingerprinter. The fixture path in the
// result is relative to the default manifest location.
func (f *fingerprinter) Fingerprint(
	ctx context.Context,
	fixturePath string,
) (*fixture.Manifest, error) {
	return f.fingerprint(ctx, fixturePath, config.ManifestPath(fixturePath))
}

// Record implements fixture.Fingerprinter.
func (f *fingerprinter) Record(
	ctx context.Context,
	fixturePath, manifestPath string,
) (*fixture.Manifest, error) {
	m, err := f.fingerprint(ctx, fixturePath, manifestPath)
	if err != nil {
		return nil, err
	}
	if err = iofs.EnsureParentDir(manifestPath); err != nil {
		return nil, err
	}

	data, err := Encode(m)
	if err != nil {
		return nil, err
	}
	if err = os.WriteFile(manifestPath, data, 0644); err != nil {
		return nil, ManifestEncodeError(manifestPath, err)
	}
	slog.Info("Recorded manifest",
		"manifest", manifestPath,
		"fixture", m.Fixture,
		"sha256", m.SHA256,
	)
	return m, nil
}

// Verify implements fixture.Fingerprinter. A missing manifest or fixture
// is an error, a mismatch is not.
func (f *fingerprinter) Verify(
	ctx context.Context,
	fixturePath, manifestPath string,
) (*fixture.Verification, error) {
	if err := iofs.RequireFile("recorded manifest", manifestPath); err != nil {
		return nil, err
	}
	recorded, err := Load(manifestPath)
	if err != nil {
		return nil, err
	}

	current, err := f.fingerprint(ctx, fixturePath, manifestPath)
	if err != nil {
		return nil, err
	}

	res := fixture.Compare(recorded, current)
	if res.Match {
		slog.Info("Fixture matches manifest", "manifest", manifestPath)
	} else {
		slog.Warn("Fixture drifted from manifest",
			"manifest", manifestPath,
			"diffs", len(res.Diffs),
		)
	}
	return res, nil
}

func (f *fingerprinter) fingerprint(
	ctx context.Context,
	fixturePath, manifestPath string,
) (*fixture.Manifest, error) {
	if err := iofs.RequireFile("fixture", fixturePath); err != nil {
		return nil, err
	}

	marker, err := ReadReleaseMarker(config.ReleaseMarkerPath(fixturePath))
	if err != nil {
		return nil, err
	}

	res := &fixture.Manifest{
		Fixture: relativePath(fixturePath, manifestPath),
		Release: marker["resolved"],
	}

	// Both passes only read the file.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.SHA256, err = Digest(fixturePath)
		return err
	})
	g.Go(func() error {
		var err error
		res.Tables, err = countTables(ctx, fixturePath)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// Digest returns the hex SHA-256 of a file, read in chunks.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", ManifestHashError(path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err = io.CopyBuffer(h, f, make([]byte, chunkSize)); err != nil {
		return "", ManifestHashError(path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func countTables(ctx context.Context, path string) (map[string]int64, error) {
	ds, err := iosource.Open(ctx, path)
	if err != nil {
		return nil, ManifestCountError(path, err)
	}
	defer ds.Close()

	caps := ds.Capabilities()
	res := make(map[string]int64, len(schema.FingerprintTables))
	for _, t := range schema.FingerprintTables {
		if !caps.HasTable(t) {
			slog.Info("Table absent from fixture, not counted", "table", t)
			continue
		}
		n, err := ds.Count(ctx, t)
		if err != nil {
			return nil, ManifestCountError(path, err)
		}
		res[t] = n
	}
	return res, nil
}

// relativePath gives the fixture path relative to the manifest's
// directory, or the path as is when that is not possible.
func relativePath(fixturePath, manifestPath string) string {
	absFix, err := filepath.Abs(fixturePath)
	if err != nil {
		return fixturePath
	}
	absDir, err := filepath.Abs(filepath.Dir(manifestPath))
	if err != nil {
		return fixturePath
	}
	rel, err := filepath.Rel(absDir, absFix)
	if err != nil {
		return fixturePath
	}
	return filepath.ToSlash(rel)
}

// Encode renders a manifest as indented JSON with sorted keys and a
// trailing newline. GNjson keeps map keys in iteration order, the
// standard library compatible config sorts them.
func Encode(m *fixture.Manifest) ([]byte, error) {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.
		MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, ManifestEncodeError(m.Fixture, err)
	}
	return append(data, '\n'), nil
}

// Load reads a recorded manifest.
func Load(path string) (*fixture.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ManifestDecodeError(path, err)
	}
	var res fixture.Manifest
	enc := gnfmt.GNjson{}
	if err = enc.Decode(data, &res); err != nil {
		return nil, ManifestDecodeError(path, err)
	}
	return &res, nil
}
