package iomanifest

import (
	"fmt"
	"runtime"

	"github.com/evefrontier/fixgen/pkg/errcode"
	"github.com/gnames/gn"
)

// ManifestReleaseMarkerError is returned when a release marker cannot
// be read or has no resolved entry.
func ManifestReleaseMarkerError(path string, err error) error {
	msg := `Release marker <em>%s</em> is not usable

<em>Expected:</em>
  key=value lines with a resolved entry, for example
  resolved=v0.0.1

<em>How to fix:</em>
  Run <em>fixgen extract</em> again, it writes the marker next to the fixture`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ManifestReleaseMarkerError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: marker %s: %w", fn, path, err),
	}
}

// ManifestHashError is returned when the fixture cannot be hashed.
func ManifestHashError(path string, err error) error {
	msg := "Cannot compute SHA-256 of <em>%s</em>"

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ManifestHashError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: hash %s: %w", fn, path, err),
	}
}

// ManifestCountError is returned when table rows cannot be counted.
func ManifestCountError(path string, err error) error {
	msg := "Cannot count rows of fixture <em>%s</em>"

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ManifestCountError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: count %s: %w", fn, path, err),
	}
}

// ManifestEncodeError is returned when a manifest cannot be written.
func ManifestEncodeError(path string, err error) error {
	msg := "Cannot write manifest <em>%s</em>"

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ManifestEncodeError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: encode %s: %w", fn, path, err),
	}
}

// ManifestDecodeError is returned when a recorded manifest is not
// valid JSON.
func ManifestDecodeError(path string, err error) error {
	msg := `Cannot read manifest <em>%s</em>

<em>How to fix:</em>
  Record it again with <em>fixgen record</em>`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ManifestDecodeError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: decode %s: %w", fn, path, err),
	}
}

// ManifestDriftError is returned by the verify command when a fixture
// differs from its recorded manifest.
func ManifestDriftError(fixturePath string, diffs []string) error {
	msg := `Fixture <em>%s</em> does not match its recorded manifest

<em>How to fix:</em>
  If the change is intended, run <em>fixgen record</em>`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ManifestDriftError,
		Msg:  msg,
		Vars: []any{fixturePath},
		Err:  fmt.Errorf("from %s: %d mismatches: %v", fn, len(diffs), diffs),
	}
}
