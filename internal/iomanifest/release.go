package iomanifest

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/evefrontier/fixgen/internal/iofs"
)

// ReadReleaseMarker parses a release marker file of key=value lines.
// Blank lines and lines without '=' are ignored, a "resolved" key is
// required.
func ReadReleaseMarker(path string) (map[string]string, error) {
	if err := iofs.RequireFile("release marker", path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, ManifestReleaseMarkerError(path, err)
	}
	defer f.Close()

	res := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		res[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	if err = sc.Err(); err != nil {
		return nil, ManifestReleaseMarkerError(path, err)
	}

	if _, ok := res["resolved"]; !ok {
		err = errors.New("missing 'resolved=' entry")
		return nil, ManifestReleaseMarkerError(path, err)
	}
	return res, nil
}

// WriteReleaseMarker writes a marker with a single resolved entry.
func WriteReleaseMarker(path, resolved string) error {
	if err := iofs.EnsureParentDir(path); err != nil {
		return err
	}
	data := "resolved=" + resolved + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return ManifestReleaseMarkerError(path, err)
	}
	return nil
}
