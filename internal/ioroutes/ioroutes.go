// Package ioroutes reads the discovered-route corpus, a CSV export where
// every record carries its path as a JSON array of {"Id","Name"} hops.
package ioroutes

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/evefrontier/fixgen/internal/iofs"
	"github.com/evefrontier/fixgen/pkg/corridor"
	"github.com/evefrontier/fixgen/pkg/starmap"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
)

// Column names of the corpus header.
const (
	colRouteID       = "routeId"
	colStart         = "startSolarSystemId"
	colEnd           = "endSolarSystemId"
	colAvoidGates    = "avoidGates"
	colMaxLightyears = "maxLightyears"
	colPath          = "discoveredPath"
)

// Header is the header line of a route corpus.
var Header = []string{
	colRouteID, colStart, colEnd, colAvoidGates, colMaxLightyears, colPath,
}

// Load reads every route of the corpus at path.
func Load(path string) ([]corridor.Route, error) {
	if err := iofs.RequireFile("route corpus", path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, RoutesReadError(path, err)
	}
	defer f.Close()

	routes, err := Read(f)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded route corpus", "path", path, "routes", len(routes))
	return routes, nil
}

// Read decodes a route corpus. Only routeId and discoveredPath are
// required, start and end default to the first and last hop.
func Read(r io.Reader) ([]corridor.Route, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, RoutesParseError(1, err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	for _, req := range []string{colRouteID, colPath} {
		if _, ok := idx[req]; !ok {
			return nil, RoutesParseError(1, errors.New("missing column "+req))
		}
	}

	enc := gnfmt.GNjson{}
	var res []corridor.Route
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, RoutesParseError(line, err)
		}

		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		var route corridor.Route
		if route.ID, err = strconv.ParseInt(get(colRouteID), 10, 64); err != nil {
			return nil, RoutesParseError(line, err)
		}
		if err = enc.Decode([]byte(get(colPath)), &route.Path); err != nil {
			return nil, RoutesParseError(line, err)
		}
		for i := range route.Path {
			route.Path[i].Name = gnlib.FixUtf8(route.Path[i].Name)
		}

		if route.StartID, err = optID(get(colStart)); err != nil {
			return nil, RoutesParseError(line, err)
		}
		if route.EndID, err = optID(get(colEnd)); err != nil {
			return nil, RoutesParseError(line, err)
		}
		if n := len(route.Path); n > 0 {
			if route.StartID == 0 {
				route.StartID = route.Path[0].ID
			}
			if route.EndID == 0 {
				route.EndID = route.Path[n-1].ID
			}
		}

		route.AvoidGates = strings.EqualFold(get(colAvoidGates), "true")
		if s := get(colMaxLightyears); s != "" {
			if route.MaxLightyears, err = strconv.ParseFloat(s, 64); err != nil {
				return nil, RoutesParseError(line, err)
			}
		}
		res = append(res, route)
	}
	return res, nil
}

func optID(s string) (starmap.ID, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return starmap.ID(n), err
}

// Write encodes routes as a corpus, in the same layout Read accepts.
func Write(w io.Writer, routes []corridor.Route) error {
	enc := gnfmt.GNjson{}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range routes {
		path, err := enc.Encode(r.Path)
		if err != nil {
			return err
		}
		rec := []string{
			strconv.FormatInt(r.ID, 10),
			strconv.FormatInt(int64(r.StartID), 10),
			strconv.FormatInt(int64(r.EndID), 10),
			strconv.FormatBool(r.AvoidGates),
			strconv.FormatFloat(r.MaxLightyears, 'f', -1, 64),
			string(path),
		}
		if err = cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
