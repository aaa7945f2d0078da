package iosource

import (
	"fmt"
	"runtime"

	"github.com/evefrontier/fixgen/pkg/errcode"
	"github.com/gnames/gn"
)

// SourceOpenError is returned when a dataset file cannot be opened as
// SQLite.
func SourceOpenError(path string, err error) error {
	msg := `Cannot open source dataset <em>%s</em>

<em>Possible causes:</em>
  - The file is not a SQLite database
  - The file is locked or damaged`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SourceOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn, path, err),
	}
}

// UnsupportedSchemaError is returned when a dataset has neither the
// modern nor the legacy layout.
func UnsupportedSchemaError(path string, err error) error {
	msg := `Source dataset <em>%s</em> has an unsupported schema

<em>Expected one of:</em>
  - SolarSystems(solarSystemId, name, ...) and Jumps(fromSystemId, toSystemId)
  - mapSolarSystems(solarSystemID, solarSystemName) and
    mapSolarSystemJumps(fromSolarSystemID, toSolarSystemID)

<em>Found:</em> %s`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SourceUnsupportedSchemaError,
		Msg:  msg,
		Vars: []any{path, err.Error()},
		Err:  fmt.Errorf("from %s: %s: %w", fn, path, err),
	}
}

// QueryError is returned when reading a table fails.
func QueryError(table string, err error) error {
	msg := "Cannot read table <em>%s</em> of the source dataset"

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SourceQueryError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("from %s: query %s: %w", fn, table, err),
	}
}
