package ioroutes

import (
	"fmt"
	"runtime"

	"github.com/evefrontier/fixgen/pkg/errcode"
	"github.com/gnames/gn"
)

// RoutesReadError is returned when the corpus file cannot be read.
func RoutesReadError(path string, err error) error {
	msg := "Cannot read route corpus <em>%s</em>"

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.RoutesReadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: read %s: %w", fn, path, err),
	}
}

// RoutesParseError is returned when a corpus line cannot be decoded.
func RoutesParseError(line int, err error) error {
	msg := `Route corpus is malformed at line <em>%d</em>

<em>Expected header:</em>
  routeId,startSolarSystemId,endSolarSystemId,avoidGates,maxLightyears,discoveredPath

<em>How to fix:</em>
  discoveredPath must be a JSON array like [{"Id":30000001,"Name":"Nod"}]`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.RoutesParseError,
		Msg:  msg,
		Vars: []any{line},
		Err:  fmt.Errorf("from %s: line %d: %w", fn, line, err),
	}
}
