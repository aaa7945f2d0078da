package ioextract

import (
	"fmt"
	"runtime"

	"github.com/evefrontier/fixgen/pkg/errcode"
	"github.com/gnames/gn"
)

// ConfigNoCriteriaError is returned when extract is called without any
// inclusion criterion.
func ConfigNoCriteriaError() error {
	msg := `No inclusion criteria given, nothing to extract

<em>How to fix:</em>
  Use at least one of:
    --seed NAME          include systems by name (with --depth hops)
    --radius LY --origin NAME
                         include systems around a named system
    --corridor N         include systems seen in N+ discovered routes`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ConfigNoCriteriaError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: no inclusion criteria", fn),
	}
}

// SourceProtectedPathError is returned when the output would replace
// the source dataset.
func SourceProtectedPathError(path string) error {
	msg := `Refusing to write the fixture over the source dataset

<em>Output:</em> %s

<em>How to fix:</em>
  Pass a different path with --output`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SourceProtectedPathError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: output %s is the source", fn, path),
	}
}

// SourcePathError is returned when the source or output path cannot be
// made absolute, so the output cannot be checked against the source.
func SourcePathError(path string, err error) error {
	msg := `Cannot resolve path <em>%s</em>

<em>How to fix:</em>
  Run fixgen from an existing directory or pass absolute paths`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SourcePathError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: resolve %s: %w", fn, path, err),
	}
}

// RadiusOriginNotFoundError is returned when the radius origin is not
// given or is not a system of the source.
func RadiusOriginNotFoundError(name string) error {
	msg := `Radius origin system <em>%s</em> not found

<em>How to fix:</em>
  Pass an existing system name with --origin`
	vars := []any{name}
	if name == "" {
		msg = `A radius needs an origin system

<em>How to fix:</em>
  Pass a system name with --origin`
		vars = nil
	}

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.RadiusOriginNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: radius origin %q not found", fn, name),
	}
}

// RadiusNoPositionError is returned when a radius is requested but the
// source (or the origin system) has no coordinates.
func RadiusNoPositionError(path, origin string) error {
	msg := `Cannot select by radius, <em>%s</em> has no coordinates for <em>%s</em>

<em>How to fix:</em>
  Use a dataset with centerX/centerY/centerZ columns, or drop --radius`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.RadiusNoPositionError,
		Msg:  msg,
		Vars: []any{path, origin},
		Err:  fmt.Errorf("from %s: no positions in %s", fn, path),
	}
}
