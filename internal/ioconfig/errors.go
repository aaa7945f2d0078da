package ioconfig

import (
	"fmt"
	"runtime"

	"github.com/evefrontier/fixgen/pkg/errcode"
	"github.com/gnames/gn"
)

// ConfigLoadError is returned when a config or .env file cannot be
// parsed.
func ConfigLoadError(path string, err error) error {
	msg := `Cannot load configuration from <em>%s</em>

<em>How to fix:</em>
  1. Check the file for YAML or KEY=value syntax errors
  2. Remove the file to get a fresh default one`

	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ConfigLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot load %s: %w", fn, path, err),
	}
}

// ConfigRenderError is returned when configuration cannot be rendered
// to YAML.
func ConfigRenderError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ConfigLoadError,
		Msg:  "Cannot render configuration",
		Err:  fmt.Errorf("from %s: cannot render config: %w", fn, err),
	}
}
