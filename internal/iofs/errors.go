package iofs

import (
	"fmt"
	"runtime"

	"github.com/evefrontier/fixgen/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateDirError is returned when a directory cannot be created.
func CreateDirError(dir string, err error) error {
	msg := "Cannot create %s"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create directory: %w",
			fn, err),
	}
}

// CopyFileError is returned when a file cannot be written or copied.
func CopyFileError(file string, err error) error {
	msg := "Cannot copy file to %s"
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot copy file: %w",
			fn, err),
	}
}

// ReadFileError is returned when a file exists but cannot be read.
func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ReadFileError,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
		Msg:  msg,
		Vars: vars,
	}
}

// WriteFileError is returned when a file cannot be written.
func WriteFileError(path string, err error) error {
	msg := "Cannot write <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.WriteFileError,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn, path, err),
		Msg:  msg,
		Vars: vars,
	}
}

// FileNotFoundError is returned when a required input file is missing.
func FileNotFoundError(what, path string) error {
	msg := `The %s file does not exist

<em>Path:</em> %s

<em>How to fix:</em>
  1. Check the path in flags, FIXGEN_* variables or config.yaml
  2. Create the file first if it is produced by another command`

	vars := []any{what, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.FileNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s not found: %s", fn, what, path),
	}
}
