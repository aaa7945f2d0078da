package iofixture

import (
	"fmt"
	"runtime"

	"github.com/evefrontier/fixgen/pkg/errcode"
	"github.com/gnames/gn"
)

// FixtureCreateError is returned when the fixture file or its tables
// cannot be created.
func FixtureCreateError(path string, err error) error {
	msg := `Cannot create fixture <em>%s</em>

<em>How to fix:</em>
  Check that the output directory is writable`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.FixtureCreateError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: create %s: %w", fn, path, err),
	}
}

// FixtureWriteError is returned when rows cannot be inserted. Nothing
// is kept from a failed write.
func FixtureWriteError(table string, err error) error {
	msg := "Cannot write rows into fixture table <em>%s</em>"
	vars := []any{table}
	if table == "" {
		msg = "Cannot write fixture rows"
		vars = nil
	}

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.FixtureWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: write %s: %w", fn, table, err),
	}
}

// FixtureCommitError is returned when the finished fixture cannot be
// moved to its destination.
func FixtureCommitError(path string, err error) error {
	msg := `Cannot replace fixture <em>%s</em>

<em>How to fix:</em>
  Make sure no other process holds the file open`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.FixtureCommitError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: rename to %s: %w", fn, path, err),
	}
}
