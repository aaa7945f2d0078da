// Package iofixture writes a closure into a fresh SQLite fixture. The
// file is built next to its destination and renamed into place only when
// it is complete, so an interrupted run never leaves a half-written
// fixture behind.
package iofixture

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/evefrontier/fixgen/internal/iofs"
	"github.com/evefrontier/fixgen/pkg/closure"
	"github.com/evefrontier/fixgen/pkg/fixture"
	"github.com/evefrontier/fixgen/pkg/schema"
	"github.com/evefrontier/fixgen/pkg/starmap"
	"github.com/gnames/gn"
	_ "modernc.org/sqlite"
)

type materializer struct {
	withProgress bool
}

// New creates a Materializer. When withProgress is true a progress bar
// is shown while rows are inserted.
func New(withProgress bool) fixture.Materializer {
	return &materializer{withProgress: withProgress}
}

// Materialize implements fixture.Materializer.
func (m *materializer) Materialize(
	ctx context.Context,
	res *closure.Result,
	def schema.Definition,
	outputPath string,
) (fixture.RowCounts, error) {
	if err := iofs.EnsureParentDir(outputPath); err != nil {
		return nil, err
	}

	tmpPath := tempPath(outputPath)
	if err := removeIfExists(tmpPath); err != nil {
		return nil, FixtureCreateError(tmpPath, err)
	}

	counts, err := m.write(ctx, res, def, tmpPath)
	if err != nil {
		_ = os.Remove(tmpPath)
		return nil, err
	}

	if err = removeIfExists(outputPath); err != nil {
		_ = os.Remove(tmpPath)
		return nil, FixtureCommitError(outputPath, err)
	}
	if err = os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		return nil, FixtureCommitError(outputPath, err)
	}

	attrs := []any{"path", outputPath}
	for _, t := range def.Tables {
		attrs = append(attrs, t.Name, counts[t.Name])
	}
	slog.Info("Fixture written", attrs...)
	return counts, nil
}

func (m *materializer) write(
	ctx context.Context,
	res *closure.Result,
	def schema.Definition,
	path string,
) (fixture.RowCounts, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, FixtureCreateError(path, err)
	}
	defer db.Close()
	// foreign_keys is per connection, keep a single one
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return nil, FixtureCreateError(path, err)
	}

	for _, t := range def.Tables {
		if t.DDL == "" {
			err = errors.New("no DDL for table " + t.Physical)
			return nil, FixtureCreateError(path, err)
		}
		if _, err = db.ExecContext(ctx, t.DDL); err != nil {
			return nil, FixtureCreateError(path, err)
		}
	}

	var total int
	for _, t := range def.Tables {
		total += len(res.Rows(t.Name))
	}

	var bar *pb.ProgressBar
	if m.withProgress && total > 0 {
		bar = newProgressBar(total, "Writing fixture: ")
		defer bar.Finish()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FixtureWriteError("", err)
	}
	defer tx.Rollback()

	// tables outside the starmap layout come last, their keys are
	// checked at commit
	if _, err = tx.ExecContext(ctx, "PRAGMA defer_foreign_keys = ON"); err != nil {
		return nil, FixtureWriteError("", err)
	}

	counts := make(fixture.RowCounts, len(def.Tables))
	for _, t := range def.Tables {
		n, err := insertRows(ctx, tx, t, res.Rows(t.Name), bar)
		if err != nil {
			return nil, err
		}
		counts[t.Name] = n
	}

	if err = tx.Commit(); err != nil {
		return nil, FixtureWriteError("", err)
	}

	if m.withProgress && total > 0 {
		gn.Info("Wrote <em>%s</em> rows", humanize.Comma(int64(total)))
	}
	return counts, db.Close()
}

func insertRows(
	ctx context.Context,
	tx *sql.Tx,
	t *schema.Table,
	rows []starmap.Row,
	bar *pb.ProgressBar,
) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = quote(c)
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(t.Physical),
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
	)

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return 0, FixtureWriteError(t.Physical, err)
	}
	defer stmt.Close()

	var n int64
	for _, r := range rows {
		if _, err = stmt.ExecContext(ctx, []any(r)...); err != nil {
			return 0, FixtureWriteError(t.Physical, err)
		}
		n++
		if bar != nil {
			bar.Increment()
		}
	}
	return n, nil
}

func tempPath(outputPath string) string {
	dir, base := filepath.Split(outputPath)
	return filepath.Join(dir, "."+base+".tmp")
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
