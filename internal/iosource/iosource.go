// Package iosource reads a full starmap dataset from SQLite. The file is
// opened read-only and its layout is detected once, every query goes
// through the resulting schema.Capabilities.
package iosource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/evefrontier/fixgen/internal/iofs"
	"github.com/evefrontier/fixgen/pkg/schema"
	"github.com/evefrontier/fixgen/pkg/starmap"
	_ "modernc.org/sqlite"
)

// batchSize keeps IN lists below the SQLite variable limit.
const batchSize = 900

// Dataset is an open source dataset. It implements closure.Source.
type Dataset struct {
	path string
	db   *sql.DB
	caps *schema.Capabilities
}

// Open opens the SQLite file at path read-only and detects its schema.
func Open(ctx context.Context, path string) (*Dataset, error) {
	if err := iofs.RequireFile("source dataset", path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, SourceOpenError(path, err)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, SourceOpenError(path, err)
	}

	caps, err := Detect(ctx, db)
	if err != nil {
		db.Close()
		if errors.Is(err, schema.ErrUnsupported) {
			return nil, UnsupportedSchemaError(path, err)
		}
		return nil, err
	}

	slog.Info("Opened source dataset",
		"path", path,
		"variant", caps.Variant.String(),
		"tables", strings.Join(caps.Definition().Names(), ","),
	)
	return &Dataset{path: path, db: db, caps: caps}, nil
}

// Close releases the database handle.
func (d *Dataset) Close() error {
	return d.db.Close()
}

// Path returns the file the dataset was opened from.
func (d *Dataset) Path() string {
	return d.path
}

// Capabilities describes the detected layout.
func (d *Dataset) Capabilities() *schema.Capabilities {
	return d.caps
}

// Detect reads table and column names from the database catalog and
// resolves them into Capabilities. Tolerated deviations are logged.
func Detect(ctx context.Context, db *sql.DB) (*schema.Capabilities, error) {
	catalog, err := readCatalog(ctx, db)
	if err != nil {
		return nil, err
	}

	caps, err := schema.Resolve(catalog)
	if err != nil {
		return nil, err
	}
	for _, note := range caps.Notes {
		slog.Warn("Schema variance", "note", note)
	}
	return caps, nil
}

func readCatalog(ctx context.Context, db *sql.DB) ([]schema.TableInfo, error) {
	q := `SELECT name, COALESCE(sql, '') FROM sqlite_master
	WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	ORDER BY name`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, QueryError("sqlite_master", err)
	}
	defer rows.Close()

	var res []schema.TableInfo
	for rows.Next() {
		var ti schema.TableInfo
		if err = rows.Scan(&ti.Name, &ti.DDL); err != nil {
			return nil, QueryError("sqlite_master", err)
		}
		res = append(res, ti)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("sqlite_master", err)
	}

	for i := range res {
		ti := &res[i]
		if ti.Columns, ti.PrimaryKey, err = tableColumns(ctx, db, ti.Name); err != nil {
			return nil, err
		}
		if ti.ForeignKeys, err = foreignKeys(ctx, db, ti.Name); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// tableColumns returns columns of a table in declaration order and its
// primary key columns in key order.
func tableColumns(
	ctx context.Context,
	db *sql.DB,
	table string,
) ([]string, []string, error) {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+quote(table)+")")
	if err != nil {
		return nil, nil, QueryError(table, err)
	}
	defer rows.Close()

	var cols []string
	keys := make(map[int]string)
	for rows.Next() {
		var cid, notNull, pk int
		var name, typ string
		var dflt any
		if err = rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, nil, QueryError(table, err)
		}
		cols = append(cols, name)
		if pk > 0 {
			keys[pk] = name
		}
	}
	if err = rows.Err(); err != nil {
		return nil, nil, QueryError(table, err)
	}

	var pk []string
	for i := 1; i <= len(keys); i++ {
		pk = append(pk, keys[i])
	}
	return cols, pk, nil
}

// foreignKeys reads single column references of a table. Composite
// references are skipped.
func foreignKeys(
	ctx context.Context,
	db *sql.DB,
	table string,
) ([]schema.ForeignKey, error) {
	q := "PRAGMA foreign_key_list(" + quote(table) + ")"
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, QueryError(table, err)
	}
	defer rows.Close()

	var ids []int
	byID := make(map[int][]schema.ForeignKey)
	for rows.Next() {
		var id, seq int
		var ref, from, onUpdate, onDelete, match string
		var to sql.NullString
		err = rows.Scan(&id, &seq, &ref, &from, &to, &onUpdate, &onDelete, &match)
		if err != nil {
			return nil, QueryError(table, err)
		}
		if _, ok := byID[id]; !ok {
			ids = append(ids, id)
		}
		byID[id] = append(byID[id], schema.ForeignKey{
			Column:    from,
			RefTable:  ref,
			RefColumn: to.String,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError(table, err)
	}

	var res []schema.ForeignKey
	for _, id := range ids {
		fks := byID[id]
		if len(fks) > 1 {
			slog.Info("Skipping composite foreign key",
				"table", table, "references", fks[0].RefTable)
			continue
		}
		res = append(res, fks[0])
	}
	return res, nil
}

// Count returns the number of rows of a present logical table.
func (d *Dataset) Count(ctx context.Context, table string) (int64, error) {
	tbl, ok := d.caps.Table(table)
	if !ok {
		if tbl, ok = d.caps.Lookup(table); !ok {
			return 0, nil
		}
	}
	var res int64
	q := "SELECT COUNT(*) FROM " + quote(tbl.Physical)
	if err := d.db.QueryRowContext(ctx, q).Scan(&res); err != nil {
		return 0, QueryError(tbl.Physical, err)
	}
	return res, nil
}

// quote makes an SQL identifier out of a table or column name.
func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func selectAll(tbl *schema.Table) string {
	cols := make([]string, len(tbl.Columns))
	for i, c := range tbl.Columns {
		cols[i] = quote(c)
	}
	return fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(cols, ", "), quote(tbl.Physical))
}

// scanRows reads every row of q as a starmap.Row.
func (d *Dataset) scanRows(
	ctx context.Context,
	tbl *schema.Table,
	q string,
	args ...any,
) ([]starmap.Row, error) {
	rows, err := d.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, QueryError(tbl.Physical, err)
	}
	defer rows.Close()

	var res []starmap.Row
	for rows.Next() {
		vals := make([]any, len(tbl.Columns))
		ptrs := make([]any, len(vals))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err = rows.Scan(ptrs...); err != nil {
			return nil, QueryError(tbl.Physical, err)
		}
		res = append(res, starmap.Row(vals))
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError(tbl.Physical, err)
	}
	return res, nil
}

// rowsWhereIn reads rows whose field is one of ids, in batches.
func (d *Dataset) rowsWhereIn(
	ctx context.Context,
	tbl *schema.Table,
	field string,
	ids starmap.IDSet,
) ([]starmap.Row, error) {
	col, ok := tbl.Column(field)
	if !ok || ids.Len() == 0 {
		return nil, nil
	}

	all := ids.Sorted()
	var res []starmap.Row
	for i := 0; i < len(all); i += batchSize {
		end := min(i+batchSize, len(all))
		batch := all[i:end]

		q := selectAll(tbl) + " WHERE " + quote(col) +
			" IN (" + buildPlaceholders(len(batch)) + ")"
		args := make([]any, len(batch))
		for j, id := range batch {
			args[j] = int64(id)
		}

		rows, err := d.scanRows(ctx, tbl, q, args...)
		if err != nil {
			return nil, err
		}
		res = append(res, rows...)
	}
	return res, nil
}

// Referenced reads rows of tbl whose column holds one of values, in
// batches. It serves foreign keys from starmap rows into tables outside
// the starmap layout.
func (d *Dataset) Referenced(
	ctx context.Context,
	tbl *schema.Table,
	column string,
	values []any,
) ([]starmap.Row, error) {
	if len(values) == 0 {
		return nil, nil
	}

	var res []starmap.Row
	for i := 0; i < len(values); i += batchSize {
		end := min(i+batchSize, len(values))
		batch := values[i:end]

		q := selectAll(tbl) + " WHERE " + quote(column) +
			" IN (" + buildPlaceholders(len(batch)) + ")"
		rows, err := d.scanRows(ctx, tbl, q, batch...)
		if err != nil {
			return nil, err
		}
		res = append(res, rows...)
	}
	return res, nil
}

// buildPlaceholders creates a comma-separated list of SQL placeholders.
func buildPlaceholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
