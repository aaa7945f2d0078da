package closure

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/evefrontier/fixgen/pkg/schema"
	"github.com/evefrontier/fixgen/pkg/starmap"
)

type pending struct {
	tbl  *schema.Table
	rows []starmap.Row
}

// resolveReferences follows declared foreign keys from the collected
// rows into tables outside the starmap layout. Rows pulled from those
// tables are followed in turn until nothing new is referenced.
func (r *Result) resolveReferences(ctx context.Context, src Source) error {
	extras := r.caps.Extras()
	if len(extras) == 0 {
		return nil
	}

	r.Extra = make(map[string][]starmap.Row, len(extras))
	isExtra := make(map[*schema.Table]bool, len(extras))
	for _, t := range extras {
		isExtra[t] = true
		r.Extra[t.Name] = nil
	}

	var work []pending
	for _, t := range r.caps.Definition().Tables {
		if isExtra[t] {
			continue
		}
		if rows := r.Rows(t.Name); len(rows) > 0 {
			work = append(work, pending{tbl: t, rows: rows})
		}
	}

	requested := make(map[string]map[string]bool)
	seen := make(map[string]map[string]bool)
	for len(work) > 0 {
		p := work[0]
		work = work[1:]

		for _, fk := range p.tbl.ForeignKeys {
			ref, ok := r.caps.Lookup(fk.RefTable)
			if !ok || !isExtra[ref] {
				continue
			}
			refCol := ref.RefColumn(fk)
			i := p.tbl.ColumnIndex(fk.Column)
			if refCol == "" || i < 0 {
				continue
			}

			reqKey := ref.Name + "." + strings.ToLower(refCol)
			if requested[reqKey] == nil {
				requested[reqKey] = make(map[string]bool)
			}
			var values []any
			for _, row := range p.rows {
				if i >= len(row) || row[i] == nil {
					continue
				}
				k := valueKey(row[i])
				if requested[reqKey][k] {
					continue
				}
				requested[reqKey][k] = true
				values = append(values, row[i])
			}
			if len(values) == 0 {
				continue
			}

			rows, err := src.Referenced(ctx, ref, refCol, values)
			if err != nil {
				return err
			}
			if seen[ref.Name] == nil {
				seen[ref.Name] = make(map[string]bool)
			}
			idx := keyIndexes(ref)
			var fresh []starmap.Row
			for _, row := range rows {
				k := rowKey(row, idx)
				if seen[ref.Name][k] {
					continue
				}
				seen[ref.Name][k] = true
				fresh = append(fresh, row)
			}
			if len(fresh) == 0 {
				continue
			}
			r.Extra[ref.Name] = append(r.Extra[ref.Name], fresh...)
			work = append(work, pending{tbl: ref, rows: fresh})
		}
	}

	for _, t := range extras {
		idx := keyIndexes(t)
		slices.SortFunc(r.Extra[t.Name], func(a, b starmap.Row) int {
			return compareRows(a, b, idx)
		})
		if n := len(r.Extra[t.Name]); n > 0 {
			slog.Info("Referenced rows collected", "table", t.Name, "rows", n)
		}
	}
	return nil
}

// checkDeclared verifies declared foreign keys that leave the starmap
// layout: references into tables outside of it, references to tables the
// source does not have, and references made by rows of outside tables.
func (r *Result) checkDeclared() []string {
	if r.caps == nil {
		return nil
	}
	isExtra := make(map[*schema.Table]bool)
	for _, t := range r.caps.Extras() {
		isExtra[t] = true
	}

	var res []string
	present := make(map[string]map[string]bool)
	for _, t := range r.caps.Definition().Tables {
		rows := r.Rows(t.Name)
		if len(rows) == 0 {
			continue
		}
		for _, fk := range t.ForeignKeys {
			i := t.ColumnIndex(fk.Column)
			if i < 0 {
				continue
			}
			ref, ok := r.caps.Lookup(fk.RefTable)
			if ok && !isExtra[t] && !isExtra[ref] {
				continue
			}

			var have map[string]bool
			if ok {
				refCol := ref.RefColumn(fk)
				j := ref.ColumnIndex(refCol)
				if j < 0 {
					continue
				}
				key := ref.Name + "." + strings.ToLower(refCol)
				if have, ok = present[key]; !ok {
					have = make(map[string]bool)
					for _, row := range r.Rows(ref.Name) {
						if j < len(row) && row[j] != nil {
							have[valueKey(row[j])] = true
						}
					}
					present[key] = have
				}
			}

			for _, row := range rows {
				if i >= len(row) || row[i] == nil || have[valueKey(row[i])] {
					continue
				}
				res = append(res, fmt.Sprintf("%s %s %v: no %s row",
					t.Physical, fk.Column, row[i], fk.RefTable))
			}
		}
	}
	return res
}

// keyIndexes returns positions of the primary key columns, or of every
// column when the table has no usable primary key.
func keyIndexes(t *schema.Table) []int {
	var res []int
	for _, c := range t.PrimaryKey {
		i := t.ColumnIndex(c)
		if i < 0 {
			res = nil
			break
		}
		res = append(res, i)
	}
	if len(res) > 0 {
		return res
	}
	res = make([]int, len(t.Columns))
	for i := range res {
		res[i] = i
	}
	return res
}

func rowKey(row starmap.Row, idx []int) string {
	parts := make([]string, len(idx))
	for n, i := range idx {
		if i < len(row) {
			parts[n] = valueKey(row[i])
		}
	}
	return strings.Join(parts, "\x1f")
}

// valueKey renders a column value so that integers stored as integer or
// as integral real compare equal.
func valueKey(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return "s:" + v
	case []byte:
		return "s:" + string(v)
	default:
		return fmt.Sprint(v)
	}
}

func compareRows(a, b starmap.Row, idx []int) int {
	for _, i := range idx {
		var va, vb any
		if i < len(a) {
			va = a[i]
		}
		if i < len(b) {
			vb = b[i]
		}
		if c := compareValues(va, vb); c != 0 {
			return c
		}
	}
	return 0
}

func compareValues(a, b any) int {
	na, okA := number(a)
	nb, okB := number(b)
	switch {
	case okA && okB:
		return cmp.Compare(na, nb)
	case okA:
		return -1
	case okB:
		return 1
	}
	return strings.Compare(valueKey(a), valueKey(b))
}

func number(v any) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
