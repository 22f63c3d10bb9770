package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Table is a row-oriented view of a record collection for downstream
// reporting. The column set is the union of every record's keys; cells for
// keys a record does not carry are explicit nulls.
type Table struct {
	Columns []string
	Rows    [][]cty.Value
}

// FromRecords builds a table from a record collection, one row per record
// in input order. Columns follow the shared ordering: Handle and Name
// first, the rest alphabetical.
func FromRecords(recs []Record) *Table {
	set := make(map[string]struct{})
	for _, rec := range recs {
		for k := range rec {
			set[k] = struct{}{}
		}
	}
	cols := orderColumns(set)

	t := &Table{Columns: cols, Rows: make([][]cty.Value, 0, len(recs))}
	for _, rec := range recs {
		row := make([]cty.Value, len(cols))
		for i, col := range cols {
			if v, ok := rec[col]; ok {
				row[i] = v
			} else {
				row[i] = cty.NullVal(cty.DynamicPseudoType)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Records converts the table back into records. Every row yields a record
// holding every column; cells absent from the original record come back as
// nulls, not missing keys.
func (t *Table) Records() []Record {
	recs := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(Record, len(t.Columns))
		for i, col := range t.Columns {
			rec[col] = row[i]
		}
		recs = append(recs, rec)
	}
	return recs
}

// SortBy sorts rows ascending by the named column. Rows with a null cell
// sort last. Sorting by an unknown column is a no-op.
func (t *Table) SortBy(column string) {
	idx := -1
	for i, col := range t.Columns {
		if col == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return valueLess(t.Rows[i][idx], t.Rows[j][idx])
	})
}

// WriteCSV writes the table with a header row. Null cells become empty
// fields.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = cellString(v)
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func valueLess(a, b cty.Value) bool {
	if a.IsNull() {
		return false
	}
	if b.IsNull() {
		return true
	}
	if a.Type() == cty.Number && b.Type() == cty.Number {
		return a.AsBigFloat().Cmp(b.AsBigFloat()) < 0
	}
	return cellString(a) < cellString(b)
}

func cellString(v cty.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Number:
		return v.AsBigFloat().Text('g', -1)
	case cty.Bool:
		return strconv.FormatBool(v.True())
	default:
		raw, err := ctyjson.Marshal(v, v.Type())
		if err != nil {
			return fmt.Sprintf("%#v", v)
		}
		return string(raw)
	}
}
