package aggregate

import (
	"fmt"

	"github.com/strata-lab/strata/internal/core/query"
)

// Result is the shaped outcome of an aggregate request: either one tuple
// of scalar values (no grouping column in the projection) or an ordered
// sequence of per-group tuples. Callers branch on Grouped explicitly
// instead of relying on a polymorphic return.
type Result struct {
	// Columns are the projected column aliases, in field order.
	Columns []string

	// Grouped marks a GROUP-BY-like result. Rows is populated when set,
	// Tuple otherwise.
	Grouped bool

	Tuple []any
	Rows  [][]any
}

// Scalar returns the first value of a non-grouped result. The second
// return is false for grouped results.
func (r *Result) Scalar() (any, bool) {
	if r.Grouped || len(r.Tuple) == 0 {
		return nil, !r.Grouped
	}
	return r.Tuple[0], true
}

// shape decides the result cardinality from the finalized field list and
// coerces raw executor values into engine types.
//
// A grouping column present means grouped aggregation: the full ordered
// row set is returned. Otherwise the request is a pure scalar aggregation
// and only the first row is meaningful; well-formed input cannot produce
// more than one row there.
func shape(fields []query.Field, rows [][]any, grouped bool) (*Result, error) {
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Alias()
	}

	if grouped {
		shaped := make([][]any, len(rows))
		for i, row := range rows {
			tuple, err := coerceRow(fields, row)
			if err != nil {
				return nil, err
			}
			shaped[i] = tuple
		}
		return &Result{Columns: columns, Grouped: true, Rows: shaped}, nil
	}

	if len(rows) == 0 {
		// Scalar aggregation over an empty scope: one tuple of nils.
		return &Result{Columns: columns, Tuple: make([]any, len(fields))}, nil
	}

	tuple, err := coerceRow(fields, rows[0])
	if err != nil {
		return nil, err
	}
	return &Result{Columns: columns, Tuple: tuple}, nil
}

func coerceRow(fields []query.Field, row []any) ([]any, error) {
	if len(row) != len(fields) {
		return nil, fmt.Errorf("executor returned %d values for %d fields", len(row), len(fields))
	}
	tuple := make([]any, len(row))
	for i, raw := range row {
		v, err := coerceValue(fields[i], raw)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", fields[i].Alias(), err)
		}
		tuple[i] = v
	}
	return tuple, nil
}
