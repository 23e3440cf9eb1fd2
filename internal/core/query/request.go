package query

import "github.com/strata-lab/strata/internal/core/condition"

// Scope is the filter/order/limit context already active on a collection
// before an aggregate call. It is the base a new request merges over.
type Scope struct {
	Conditions []condition.Predicate
	Order      []Order
	Limit      int
	Offset     int
}

// Directives are the normalized aggregate directives of one call: the
// overrides merged on top of a scope.
type Directives struct {
	Fields     []Field
	Conditions []condition.Predicate
	Order      []Order
	Limit      int
	Offset     int
}

// Request is the fully normalized unit of work handed to the executor.
// Constructed fresh per call via Merge and discarded after execution.
type Request struct {
	Model      string
	Table      string
	Fields     []Field
	Conditions []condition.Predicate
	Order      []Order
	Limit      int
	Offset     int
}

// Grouped reports whether the request carries at least one plain
// (non-aggregated) field, implying GROUP-BY-like execution and a
// collection-shaped result.
func (r Request) Grouped() bool {
	for _, f := range r.Fields {
		if f.IsColumn() {
			return true
		}
	}
	return false
}

// Merge produces a new immutable request from the current scope and the
// call's directives. Scope conditions and limits are the base; the call's
// fields, order and conditions are layered on top. Neither input is
// mutated.
func Merge(model, table string, scope Scope, d Directives) Request {
	conditions := make([]condition.Predicate, 0, len(scope.Conditions)+len(d.Conditions))
	conditions = append(conditions, scope.Conditions...)
	conditions = append(conditions, d.Conditions...)

	fields := make([]Field, len(d.Fields))
	copy(fields, d.Fields)

	order := make([]Order, len(d.Order))
	copy(order, d.Order)

	limit := scope.Limit
	if d.Limit > 0 {
		limit = d.Limit
	}
	offset := scope.Offset
	if d.Offset > 0 {
		offset = d.Offset
	}

	return Request{
		Model:      model,
		Table:      table,
		Fields:     fields,
		Conditions: conditions,
		Order:      order,
		Limit:      limit,
		Offset:     offset,
	}
}
