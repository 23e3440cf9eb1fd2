// Package v1 defines the JSON wire types of the aggregate query API.
package v1

// FieldRef is one field token: a property name, optionally tagged with an
// aggregate operator. Name "*" is the wildcard row count.
type FieldRef struct {
	Name string `json:"name" binding:"required"`
	Op   string `json:"op,omitempty"`
}

// Predicate is one filter clause, carried verbatim to the storage adapter.
type Predicate struct {
	Field string `json:"field" binding:"required"`
	Op    string `json:"op" binding:"required"`
	Value any    `json:"value,omitempty"`
}

// OrderDirective pairs a property with a sort direction.
type OrderDirective struct {
	Property  string `json:"property" binding:"required"`
	Direction string `json:"direction,omitempty"`
}

// AggregateRequest is the body of POST /v1/models/:model/aggregate.
// A null Order asks the engine to derive ordering from the projection;
// an explicit array (even empty) is preserved verbatim.
type AggregateRequest struct {
	Fields     []FieldRef       `json:"fields"`
	Conditions []Predicate      `json:"conditions,omitempty"`
	Order      []OrderDirective `json:"order,omitempty"`
	Limit      int              `json:"limit,omitempty"`
	Offset     int              `json:"offset,omitempty"`
}

// AggregateResponse is the shaped result: a single tuple for scalar
// aggregations, ordered rows for grouped ones. Callers branch on Grouped.
type AggregateResponse struct {
	Model   string   `json:"model"`
	Columns []string `json:"columns"`
	Grouped bool     `json:"grouped"`
	Tuple   []any    `json:"tuple,omitempty"`
	Rows    [][]any  `json:"rows,omitempty"`
}

// CountResponse is the body of GET /v1/models/:model/count.
type CountResponse struct {
	Model    string `json:"model"`
	Property string `json:"property,omitempty"`
	Count    int64  `json:"count"`
}
