// Package condition defines the predicate DSL accepted by the query core.
// The core carries predicates verbatim; only storage adapters interpret them.
package condition

// Op is a comparison operator.
type Op string

const (
	OpEq      Op = "eq"
	OpNe      Op = "ne"
	OpGt      Op = "gt"
	OpGte     Op = "gte"
	OpLt      Op = "lt"
	OpLte     Op = "lte"
	OpIn      Op = "in"
	OpLike    Op = "like"
	OpNull    Op = "null"
	OpNotNull Op = "notnull"
)

// Ops lists every supported comparison operator.
var Ops = map[Op]bool{
	OpEq:      true,
	OpNe:      true,
	OpGt:      true,
	OpGte:     true,
	OpLt:      true,
	OpLte:     true,
	OpIn:      true,
	OpLike:    true,
	OpNull:    true,
	OpNotNull: true,
}

// Predicate is a single field comparison. Predicates in one set combine
// with AND semantics.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// Eq builds an equality predicate.
func Eq(field string, value any) Predicate { return Predicate{Field: field, Op: OpEq, Value: value} }

// Ne builds an inequality predicate.
func Ne(field string, value any) Predicate { return Predicate{Field: field, Op: OpNe, Value: value} }

// Gt builds a greater-than predicate.
func Gt(field string, value any) Predicate { return Predicate{Field: field, Op: OpGt, Value: value} }

// Gte builds a greater-or-equal predicate.
func Gte(field string, value any) Predicate { return Predicate{Field: field, Op: OpGte, Value: value} }

// Lt builds a less-than predicate.
func Lt(field string, value any) Predicate { return Predicate{Field: field, Op: OpLt, Value: value} }

// Lte builds a less-or-equal predicate.
func Lte(field string, value any) Predicate { return Predicate{Field: field, Op: OpLte, Value: value} }

// In builds a set-membership predicate.
func In(field string, values ...any) Predicate {
	return Predicate{Field: field, Op: OpIn, Value: values}
}

// Like builds a pattern-match predicate.
func Like(field string, pattern string) Predicate {
	return Predicate{Field: field, Op: OpLike, Value: pattern}
}

// Null builds an IS NULL predicate.
func Null(field string) Predicate { return Predicate{Field: field, Op: OpNull} }

// NotNull builds an IS NOT NULL predicate.
func NotNull(field string) Predicate { return Predicate{Field: field, Op: OpNotNull} }
