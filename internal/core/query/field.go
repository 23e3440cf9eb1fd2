package query

import (
	"fmt"

	"github.com/strata-lab/strata/internal/core/schema"
)

// Operator is an aggregate operator applied to a field.
// The empty string marks a plain projection column.
type Operator string

const (
	OpCount Operator = "count"
	OpMin   Operator = "min"
	OpMax   Operator = "max"
	OpAvg   Operator = "avg"
	OpSum   Operator = "sum"
)

// Operators lists every supported aggregate operator.
var Operators = map[Operator]bool{
	OpCount: true,
	OpMin:   true,
	OpMax:   true,
	OpAvg:   true,
	OpSum:   true,
}

// Wildcard is the target of a row-counting aggregate that binds to no
// single property (COUNT(*)).
const Wildcard = "*"

// Token is a field token accepted into a query projection: either an
// unresolved Ref or an already-normalized Field. The two variants make the
// token shape explicit instead of sniffing argument types at runtime.
type Token interface {
	fieldToken()
}

// Ref is an unresolved field token: a property name, optionally tagged
// with an aggregate operator. The wildcard name is only meaningful with
// the count operator.
type Ref struct {
	Name string
	Op   Operator
}

func (Ref) fieldToken() {}

// Col references a bare property as a plain projection (grouping) column.
func Col(name string) Ref { return Ref{Name: name} }

// Agg references a property under an aggregate operator.
func Agg(op Operator, name string) Ref { return Ref{Name: name, Op: op} }

// CountAll references the wildcard row count.
func CountAll() Ref { return Ref{Name: Wildcard, Op: OpCount} }

// Field is the normalized form of a field token: a schema-resolved
// property, optionally bound to an aggregate operator, or the wildcard
// count. Every Field in a finalized request refers to a real property or
// to the wildcard.
type Field struct {
	Prop schema.Property // zero value when All is set
	Op   Operator
	All  bool
}

func (Field) fieldToken() {}

// IsAggregate reports whether the field carries an aggregate operator.
func (f Field) IsAggregate() bool { return f.Op != "" }

// IsColumn reports whether the field is a plain (non-aggregated)
// projection column, i.e. a grouping column.
func (f Field) IsColumn() bool { return f.Op == "" && !f.All }

// Alias is the result column name the field projects under.
func (f Field) Alias() string {
	switch {
	case f.All:
		return "count_all"
	case f.Op != "":
		return fmt.Sprintf("%s_%s", f.Op, f.Prop.Name)
	default:
		return f.Prop.Name
	}
}
