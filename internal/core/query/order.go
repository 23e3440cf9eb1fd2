package query

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order pairs a property name with a sort direction.
type Order struct {
	Property  string
	Direction Direction
}

// OrderAsc builds an ascending order directive.
func OrderAsc(property string) Order { return Order{Property: property, Direction: Asc} }

// OrderDesc builds a descending order directive.
func OrderDesc(property string) Order { return Order{Property: property, Direction: Desc} }

// DeriveOrder derives the implicit sort order for a normalized field list
// from the context's existing order. A caller aggregating over an
// already-ordered collection must not silently lose that order where the
// ordering property survives projection.
//
// For each plain (non-aggregated) field, the existing directive is kept if
// one exists, else a default-ascending directive is emitted. Aggregate
// fields never contribute. Callers that supplied an explicit order skip
// this derivation entirely.
func DeriveOrder(fields []Field, current []Order) []Order {
	byProperty := make(map[string]Order, len(current))
	for _, o := range current {
		if _, exists := byProperty[o.Property]; exists {
			continue
		}
		if o.Direction == "" {
			o.Direction = Asc
		}
		byProperty[o.Property] = o
	}

	var derived []Order
	for _, f := range fields {
		if !f.IsColumn() {
			continue
		}
		if o, ok := byProperty[f.Prop.Name]; ok {
			derived = append(derived, o)
			continue
		}
		derived = append(derived, Order{Property: f.Prop.Name, Direction: Asc})
	}
	return derived
}
