package query

import (
	"fmt"

	"github.com/strata-lab/strata/internal/core/schema"
)

// ComparableKinds are the storage kinds min and max accept: anything with
// a total order, temporal kinds included.
var ComparableKinds = []schema.Kind{
	schema.KindInteger,
	schema.KindFloat,
	schema.KindDecimal,
	schema.KindDateTime,
	schema.KindDate,
	schema.KindTime,
}

// NumericKinds are the storage kinds avg and sum accept. Temporal kinds
// are excluded: averaging or summing dates is meaningless.
var NumericKinds = []schema.Kind{
	schema.KindInteger,
	schema.KindFloat,
	schema.KindDecimal,
}

// AssertKind checks that a resolved property's storage kind is a member of
// the allowed set, returning *TypeMismatchError otherwise.
func AssertKind(prop schema.Property, allowed []schema.Kind) error {
	if prop.Name == "" {
		return fmt.Errorf("%w", ErrMissingProperty)
	}
	for _, k := range allowed {
		if prop.Kind == k {
			return nil
		}
	}
	return &TypeMismatchError{Property: prop.Name, Kind: prop.Kind, Allowed: allowed}
}
