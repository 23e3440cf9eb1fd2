package aggregate

import (
	"context"
	"fmt"

	"github.com/strata-lab/strata/internal/core/condition"
	"github.com/strata-lab/strata/internal/core/query"
	"github.com/strata-lab/strata/internal/core/schema"
)

// Options carries the optional directives of one aggregate call as a
// fixed-shape structure: nothing is inferred from argument position.
//
// Fields is honored only by Aggregate; the named scalar entry points
// project exactly their own field. A nil Order requests derivation from
// the collection's current order; a non-nil Order (even empty) is explicit
// caller intent and is preserved verbatim.
type Options struct {
	Conditions []condition.Predicate
	Fields     []query.Token
	Order      []query.Order
	Limit      int
	Offset     int
}

// Count returns the number of rows in scope. With a property name it
// counts only rows where that property is present; with the empty string
// it counts all rows.
func (c *Collection) Count(ctx context.Context, property string, opts Options) (int64, error) {
	tok := query.Token(query.CountAll())
	if property != "" {
		if _, err := c.model.Resolve(property); err != nil {
			return 0, fmt.Errorf("%w: %w", query.ErrInvalidField, err)
		}
		tok = query.Agg(query.OpCount, property)
	}

	value, err := c.scalar(ctx, tok, opts)
	if err != nil {
		return 0, err
	}
	n, ok := value.(int64)
	if value != nil && !ok {
		return 0, fmt.Errorf("count: unexpected result type %T", value)
	}
	return n, nil
}

// Min returns the smallest value of a comparable property in scope, or nil
// when the scope is empty.
func (c *Collection) Min(ctx context.Context, property string, opts Options) (any, error) {
	return c.scalarAggregate(ctx, query.OpMin, property, query.ComparableKinds, opts)
}

// Max returns the largest value of a comparable property in scope, or nil
// when the scope is empty.
func (c *Collection) Max(ctx context.Context, property string, opts Options) (any, error) {
	return c.scalarAggregate(ctx, query.OpMax, property, query.ComparableKinds, opts)
}

// Avg returns the mean of a numeric property in scope, or nil when the
// scope is empty.
func (c *Collection) Avg(ctx context.Context, property string, opts Options) (any, error) {
	return c.scalarAggregate(ctx, query.OpAvg, property, query.NumericKinds, opts)
}

// Sum returns the sum of a numeric property in scope, or nil when the
// scope is empty.
func (c *Collection) Sum(ctx context.Context, property string, opts Options) (any, error) {
	return c.scalarAggregate(ctx, query.OpSum, property, query.NumericKinds, opts)
}

func (c *Collection) scalarAggregate(
	ctx context.Context,
	op query.Operator,
	property string,
	allowed []schema.Kind,
	opts Options,
) (any, error) {
	if property == "" {
		return nil, fmt.Errorf("%s: %w", op, query.ErrMissingProperty)
	}
	prop, err := c.model.Resolve(property)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", query.ErrInvalidField, err)
	}
	if err := query.AssertKind(prop, allowed); err != nil {
		return nil, err
	}
	return c.scalar(ctx, query.Agg(op, property), opts)
}

// scalar runs a single-field aggregate and unwraps the one-value tuple.
// Options.Fields is dropped so the named entry points always stay scalar.
func (c *Collection) scalar(ctx context.Context, tok query.Token, opts Options) (any, error) {
	opts.Fields = nil
	res, err := c.Aggregate(ctx, opts, tok)
	if err != nil {
		return nil, err
	}
	value, _ := res.Scalar()
	return value, nil
}

// Aggregate is the generic entry point: any mixture of positional field
// tokens and option-supplied fields, normalized into one request, merged
// with the collection scope, executed, and shaped.
func (c *Collection) Aggregate(ctx context.Context, opts Options, tokens ...query.Token) (*Result, error) {
	merged := make([]query.Token, 0, len(tokens)+len(opts.Fields))
	merged = append(merged, tokens...)
	merged = append(merged, opts.Fields...)

	normalizer := query.NewNormalizer(c.model)
	fields, err := normalizer.NormalizeAll(merged)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, query.ErrEmptyProjection
	}

	order := opts.Order
	if order == nil {
		order = query.DeriveOrder(fields, c.scope.Order)
	} else if err := assertOrderSurvivesProjection(fields, order); err != nil {
		return nil, err
	}

	req := query.Merge(c.model.Name, c.model.Table, c.scope, query.Directives{
		Fields:     fields,
		Conditions: opts.Conditions,
		Order:      order,
		Limit:      opts.Limit,
		Offset:     opts.Offset,
	})

	grouped := req.Grouped()
	rows, err := c.engine.executor.Execute(ctx, req, grouped)
	if err != nil {
		return nil, err
	}
	return shape(req.Fields, rows, grouped)
}

// assertOrderSurvivesProjection rejects explicit order directives whose
// properties do not appear as plain fields in the projection. Passing them
// through would leave ordering semantics to the executor; failing fast
// keeps the request unambiguous.
func assertOrderSurvivesProjection(fields []query.Field, order []query.Order) error {
	columns := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.IsColumn() {
			columns[f.Prop.Name] = true
		}
	}
	for _, o := range order {
		if !columns[o.Property] {
			return fmt.Errorf("%w: ordered property %q is not a plain projection field", query.ErrInvalidField, o.Property)
		}
	}
	return nil
}
