// Package aggregation exposes the aggregate engine over HTTP: it binds
// wire requests, translates them into engine directives, and classifies
// errors into caller-input vs internal failures.
package aggregation

import (
	"context"
	"errors"
	"fmt"

	v1 "github.com/strata-lab/strata/internal/api/v1"
	"github.com/strata-lab/strata/internal/core/aggregate"
	"github.com/strata-lab/strata/internal/core/condition"
	httperr "github.com/strata-lab/strata/internal/core/errors"
	"github.com/strata-lab/strata/internal/core/query"
	"github.com/strata-lab/strata/internal/core/schema"
)

// Service bridges the v1 API to the aggregate engine.
type Service struct {
	engine *aggregate.Engine
}

// NewService creates a new aggregation API service.
func NewService(engine *aggregate.Engine) *Service {
	return &Service{engine: engine}
}

// Aggregate runs one generic aggregate request against a model.
func (s *Service) Aggregate(ctx context.Context, model string, req v1.AggregateRequest) (*v1.AggregateResponse, error) {
	coll, err := s.engine.Collection(model)
	if err != nil {
		return nil, err
	}

	opts, err := toOptions(req)
	if err != nil {
		return nil, err
	}

	res, err := coll.Aggregate(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &v1.AggregateResponse{
		Model:   model,
		Columns: res.Columns,
		Grouped: res.Grouped,
		Tuple:   res.Tuple,
		Rows:    res.Rows,
	}, nil
}

// Count runs a row count against a model, optionally restricted to rows
// where one property is present.
func (s *Service) Count(ctx context.Context, model, property string) (*v1.CountResponse, error) {
	coll, err := s.engine.Collection(model)
	if err != nil {
		return nil, err
	}

	n, err := coll.Count(ctx, property, aggregate.Options{})
	if err != nil {
		return nil, err
	}

	return &v1.CountResponse{Model: model, Property: property, Count: n}, nil
}

// toOptions translates wire directives into engine options. Unknown
// predicate operators are rejected here so the storage adapter only ever
// sees well-formed conditions.
func toOptions(req v1.AggregateRequest) (aggregate.Options, error) {
	opts := aggregate.Options{
		Limit:  req.Limit,
		Offset: req.Offset,
	}

	for _, f := range req.Fields {
		opts.Fields = append(opts.Fields, query.Ref{Name: f.Name, Op: query.Operator(f.Op)})
	}

	for _, p := range req.Conditions {
		op := condition.Op(p.Op)
		if !condition.Ops[op] {
			return aggregate.Options{}, fmt.Errorf("%w: unsupported condition operator %q", query.ErrInvalidField, p.Op)
		}
		opts.Conditions = append(opts.Conditions, condition.Predicate{Field: p.Field, Op: op, Value: p.Value})
	}

	// nil keeps derivation on; a present array is explicit caller intent.
	if req.Order != nil {
		opts.Order = make([]query.Order, 0, len(req.Order))
		for _, o := range req.Order {
			dir := query.Direction(o.Direction)
			switch dir {
			case "", query.Asc:
				dir = query.Asc
			case query.Desc:
			default:
				return aggregate.Options{}, fmt.Errorf("%w: unsupported sort direction %q", query.ErrInvalidField, o.Direction)
			}
			opts.Order = append(opts.Order, query.Order{Property: o.Property, Direction: dir})
		}
	}

	return opts, nil
}

// classify maps an engine error to the API error taxonomy.
func classify(err error) (errorType string, callerFault bool) {
	var (
		mismatch     *query.TypeMismatchError
		unknownModel *schema.UnknownModelError
	)
	switch {
	case errors.As(err, &unknownModel):
		return httperr.HttpUnknownModelError, true
	case errors.As(err, &mismatch):
		return httperr.HttpTypeMismatchError, true
	case errors.Is(err, query.ErrInvalidField),
		errors.Is(err, query.ErrMissingProperty),
		errors.Is(err, query.ErrEmptyProjection):
		return httperr.HttpInvalidQueryError, true
	default:
		return httperr.HttpInternalError, false
	}
}
