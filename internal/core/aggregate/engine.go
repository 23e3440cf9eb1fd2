// Package aggregate is the public entry surface of the aggregate-query
// engine: it normalizes heterogeneous aggregate directives into one typed
// request, validates property/operator compatibility, preserves the
// collection's existing order, and shapes the executor's rows into a
// scalar tuple or a grouped row set.
package aggregate

import (
	"github.com/strata-lab/strata/internal/core/condition"
	"github.com/strata-lab/strata/internal/core/query"
	"github.com/strata-lab/strata/internal/core/schema"
	"github.com/strata-lab/strata/internal/core/storage"
)

// Engine binds the loaded catalog to an executor. It is stateless across
// calls and safe for concurrent use.
type Engine struct {
	catalog  *schema.Catalog
	executor storage.Executor
}

// New creates an engine over the given catalog and executor.
func New(catalog *schema.Catalog, executor storage.Executor) *Engine {
	return &Engine{catalog: catalog, executor: executor}
}

// Collection binds a model to an empty scope. Fails if the model is not in
// the catalog.
func (e *Engine) Collection(model string) (*Collection, error) {
	m, err := e.catalog.Model(model)
	if err != nil {
		return nil, err
	}
	return &Collection{engine: e, model: m}, nil
}

// Collection is a model bound to a query scope: the filters, order and
// limits already active before an aggregate call. Scope builders return
// copies, so collections can be shared and forked freely.
type Collection struct {
	engine *Engine
	model  *schema.Model
	scope  query.Scope
}

func (c *Collection) fork() *Collection {
	next := &Collection{engine: c.engine, model: c.model}
	next.scope.Conditions = append([]condition.Predicate(nil), c.scope.Conditions...)
	next.scope.Order = append([]query.Order(nil), c.scope.Order...)
	next.scope.Limit = c.scope.Limit
	next.scope.Offset = c.scope.Offset
	return next
}

// Where returns a copy of the collection with additional predicates.
func (c *Collection) Where(preds ...condition.Predicate) *Collection {
	next := c.fork()
	next.scope.Conditions = append(next.scope.Conditions, preds...)
	return next
}

// OrderBy returns a copy of the collection ordered by the given directives.
func (c *Collection) OrderBy(order ...query.Order) *Collection {
	next := c.fork()
	next.scope.Order = append([]query.Order(nil), order...)
	return next
}

// Limit returns a copy of the collection with a row limit.
func (c *Collection) Limit(n int) *Collection {
	next := c.fork()
	next.scope.Limit = n
	return next
}

// Offset returns a copy of the collection with a row offset.
func (c *Collection) Offset(n int) *Collection {
	next := c.fork()
	next.scope.Offset = n
	return next
}

// Model returns the model the collection is bound to.
func (c *Collection) Model() *schema.Model { return c.model }
