package storage

import (
	"context"

	"github.com/strata-lab/strata/internal/core/query"
)

// Executor runs a normalized aggregate request against the backing store
// and returns the raw result rows, one value per projected field in field
// order. distinct requests GROUP-BY-like execution over the request's
// plain fields. Execution failures (connectivity, syntax) propagate to the
// caller without reinterpretation.
type Executor interface {
	Execute(ctx context.Context, req query.Request, distinct bool) ([][]any, error)
}
