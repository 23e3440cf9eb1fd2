package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/strata-lab/strata/internal/core/condition"
	"github.com/strata-lab/strata/internal/core/query"
	"github.com/strata-lab/strata/internal/core/schema"
)

// fakeExecutor records the request it was handed and plays back canned rows.
type fakeExecutor struct {
	rows [][]any
	err  error

	calls    int
	lastReq  query.Request
	distinct bool
}

func (f *fakeExecutor) Execute(_ context.Context, req query.Request, distinct bool) ([][]any, error) {
	f.calls++
	f.lastReq = req
	f.distinct = distinct
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func testEngine(t *testing.T, exec *fakeExecutor) *Collection {
	t.Helper()
	m, err := schema.NewModel("user", "users", []schema.Property{
		{Name: "age", Kind: schema.KindInteger},
		{Name: "gender", Kind: schema.KindString},
		{Name: "address", Kind: schema.KindString},
		{Name: "balance", Kind: schema.KindDecimal},
		{Name: "created_at", Kind: schema.KindDateTime},
	})
	require.NoError(t, err)
	catalog, err := schema.NewCatalog(m)
	require.NoError(t, err)

	coll, err := New(catalog, exec).Collection("user")
	require.NoError(t, err)
	return coll
}

func TestCollection_Count(t *testing.T) {
	t.Run("no property counts all rows", func(t *testing.T) {
		exec := &fakeExecutor{rows: [][]any{{int64(42)}}}
		coll := testEngine(t, exec)

		n, err := coll.Count(context.Background(), "", Options{})
		require.NoError(t, err)
		require.Equal(t, int64(42), n)

		require.Equal(t, 1, exec.calls)
		require.False(t, exec.distinct)
		require.Len(t, exec.lastReq.Fields, 1)
		require.True(t, exec.lastReq.Fields[0].All)
		require.Equal(t, query.OpCount, exec.lastReq.Fields[0].Op)
	})

	t.Run("property count binds the resolved property", func(t *testing.T) {
		exec := &fakeExecutor{rows: [][]any{{int64(7)}}}
		coll := testEngine(t, exec)

		n, err := coll.Count(context.Background(), "address", Options{})
		require.NoError(t, err)
		require.Equal(t, int64(7), n)
		require.Equal(t, "address", exec.lastReq.Fields[0].Prop.Name)
		require.False(t, exec.lastReq.Fields[0].All)
	})

	t.Run("numeric text coerces to int64", func(t *testing.T) {
		exec := &fakeExecutor{rows: [][]any{{[]byte("19")}}}
		coll := testEngine(t, exec)

		n, err := coll.Count(context.Background(), "", Options{})
		require.NoError(t, err)
		require.Equal(t, int64(19), n)
	})

	t.Run("unknown property never reaches executor", func(t *testing.T) {
		exec := &fakeExecutor{}
		coll := testEngine(t, exec)

		_, err := coll.Count(context.Background(), "nope", Options{})
		require.ErrorIs(t, err, query.ErrInvalidField)
		require.Zero(t, exec.calls)
	})

	t.Run("empty scope counts zero", func(t *testing.T) {
		exec := &fakeExecutor{rows: nil}
		coll := testEngine(t, exec)

		n, err := coll.Count(context.Background(), "", Options{})
		require.NoError(t, err)
		require.Zero(t, n)
	})
}

func TestCollection_ScalarAggregates(t *testing.T) {
	t.Run("min on integer returns decimal", func(t *testing.T) {
		exec := &fakeExecutor{rows: [][]any{{int64(3)}}}
		coll := testEngine(t, exec)

		v, err := coll.Min(context.Background(), "age", Options{})
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(3).Equal(v.(decimal.Decimal)))
		require.Equal(t, query.OpMin, exec.lastReq.Fields[0].Op)
	})

	t.Run("max on datetime returns time", func(t *testing.T) {
		latest := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
		exec := &fakeExecutor{rows: [][]any{{latest}}}
		coll := testEngine(t, exec)

		v, err := coll.Max(context.Background(), "created_at", Options{})
		require.NoError(t, err)
		require.Equal(t, latest, v)
	})

	t.Run("avg on datetime is a type mismatch", func(t *testing.T) {
		exec := &fakeExecutor{}
		coll := testEngine(t, exec)

		_, err := coll.Avg(context.Background(), "created_at", Options{})
		var mismatch *query.TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		require.Zero(t, exec.calls, "type mismatch must never execute")
	})

	t.Run("sum on string is a type mismatch", func(t *testing.T) {
		exec := &fakeExecutor{}
		coll := testEngine(t, exec)

		_, err := coll.Sum(context.Background(), "gender", Options{})
		var mismatch *query.TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		require.Zero(t, exec.calls)
	})

	t.Run("missing property", func(t *testing.T) {
		exec := &fakeExecutor{}
		coll := testEngine(t, exec)

		_, err := coll.Min(context.Background(), "", Options{})
		require.ErrorIs(t, err, query.ErrMissingProperty)
		require.Zero(t, exec.calls)
	})

	t.Run("sum over empty scope returns nil", func(t *testing.T) {
		exec := &fakeExecutor{rows: [][]any{{nil}}}
		coll := testEngine(t, exec)

		v, err := coll.Sum(context.Background(), "balance", Options{})
		require.NoError(t, err)
		require.Nil(t, v)
	})
}

func TestCollection_Aggregate_ScalarTuple(t *testing.T) {
	exec := &fakeExecutor{rows: [][]any{{int64(18), int64(99), []byte("4242.50")}}}
	coll := testEngine(t, exec)

	res, err := coll.Aggregate(context.Background(), Options{},
		query.Agg(query.OpMin, "age"),
		query.Agg(query.OpMax, "age"),
		query.Agg(query.OpSum, "balance"),
	)
	require.NoError(t, err)

	require.False(t, res.Grouped)
	require.Nil(t, res.Rows)
	require.Equal(t, []string{"min_age", "max_age", "sum_balance"}, res.Columns)
	require.Len(t, res.Tuple, 3)
	require.True(t, decimal.NewFromInt(18).Equal(res.Tuple[0].(decimal.Decimal)))
	require.True(t, decimal.NewFromInt(99).Equal(res.Tuple[1].(decimal.Decimal)))
	require.True(t, decimal.RequireFromString("4242.50").Equal(res.Tuple[2].(decimal.Decimal)))

	require.False(t, exec.distinct, "scalar aggregation must not request distinct rows")
	require.Empty(t, exec.lastReq.Order, "aggregate-only projection derives no order")
}

func TestCollection_Aggregate_GroupedRows(t *testing.T) {
	exec := &fakeExecutor{rows: [][]any{
		{31.5, "f"},
		{28.25, "m"},
	}}
	coll := testEngine(t, exec)

	res, err := coll.Aggregate(context.Background(),
		Options{Fields: []query.Token{query.Col("gender")}},
		query.Agg(query.OpAvg, "age"),
	)
	require.NoError(t, err)

	require.True(t, res.Grouped)
	require.True(t, exec.distinct, "grouping column requires distinct rows execution")
	require.Equal(t, []string{"avg_age", "gender"}, res.Columns)
	require.Len(t, res.Rows, 2)
	require.True(t, decimal.NewFromFloat(31.5).Equal(res.Rows[0][0].(decimal.Decimal)))
	require.Equal(t, "f", res.Rows[0][1])
	require.True(t, decimal.NewFromFloat(28.25).Equal(res.Rows[1][0].(decimal.Decimal)))
	require.Equal(t, "m", res.Rows[1][1])
}

func TestCollection_Aggregate_EmptyProjection(t *testing.T) {
	exec := &fakeExecutor{}
	coll := testEngine(t, exec)

	_, err := coll.Aggregate(context.Background(), Options{})
	require.ErrorIs(t, err, query.ErrEmptyProjection)
	require.Zero(t, exec.calls, "empty projection must fail before the executor")
}

func TestCollection_Aggregate_OrderHandling(t *testing.T) {
	t.Run("scope order survives projection", func(t *testing.T) {
		exec := &fakeExecutor{}
		coll := testEngine(t, exec).OrderBy(query.OrderDesc("gender"))

		_, err := coll.Aggregate(context.Background(), Options{},
			query.Col("gender"),
			query.Agg(query.OpCount, "age"),
		)
		require.NoError(t, err)
		require.Equal(t, []query.Order{query.OrderDesc("gender")}, exec.lastReq.Order)
	})

	t.Run("explicit order skips derivation", func(t *testing.T) {
		exec := &fakeExecutor{}
		coll := testEngine(t, exec).OrderBy(query.OrderDesc("gender"))

		_, err := coll.Aggregate(context.Background(),
			Options{Order: []query.Order{query.OrderAsc("gender")}},
			query.Col("gender"),
			query.CountAll(),
		)
		require.NoError(t, err)
		require.Equal(t, []query.Order{query.OrderAsc("gender")}, exec.lastReq.Order)
	})

	t.Run("explicit empty order is preserved verbatim", func(t *testing.T) {
		exec := &fakeExecutor{}
		coll := testEngine(t, exec).OrderBy(query.OrderDesc("gender"))

		_, err := coll.Aggregate(context.Background(),
			Options{Order: []query.Order{}},
			query.Col("gender"),
			query.CountAll(),
		)
		require.NoError(t, err)
		require.Empty(t, exec.lastReq.Order)
	})

	t.Run("explicit order off the projection fails fast", func(t *testing.T) {
		exec := &fakeExecutor{}
		coll := testEngine(t, exec)

		_, err := coll.Aggregate(context.Background(),
			Options{Order: []query.Order{query.OrderAsc("age")}},
			query.Agg(query.OpMin, "age"),
			query.Agg(query.OpMax, "age"),
		)
		require.ErrorIs(t, err, query.ErrInvalidField)
		require.Zero(t, exec.calls)
	})
}

func TestCollection_Aggregate_ScopeMerging(t *testing.T) {
	exec := &fakeExecutor{}
	coll := testEngine(t, exec).
		Where(condition.Gt("age", 18)).
		Limit(50)

	_, err := coll.Aggregate(context.Background(),
		Options{Conditions: []condition.Predicate{condition.Eq("gender", "f")}},
		query.CountAll(),
	)
	require.NoError(t, err)

	require.Equal(t, []condition.Predicate{
		condition.Gt("age", 18),
		condition.Eq("gender", "f"),
	}, exec.lastReq.Conditions)
	require.Equal(t, 50, exec.lastReq.Limit)
	require.Equal(t, "users", exec.lastReq.Table)
}

func TestCollection_Aggregate_DuplicateTokensCollapse(t *testing.T) {
	exec := &fakeExecutor{rows: [][]any{{int64(1), int64(2)}}}
	coll := testEngine(t, exec)

	res, err := coll.Aggregate(context.Background(),
		Options{Fields: []query.Token{query.Agg(query.OpMin, "age")}},
		query.Agg(query.OpMin, "age"),
		query.Agg(query.OpMax, "age"),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"min_age", "max_age"}, res.Columns)
}

func TestCollection_Aggregate_ExecutorErrorsPropagate(t *testing.T) {
	boom := errors.New("connection reset")
	exec := &fakeExecutor{err: boom}
	coll := testEngine(t, exec)

	_, err := coll.Aggregate(context.Background(), Options{}, query.CountAll())
	require.ErrorIs(t, err, boom)
}

func TestCollection_ForkIsolation(t *testing.T) {
	exec := &fakeExecutor{}
	base := testEngine(t, exec)

	filtered := base.Where(condition.Eq("gender", "f"))
	_, err := base.Count(context.Background(), "", Options{})
	require.NoError(t, err)
	require.Empty(t, exec.lastReq.Conditions, "fork must not leak into the base collection")

	_, err = filtered.Count(context.Background(), "", Options{})
	require.NoError(t, err)
	require.Len(t, exec.lastReq.Conditions, 1)
}
