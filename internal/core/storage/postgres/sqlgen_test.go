package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strata-lab/strata/internal/core/condition"
	"github.com/strata-lab/strata/internal/core/query"
	"github.com/strata-lab/strata/internal/core/schema"
)

func testFields(t *testing.T, tokens ...query.Token) []query.Field {
	t.Helper()
	m, err := schema.NewModel("user", "users", []schema.Property{
		{Name: "age", Kind: schema.KindInteger},
		{Name: "gender", Kind: schema.KindString},
		{Name: "balance", Kind: schema.KindDecimal},
	})
	require.NoError(t, err)
	fields, err := query.NewNormalizer(m).NormalizeAll(tokens)
	require.NoError(t, err)
	return fields
}

func TestBuildSQL(t *testing.T) {
	tests := []struct {
		name     string
		req      query.Request
		distinct bool
		wantSQL  string
		wantArgs []any
	}{
		{
			name: "count all",
			req: query.Request{
				Table:  "users",
				Fields: testFields(t, query.CountAll()),
			},
			wantSQL: `SELECT count(*) AS "count_all" FROM "users"`,
		},
		{
			name: "scalar aggregates with conditions",
			req: query.Request{
				Table: "users",
				Fields: testFields(t,
					query.Agg(query.OpMin, "age"),
					query.Agg(query.OpMax, "age"),
				),
				Conditions: []condition.Predicate{
					condition.Gt("age", 18),
					condition.NotNull("gender"),
				},
			},
			wantSQL:  `SELECT min("age") AS "min_age", max("age") AS "max_age" FROM "users" WHERE "age" > $1 AND "gender" IS NOT NULL`,
			wantArgs: []any{18},
		},
		{
			name: "grouped with order and limit",
			req: query.Request{
				Table: "users",
				Fields: testFields(t,
					query.Col("gender"),
					query.Agg(query.OpAvg, "age"),
				),
				Order: []query.Order{query.OrderDesc("gender")},
				Limit: 100, Offset: 10,
			},
			distinct: true,
			wantSQL:  `SELECT "gender", avg("age") AS "avg_age" FROM "users" GROUP BY "gender" ORDER BY "gender" DESC LIMIT 100 OFFSET 10`,
		},
		{
			name: "in predicate expands placeholders",
			req: query.Request{
				Table:  "users",
				Fields: testFields(t, query.Agg(query.OpSum, "balance")),
				Conditions: []condition.Predicate{
					condition.In("gender", "f", "m"),
				},
			},
			wantSQL:  `SELECT sum("balance") AS "sum_balance" FROM "users" WHERE "gender" IN ($1, $2)`,
			wantArgs: []any{"f", "m"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sql, args, err := buildSQL(tc.req, tc.distinct)
			require.NoError(t, err)
			require.Equal(t, tc.wantSQL, sql)
			require.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestBuildSQL_Errors(t *testing.T) {
	t.Run("no fields", func(t *testing.T) {
		_, _, err := buildSQL(query.Request{Table: "users"}, false)
		require.Error(t, err)
	})

	t.Run("empty IN list", func(t *testing.T) {
		req := query.Request{
			Table:      "users",
			Fields:     testFields(t, query.CountAll()),
			Conditions: []condition.Predicate{condition.In("gender")},
		}
		_, _, err := buildSQL(req, false)
		require.ErrorContains(t, err, "non-empty value list")
	})

	t.Run("unknown operator", func(t *testing.T) {
		req := query.Request{
			Table:      "users",
			Fields:     testFields(t, query.CountAll()),
			Conditions: []condition.Predicate{{Field: "age", Op: "between"}},
		}
		_, _, err := buildSQL(req, false)
		require.ErrorContains(t, err, "unsupported predicate operator")
	})

	t.Run("empty predicate field", func(t *testing.T) {
		req := query.Request{
			Table:      "users",
			Fields:     testFields(t, query.CountAll()),
			Conditions: []condition.Predicate{{Op: condition.OpEq, Value: 1}},
		}
		_, _, err := buildSQL(req, false)
		require.ErrorContains(t, err, "field must not be empty")
	})
}
