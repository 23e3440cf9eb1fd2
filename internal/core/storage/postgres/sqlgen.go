package postgres

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/strata-lab/strata/internal/core/condition"
	"github.com/strata-lab/strata/internal/core/query"
)

// buildSQL renders a normalized aggregate request to one SELECT statement
// with $n placeholders. distinct turns the request's plain fields into a
// GROUP BY clause.
func buildSQL(req query.Request, distinct bool) (string, []any, error) {
	if len(req.Fields) == 0 {
		return "", nil, fmt.Errorf("request has no fields")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(selectList(req.Fields))
	sb.WriteString(" FROM ")
	sb.WriteString(pq.QuoteIdentifier(req.Table))

	var args []any
	if len(req.Conditions) > 0 {
		where, whereArgs, err := whereClause(req.Conditions)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
		args = whereArgs
	}

	if distinct {
		if cols := groupByList(req.Fields); cols != "" {
			sb.WriteString(" GROUP BY ")
			sb.WriteString(cols)
		}
	}

	if len(req.Order) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(orderList(req.Order))
	}

	if req.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", req.Limit)
	}
	if req.Offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", req.Offset)
	}

	return sb.String(), args, nil
}

func selectList(fields []query.Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		switch {
		case f.All:
			parts[i] = fmt.Sprintf("count(*) AS %s", pq.QuoteIdentifier(f.Alias()))
		case f.IsAggregate():
			parts[i] = fmt.Sprintf("%s(%s) AS %s",
				f.Op, pq.QuoteIdentifier(f.Prop.Name), pq.QuoteIdentifier(f.Alias()))
		default:
			parts[i] = pq.QuoteIdentifier(f.Prop.Name)
		}
	}
	return strings.Join(parts, ", ")
}

func groupByList(fields []query.Field) string {
	var parts []string
	for _, f := range fields {
		if f.IsColumn() {
			parts = append(parts, pq.QuoteIdentifier(f.Prop.Name))
		}
	}
	return strings.Join(parts, ", ")
}

func orderList(order []query.Order) string {
	parts := make([]string, len(order))
	for i, o := range order {
		dir := "ASC"
		if o.Direction == query.Desc {
			dir = "DESC"
		}
		parts[i] = fmt.Sprintf("%s %s", pq.QuoteIdentifier(o.Property), dir)
	}
	return strings.Join(parts, ", ")
}

// whereClause renders predicates AND-joined. Placeholder numbering starts
// at $1; list values of an IN predicate expand to one placeholder each.
func whereClause(preds []condition.Predicate) (string, []any, error) {
	var (
		parts []string
		args  []any
	)
	next := func() string { return fmt.Sprintf("$%d", len(args)) }

	for _, p := range preds {
		if p.Field == "" {
			return "", nil, fmt.Errorf("predicate field must not be empty")
		}
		col := pq.QuoteIdentifier(p.Field)

		switch p.Op {
		case condition.OpEq:
			args = append(args, p.Value)
			parts = append(parts, fmt.Sprintf("%s = %s", col, next()))
		case condition.OpNe:
			args = append(args, p.Value)
			parts = append(parts, fmt.Sprintf("%s <> %s", col, next()))
		case condition.OpGt:
			args = append(args, p.Value)
			parts = append(parts, fmt.Sprintf("%s > %s", col, next()))
		case condition.OpGte:
			args = append(args, p.Value)
			parts = append(parts, fmt.Sprintf("%s >= %s", col, next()))
		case condition.OpLt:
			args = append(args, p.Value)
			parts = append(parts, fmt.Sprintf("%s < %s", col, next()))
		case condition.OpLte:
			args = append(args, p.Value)
			parts = append(parts, fmt.Sprintf("%s <= %s", col, next()))
		case condition.OpLike:
			args = append(args, p.Value)
			parts = append(parts, fmt.Sprintf("%s LIKE %s", col, next()))
		case condition.OpNull:
			parts = append(parts, fmt.Sprintf("%s IS NULL", col))
		case condition.OpNotNull:
			parts = append(parts, fmt.Sprintf("%s IS NOT NULL", col))
		case condition.OpIn:
			values, ok := p.Value.([]any)
			if !ok || len(values) == 0 {
				return "", nil, fmt.Errorf("IN predicate on %q needs a non-empty value list", p.Field)
			}
			holders := make([]string, len(values))
			for i, v := range values {
				args = append(args, v)
				holders[i] = next()
			}
			parts = append(parts, fmt.Sprintf("%s IN (%s)", col, strings.Join(holders, ", ")))
		default:
			return "", nil, fmt.Errorf("unsupported predicate operator %q", p.Op)
		}
	}

	return strings.Join(parts, " AND "), args, nil
}
