package aggregate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/strata-lab/strata/internal/core/query"
	"github.com/strata-lab/strata/internal/core/schema"
)

// Temporal layouts drivers commonly hand back as text.
var temporalLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05",
}

// coerceValue converts one raw executor value into the engine type for its
// field: counts become int64, numeric aggregates become exact decimals,
// temporal aggregates become time.Time. Plain grouping columns and NULLs
// pass through untouched.
func coerceValue(f query.Field, raw any) (any, error) {
	if raw == nil || !f.IsAggregate() {
		return raw, nil
	}

	if f.Op == query.OpCount {
		return toInt64(raw)
	}

	switch f.Prop.Kind {
	case schema.KindInteger, schema.KindFloat, schema.KindDecimal:
		return toDecimal(raw)
	case schema.KindDate, schema.KindTime, schema.KindDateTime:
		return toTime(raw)
	default:
		return raw, nil
	}
}

func toInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return 0, fmt.Errorf("cannot coerce %q to integer", string(v))
		}
		return d.IntPart(), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return 0, fmt.Errorf("cannot coerce %q to integer", v)
		}
		return d.IntPart(), nil
	default:
		return 0, fmt.Errorf("cannot coerce %T to integer", raw)
	}
}

// toDecimal mirrors the numeric shapes database/sql drivers produce.
// Exact decimal arithmetic keeps avg/sum results free of float drift.
func toDecimal(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case int64:
		return decimal.NewFromInt(v), nil
	case int32:
		return decimal.NewFromInt(int64(v)), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat(float64(v)), nil
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("cannot coerce %q to decimal", string(v))
		}
		return d, nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("cannot coerce %q to decimal", v)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("cannot coerce %T to decimal", raw)
	}
}

func toTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case []byte:
		return parseTemporal(string(v))
	case string:
		return parseTemporal(v)
	default:
		return time.Time{}, fmt.Errorf("cannot coerce %T to time", raw)
	}
}

func parseTemporal(s string) (time.Time, error) {
	for _, layout := range temporalLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot coerce %q to time", s)
}
