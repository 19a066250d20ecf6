package pivot

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/loomgrid/gridcore/pkg/grid"
)

// aggregateRow computes one Row holding, per ValueField, its aggregated
// value over rows.
func aggregateRow(rows []grid.Row, fields []ValueField) grid.Row {
	out := make(grid.Row, len(fields))
	for _, vf := range fields {
		out[vf.Key] = aggregateField(rows, vf)
	}
	return out
}

func aggregateField(rows []grid.Row, vf ValueField) any {
	if vf.Aggregation == AggCount {
		return len(rows)
	}

	nums := lo.FilterMap(rows, func(r grid.Row, _ int) (float64, bool) {
		f, ok := parseNumber(r[vf.Key])
		return f, ok
	})

	switch vf.Aggregation {
	case AggSum:
		return sum(nums)
	case AggAvg:
		if len(nums) == 0 {
			return 0.0
		}
		return round2(sum(nums) / float64(len(nums)))
	case AggMin:
		if len(nums) == 0 {
			return 0.0
		}
		return lo.Min(nums)
	case AggMax:
		if len(nums) == 0 {
			return 0.0
		}
		return lo.Max(nums)
	default:
		return nil
	}
}

func sum(nums []float64) float64 {
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return total
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}

func parseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
