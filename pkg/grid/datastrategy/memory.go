package datastrategy

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/loomgrid/gridcore/pkg/models"
)

// InMemory is the in-memory Data Strategy variant: it holds the
// full dataset and a derived, post-filter-sort view.
type InMemory struct {
	columns      []models.Column
	fullData     []models.Row
	filteredData []models.Row
	query        models.Query
}

// NewInMemory constructs an InMemory strategy over data, using columns for
// summary aggregation and filter-option extraction.
func NewInMemory(columns []models.Column, data []models.Row) *InMemory {
	return &InMemory{
		columns:      columns,
		fullData:     data,
		filteredData: data,
	}
}

func (m *InMemory) Bootstrap() (int, error) {
	return len(m.fullData), nil
}

func (m *InMemory) GetRow(rowIndex int) (models.Row, bool) {
	if rowIndex < 0 || rowIndex >= len(m.filteredData) {
		return nil, false
	}
	return m.filteredData[rowIndex], true
}

// EnsurePageForRow is a no-op for InMemory: every row is already resident.
func (m *InMemory) EnsurePageForRow(rowIndex int) error {
	return nil
}

func (m *InMemory) ApplyQuery(q models.Query) (int, bool, error) {
	m.query = q.Clone()

	filtered := lo.Filter(m.fullData, func(row models.Row, _ int) bool {
		return rowPasses(row, m.query)
	})
	if m.query.Sort != nil {
		sortRows(filtered, *m.query.Sort)
	}
	m.filteredData = filtered

	return len(m.filteredData), true, nil
}

func (m *InMemory) GetSummary(q *models.Query) (models.Row, error) {
	rows := m.filteredData
	if q != nil {
		rows = lo.Filter(m.fullData, func(row models.Row, _ int) bool {
			return rowPasses(row, *q)
		})
	}
	return computeSummary(m.columns, rows), nil
}

func (m *InMemory) GetTotalRows() int {
	return len(m.filteredData)
}

func (m *InMemory) GetFilterOptions(key string) []string {
	values := lo.Map(m.fullData, func(row models.Row, _ int) string {
		return stringifyCell(row[key])
	})
	return lo.Uniq(values)
}

// rowPasses applies the global filter text and every per-column filter.
// A row must satisfy all of them (AND semantics).
func rowPasses(row models.Row, q models.Query) bool {
	if q.FilterText != "" {
		needle := strings.ToLower(q.FilterText)
		matched := false
		for _, v := range row {
			if strings.Contains(strings.ToLower(stringifyCell(v)), needle) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for key, filter := range q.ColumnFilters {
		if !columnFilterPasses(stringifyCell(row[key]), filter) {
			return false
		}
	}

	return true
}

func columnFilterPasses(cell string, filter models.ColumnFilter) bool {
	switch f := filter.(type) {
	case models.SetFilter:
		if len(f.Values) == 0 {
			return true
		}
		return lo.Contains(f.Values, cell)

	case models.TextFilter:
		return strings.Contains(strings.ToLower(cell), strings.ToLower(f.Value))

	case models.DateRangeFilter:
		if f.Start != nil && cell < *f.Start {
			return false
		}
		if f.End != nil && cell > *f.End {
			return false
		}
		return true

	case models.NumberRangeFilter:
		x, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return false
		}
		// Inclusive both ends: min <= x <= max.
		if f.Min != nil && x < *f.Min {
			return false
		}
		if f.Max != nil && x > *f.Max {
			return false
		}
		return true

	default:
		return true
	}
}

// sortRows compares numerically when both sides parse to finite numbers,
// otherwise falls back to a case-insensitive string comparison of the
// lowercased values by byte order (no locale collation); desc reverses
// the result.
func sortRows(rows []models.Row, s models.Sort) {
	sort.SliceStable(rows, func(i, j int) bool {
		less := compareCells(rows[i][s.Key], rows[j][s.Key])
		if s.Direction == models.Desc {
			return less > 0
		}
		return less < 0
	})
}

func compareCells(a, b any) int {
	as, bs := stringifyCell(a), stringifyCell(b)
	af, aerr := strconv.ParseFloat(as, 64)
	bf, berr := strconv.ParseFloat(bs, 64)
	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(as), strings.ToLower(bs))
}

func stringifyCell(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// computeSummary aggregates rows per each column's SummaryType.
func computeSummary(columns []models.Column, rows []models.Row) models.Row {
	summary := make(models.Row, len(columns))
	for _, col := range columns {
		if col.SummaryType == models.SummaryNone || col.SummaryType == "" {
			continue
		}
		summary[col.Key] = aggregate(col, rows)
	}
	return summary
}

func aggregate(col models.Column, rows []models.Row) any {
	switch col.SummaryType {
	case models.SummaryCount:
		return len(rows)
	}

	nums := make([]float64, 0, len(rows))
	for _, r := range rows {
		if f, err := strconv.ParseFloat(stringifyCell(r[col.Key]), 64); err == nil {
			nums = append(nums, f)
		}
	}

	switch col.SummaryType {
	case models.SummarySum:
		total := 0.0
		for _, n := range nums {
			total += n
		}
		return total
	case models.SummaryAvg:
		if len(nums) == 0 {
			return 0.0
		}
		total := 0.0
		for _, n := range nums {
			total += n
		}
		return round2(total / float64(len(nums)))
	case models.SummaryMax:
		if len(nums) == 0 {
			return 0.0
		}
		max := nums[0]
		for _, n := range nums[1:] {
			if n > max {
				max = n
			}
		}
		return max
	case models.SummaryMin:
		if len(nums) == 0 {
			return 0.0
		}
		min := nums[0]
		for _, n := range nums[1:] {
			if n < min {
				min = n
			}
		}
		return min
	default:
		return nil
	}
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
