package datastrategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomgrid/gridcore/pkg/models"
)

func sampleRows() []models.Row {
	return []models.Row{
		{"name": "Ada", "dept": "Eng", "salary": 100.0},
		{"name": "Grace", "dept": "Eng", "salary": 200.0},
		{"name": "Alan", "dept": "Sales", "salary": 150.0},
	}
}

func sampleColumns() []models.Column {
	return []models.Column{
		{Key: "name", DataType: models.DataTypeString},
		{Key: "dept", DataType: models.DataTypeString},
		{Key: "salary", DataType: models.DataTypeNumber, SummaryType: models.SummarySum},
	}
}

func TestInMemoryBootstrapReportsFullCount(t *testing.T) {
	m := NewInMemory(sampleColumns(), sampleRows())
	total, err := m.Bootstrap()
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestInMemoryApplyQueryFilterText(t *testing.T) {
	m := NewInMemory(sampleColumns(), sampleRows())
	m.Bootstrap()
	total, _, err := m.ApplyQuery(models.Query{FilterText: "ada"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	row, ok := m.GetRow(0)
	require.True(t, ok)
	assert.Equal(t, "Ada", row["name"])
}

func TestInMemoryApplyQuerySortNumericAscending(t *testing.T) {
	m := NewInMemory(sampleColumns(), sampleRows())
	m.Bootstrap()
	_, _, err := m.ApplyQuery(models.Query{Sort: &models.Sort{Key: "salary", Direction: models.Asc}})
	require.NoError(t, err)
	r0, _ := m.GetRow(0)
	r1, _ := m.GetRow(1)
	r2, _ := m.GetRow(2)
	assert.Equal(t, "Ada", r0["name"])
	assert.Equal(t, "Alan", r1["name"])
	assert.Equal(t, "Grace", r2["name"])
}

func TestInMemoryApplyQuerySortDescending(t *testing.T) {
	m := NewInMemory(sampleColumns(), sampleRows())
	m.Bootstrap()
	_, _, err := m.ApplyQuery(models.Query{Sort: &models.Sort{Key: "salary", Direction: models.Desc}})
	require.NoError(t, err)
	r0, _ := m.GetRow(0)
	assert.Equal(t, "Grace", r0["name"])
}

func TestInMemoryColumnFilterSet(t *testing.T) {
	m := NewInMemory(sampleColumns(), sampleRows())
	m.Bootstrap()
	total, _, err := m.ApplyQuery(models.Query{
		ColumnFilters: map[string]models.ColumnFilter{
			"dept": models.SetFilter{Values: []string{"Sales"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	row, _ := m.GetRow(0)
	assert.Equal(t, "Alan", row["name"])
}

func TestInMemoryColumnFilterNumberRangeInclusiveBothEnds(t *testing.T) {
	m := NewInMemory(sampleColumns(), sampleRows())
	m.Bootstrap()
	min, max := 100.0, 150.0
	total, _, err := m.ApplyQuery(models.Query{
		ColumnFilters: map[string]models.ColumnFilter{
			"salary": models.NumberRangeFilter{Min: &min, Max: &max},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total) // Ada(100) and Alan(150), both boundary-inclusive
}

func TestInMemoryColumnFilterDateRangeIsLexicographic(t *testing.T) {
	rows := []models.Row{
		{"d": "2024-01-01"},
		{"d": "2024-06-15"},
		{"d": "2025-01-01"},
	}
	m := NewInMemory([]models.Column{{Key: "d", DataType: models.DataTypeDate}}, rows)
	m.Bootstrap()

	start, end := "2024-02-01", "2024-12-31"
	total, _, err := m.ApplyQuery(models.Query{
		ColumnFilters: map[string]models.ColumnFilter{
			"d": models.DateRangeFilter{Start: &start, End: &end},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	row, _ := m.GetRow(0)
	assert.Equal(t, "2024-06-15", row["d"])
}

func TestInMemoryGetSummarySum(t *testing.T) {
	m := NewInMemory(sampleColumns(), sampleRows())
	m.Bootstrap()
	m.ApplyQuery(models.Query{})
	summary, err := m.GetSummary(nil)
	require.NoError(t, err)
	assert.Equal(t, 450.0, summary["salary"])
}

func TestInMemoryGetFilterOptionsIsUniqued(t *testing.T) {
	m := NewInMemory(sampleColumns(), sampleRows())
	m.Bootstrap()
	opts := m.GetFilterOptions("dept")
	assert.ElementsMatch(t, []string{"Eng", "Sales"}, opts)
}

func TestInMemoryGetRowOutOfRangeReturnsFalse(t *testing.T) {
	m := NewInMemory(sampleColumns(), sampleRows())
	m.Bootstrap()
	_, ok := m.GetRow(99)
	assert.False(t, ok)
}
