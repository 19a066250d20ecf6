package gridsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomgrid/gridcore/pkg/models"
)

func peopleColumns() []models.Column {
	return []models.Column{
		{Key: "name", DataType: models.DataTypeString},
		{Key: "dept", DataType: models.DataTypeString},
	}
}

func seededDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:", "people", peopleColumns())
	require.NoError(t, err)
	require.NoError(t, db.Seed([]models.Row{
		{"name": "Ada", "dept": "Eng"},
		{"name": "Grace", "dept": "Eng"},
		{"name": "Alan", "dept": "Sales"},
		{"name": "Barbara", "dept": "Eng"},
		{"name": "Ken", "dept": "Support"},
	}))
	return db
}

func TestFetchPagePaginates(t *testing.T) {
	db := seededDB(t)
	fetch := db.FetchPage(2)

	page0, err := fetch(0, models.Query{})
	require.NoError(t, err)
	assert.Equal(t, 5, page0.TotalRows)
	assert.Len(t, page0.List, 2)

	page2, err := fetch(2, models.Query{})
	require.NoError(t, err)
	assert.Len(t, page2.List, 1, "last page holds the remainder")
}

func TestFetchPageBeyondEndIsEmptyNotError(t *testing.T) {
	db := seededDB(t)
	fetch := db.FetchPage(2)

	page, err := fetch(9, models.Query{})
	require.NoError(t, err)
	assert.Empty(t, page.List)
	assert.Equal(t, 5, page.TotalRows)
}

func TestFetchPageAppliesFilterTextAcrossColumns(t *testing.T) {
	db := seededDB(t)
	fetch := db.FetchPage(10)

	page, err := fetch(0, models.Query{FilterText: "Sales"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalRows)
	require.Len(t, page.List, 1)
	assert.Equal(t, "Alan", page.List[0]["name"])
}

func TestFetchPageAppliesSort(t *testing.T) {
	db := seededDB(t)
	fetch := db.FetchPage(10)

	page, err := fetch(0, models.Query{
		Sort: &models.Sort{Key: "name", Direction: models.Desc},
	})
	require.NoError(t, err)
	require.Len(t, page.List, 5)
	assert.Equal(t, "Ken", page.List[0]["name"])
	assert.Equal(t, "Ada", page.List[4]["name"])
}

func TestFetchPageFilteredTotalShrinksWithQuery(t *testing.T) {
	db := seededDB(t)
	fetch := db.FetchPage(2)

	page, err := fetch(0, models.Query{FilterText: "Eng"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalRows, "totalRows is the filtered total, not the table size")
	assert.Len(t, page.List, 2)
}
