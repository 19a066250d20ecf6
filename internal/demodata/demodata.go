// Package demodata supplies the synthetic dataset and column layout used
// by gridcore's demo and dump commands, so the CLI has something concrete
// to show without wiring a real data source.
package demodata

import (
	"fmt"

	"github.com/loomgrid/gridcore/pkg/grid"
	"github.com/loomgrid/gridcore/pkg/pivot"
)

var departments = []string{"Engineering", "Sales", "Support", "Marketing", "Finance"}
var regions = []string{"NA", "EMEA", "APAC", "LATAM"}
var firstNames = []string{"Ada", "Grace", "Alan", "Linus", "Margaret", "Dennis", "Barbara", "Ken", "Radia", "Leslie"}
var lastNames = []string{"Lovelace", "Hopper", "Turing", "Torvalds", "Hamilton", "Ritchie", "Liskov", "Thompson", "Perlman", "Lamport"}

// Columns is the default column layout shared by the demo and dump
// commands: a mix of string, number, date, and boolean columns with a
// summary row over salary and headcount.
func Columns() []grid.Column {
	return []grid.Column{
		{Key: "id", Title: "ID", Width: 8, DataType: grid.DataTypeNumber, SummaryType: grid.SummaryCount},
		{Key: "name", Title: "Name", Width: 20, DataType: grid.DataTypeString},
		{Key: "department", Title: "Department", Width: 14, DataType: grid.DataTypeString},
		{Key: "region", Title: "Region", Width: 8, DataType: grid.DataTypeString},
		{Key: "salary", Title: "Salary", Width: 12, DataType: grid.DataTypeNumber, SummaryType: grid.SummarySum},
		{Key: "active", Title: "Active", Width: 8, DataType: grid.DataTypeBoolean},
	}
}

// PivotConfig is the default pivot view over Generate's dataset: grouped
// by department then region, summing salary and counting headcount.
func PivotConfig() pivot.Config {
	return pivot.Config{
		RowGroups: []string{"department", "region"},
		ValueFields: []pivot.ValueField{
			{Key: "salary", Aggregation: pivot.AggSum},
			{Key: "id", Aggregation: pivot.AggCount},
		},
		ShowSubtotals: true,
	}
}

// Generate deterministically produces n synthetic employee rows using a
// simple linear-congruential sequence rather than math/rand, so a demo
// run and a dump run against the same n always show identical data,
// independent of any particular seeded PRNG's output across Go versions.
func Generate(n int) []grid.Row {
	rows := make([]grid.Row, n)
	state := uint64(1)
	next := func(mod int) int {
		state = state*6364136223846793005 + 1442695040888963407
		return int((state >> 33) % uint64(mod))
	}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s %s", firstNames[next(len(firstNames))], lastNames[next(len(lastNames))])
		rows[i] = grid.Row{
			"id":         i + 1,
			"name":       name,
			"department": departments[next(len(departments))],
			"region":     regions[next(len(regions))],
			"salary":     float64(45_000 + next(120)*1_000),
			"active":     next(10) > 1,
		}
	}
	return rows
}
