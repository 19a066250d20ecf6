package main

import (
	"fmt"
	"os"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/loomgrid/gridcore/internal/cli"
	"github.com/loomgrid/gridcore/internal/demodata"
	"github.com/loomgrid/gridcore/pkg/grid"
	"github.com/loomgrid/gridcore/pkg/grid/datastrategy"
)

func newDumpCommand() *cobra.Command {
	var (
		rows       int
		sortKey    string
		descending bool
		filterText string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print a non-interactive snapshot of the sorted/filtered dataset",
		Long: `dump applies the requested sort and filter against the synthetic demo
dataset through the same in-memory data strategy the interactive demo
uses, and prints the result outside the virtualized host. Useful for
scripting or for checking a query's result set without a terminal UI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if err := cli.ValidateOutputFormat(output); err != nil {
				return err
			}

			columns := demodata.Columns()
			strategy := datastrategy.NewInMemory(columns, demodata.Generate(rows))
			if _, err := strategy.Bootstrap(); err != nil {
				return fmt.Errorf("gridcore: bootstrap: %w", err)
			}

			query := grid.Query{FilterText: filterText}
			if sortKey != "" {
				dir := grid.Asc
				if descending {
					dir = grid.Desc
				}
				query.Sort = &grid.Sort{Key: sortKey, Direction: dir}
			}

			total, _, err := strategy.ApplyQuery(query)
			if err != nil {
				return fmt.Errorf("gridcore: apply query: %w", err)
			}
			if limit <= 0 || limit > total {
				limit = total
			}

			result := make([]grid.Row, 0, limit)
			for i := 0; i < limit; i++ {
				row, ok := strategy.GetRow(i)
				if !ok {
					break
				}
				result = append(result, row)
			}

			if output != "text" {
				return cli.OutputResults(os.Stdout, output, result)
			}

			cols := make([]any, len(columns))
			for i, c := range columns {
				cols[i] = c.Title
			}
			tbl := table.New(cols...)
			for _, row := range result {
				vals := make([]any, len(columns))
				for i, c := range columns {
					vals[i] = row[c.Key]
				}
				tbl.AddRow(vals...)
			}
			tbl.Print()

			cli.PrintInfo("%d of %d rows", len(result), total)
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 5_000, "number of synthetic rows to generate")
	cmd.Flags().StringVar(&sortKey, "sort", "", "column key to sort by")
	cmd.Flags().BoolVar(&descending, "desc", false, "sort descending")
	cmd.Flags().StringVar(&filterText, "filter", "", "global filter text")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows to print (0 = all)")

	return cmd
}
