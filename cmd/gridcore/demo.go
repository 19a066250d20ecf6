package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/loomgrid/gridcore/internal/cli"
	"github.com/loomgrid/gridcore/internal/demodata"
	"github.com/loomgrid/gridcore/internal/tui"
	"github.com/loomgrid/gridcore/pkg/grid"
	"github.com/loomgrid/gridcore/pkg/gridsql"
)

func newDemoCommand() *cobra.Command {
	var (
		rows           int
		rowsSource     string
		pageSize       int
		bufferRows     int
		frozenColumns  int
		showSummary    bool
		maxCachedPages int
		tableID        string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Launch the interactive terminal data-grid demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateRowsSource(rowsSource); err != nil {
				return err
			}
			if err := cli.ValidateTableID(tableID); err != nil {
				return err
			}

			columns := demodata.Columns()
			if frozenColumns > len(columns) {
				cli.PrintWarning("frozen-columns %d exceeds the %d available columns, clamping", frozenColumns, len(columns))
				frozenColumns = len(columns)
			}

			cfg := grid.Config{
				RowHeight:      1,
				TableHeight:    24,
				BufferRows:     bufferRows,
				Columns:        columns,
				FrozenColumns:  frozenColumns,
				ShowSummary:    showSummary,
				PageSize:       pageSize,
				MaxCachedPages: maxCachedPages,
				TableID:        tableID,
				SidePanel: &grid.SidePanelConfig{
					Enabled: true,
					Panels:  []string{"columns"},
				},
			}

			data := demodata.Generate(rows)
			switch rowsSource {
			case "memory":
				cfg.InitialData = data
			case "sqlite":
				db, err := gridsql.Open(":memory:", "rows", columns)
				if err != nil {
					return fmt.Errorf("gridcore: open sqlite demo source: %w", err)
				}
				if err := db.Seed(data); err != nil {
					return fmt.Errorf("gridcore: seed sqlite demo source: %w", err)
				}
				cfg.FetchPage = db.FetchPage(pageSize)
			}

			model, err := tui.New(cfg, demodata.PivotConfig())
			if err != nil {
				return fmt.Errorf("gridcore: construct table: %w", err)
			}

			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("gridcore: run program: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 5_000, "number of synthetic rows to generate")
	cmd.Flags().StringVar(&rowsSource, "rows-source", "memory", "data source: memory or sqlite")
	cmd.Flags().IntVar(&pageSize, "page-size", 200, "rows per page (sqlite source only)")
	cmd.Flags().IntVar(&bufferRows, "buffer-rows", 5, "extra rows rendered above/below the viewport")
	cmd.Flags().IntVar(&frozenColumns, "frozen-columns", 0, "number of leading columns to freeze")
	cmd.Flags().BoolVar(&showSummary, "summary", true, "show the aggregated summary row")
	cmd.Flags().IntVar(&maxCachedPages, "max-cached-pages", 64, "LRU page cache bound (sqlite source only)")
	cmd.Flags().StringVar(&tableID, "table-id", "gridcore-demo", "persistence slot for column widths/order (empty disables persistence)")

	return cmd
}
