// Command gridcore hosts the virtualized data-grid engine in pkg/grid and
// pkg/pivot behind a terminal demo and a non-interactive dump: a cobra
// root command with persistent output/quiet/no-color flags and one
// subcommand per mode of use.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loomgrid/gridcore/internal/cli"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "gridcore",
	Short: "Virtualized data-grid engine demo and inspection CLI",
	Long: `gridcore hosts a virtualized, sortable, filterable data-grid engine with
an in-memory or paged-remote data source and a pivot-table mode. Run
"gridcore demo" for the interactive terminal program, or "gridcore dump"
for a non-interactive snapshot of the current sort/filter.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gridcore version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gridcore version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format for non-interactive commands (text|json|yaml)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		quiet, _ := cmd.Flags().GetBool("quiet")
		noColor, _ := cmd.Flags().GetBool("no-color")
		cli.SetGlobalFlags(quiet, noColor)
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newDemoCommand())
	rootCmd.AddCommand(newDumpCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
