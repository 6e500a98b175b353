package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aerodados/aeromapa/internal/column"
	"github.com/aerodados/aeromapa/internal/pipeline"
)

var columnsCmd = &cobra.Command{
	Use:   "columns <file> [label...]",
	Short: "Show how coordinate columns would be resolved",
	Long:  "Reads only the header of a file and reports each column's normalized form plus which columns the cleaner would pick for latitude and longitude. Extra arguments are resolved as free-form labels. Nothing is written.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanSep, _ = cmd.Flags().GetString("sep")
		cleanEncoding, _ = cmd.Flags().GetString("encoding")

		tbl, err := readInput(args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "COLUMN\tNORMALIZED")
		for _, c := range tbl.Columns {
			fmt.Fprintf(w, "%s\t%s\n", c, column.Normalize(c))
		}
		w.Flush()

		r := column.NewResolver(tbl.Columns, cfg.Resolver.Options())
		if lat, ok := r.ResolveFirst(pipeline.LatCandidates); ok {
			fmt.Printf("\nlatitude:  %s\n", lat)
		} else {
			fmt.Printf("\nlatitude:  (not found)\n")
		}
		if lon, ok := r.ResolveFirst(pipeline.LonCandidates); ok {
			fmt.Printf("longitude: %s\n", lon)
		} else {
			fmt.Printf("longitude: (not found)\n")
		}

		for _, label := range args[1:] {
			if col, ok := r.Resolve(label); ok {
				fmt.Printf("%s: %s\n", label, col)
			} else {
				fmt.Printf("%s: (not found)\n", label)
			}
		}

		return nil
	},
}

func init() {
	columnsCmd.Flags().String("sep", "", "CSV delimiter (default: sniffed)")
	columnsCmd.Flags().String("encoding", "", "input encoding (default: detected)")
	rootCmd.AddCommand(columnsCmd)
}
