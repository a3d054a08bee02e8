package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/pos-dashboard/internal/ingest"
)

func newImportCmd(root *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the catalog with the contents of a POS export",
		Long: "Reads a CSV, XLSX or XLS export, maps its columns, normalizes and validates\n" +
			"every row and replaces the whole catalog with the accepted records.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			a, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			name := filepath.Base(args[0])
			out := cmd.OutOrStdout()
			if dryRun {
				p, err := a.Importer.Preview(cmd.Context(), name, data)
				if err != nil {
					return describeFailure(out, err)
				}
				printReport(out, p.Report)
				fmt.Fprintln(out, "\nfirst rows:")
				for _, prod := range p.Products {
					fmt.Fprintf(out, "  %-8s %-30s %-15s %6d %10s\n", prod.Code, prod.Name, prod.Category, prod.Quantity, prod.Price.StringFixed(2))
				}
				fmt.Fprintln(out, "\ndry run: catalog unchanged")
				return nil
			}

			rep, err := a.Importer.Import(cmd.Context(), name, data)
			if err != nil {
				return describeFailure(out, err)
			}
			printReport(out, rep)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "run every stage except the commit")
	return cmd
}

func printReport(w io.Writer, r ingest.Report) {
	fmt.Fprintf(w, "file:       %s (%s)\n", r.Filename, r.Source.Format)
	if r.Source.Encoding != "" {
		fmt.Fprintf(w, "decoded as: %s, delimiter %q\n", r.Source.Encoding, r.Source.Delimiter)
	}
	fields := make([]string, 0, len(r.Mapping))
	for f := range r.Mapping {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %-10s <- %s\n", f, r.Mapping[ingest.Field(f)])
	}
	if len(r.Ignored) > 0 {
		fmt.Fprintf(w, "ignored:    %v\n", r.Ignored)
	}
	fmt.Fprintf(w, "rows: %d  imported: %d  dropped: %d  duplicates: %d\n", r.Rows, r.Imported, len(r.Dropped), r.Duplicates)
	for _, d := range r.Dropped {
		fmt.Fprintf(w, "  row %d: %s\n", d.Row, d.Reason)
	}
}

func describeFailure(w io.Writer, err error) error {
	var ie *ingest.Error
	if errors.As(err, &ie) {
		if len(ie.Missing) > 0 {
			fmt.Fprintf(w, "found columns:   %v\nmissing columns: %v\n", ie.Columns, ie.Missing)
		}
		if ie.Dropped > 0 {
			fmt.Fprintf(w, "every row was rejected (%d dropped)\n", ie.Dropped)
		}
	}
	return err
}
