package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/pos-dashboard/internal/repo"
)

func newSummaryCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := a.Metrics.GetDashboardMetrics(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			}
			printMetrics(cmd, m)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the metrics as JSON")
	return cmd
}

func printMetrics(cmd *cobra.Command, m repo.Metrics) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "products\t%d\n", m.TotalProducts)
	fmt.Fprintf(tw, "units\t%d\n", m.TotalUnits)
	fmt.Fprintf(tw, "inventory value\t%s\n", m.InventoryValue.StringFixed(2))
	fmt.Fprintf(tw, "average price\t%s\n", m.AveragePrice.StringFixed(2))
	fmt.Fprintf(tw, "categories\t%d\n", m.CategoryCount)
	fmt.Fprintf(tw, "negative stock\t%d\n", m.NegativeStockCount)

	if len(m.Categories) > 0 {
		fmt.Fprintln(tw, "\nCATEGORY\tPRODUCTS\tUNITS\tVALUE")
		for _, c := range m.Categories {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", c.Category, c.Products, c.Units, c.Value.StringFixed(2))
		}
	}
	if len(m.TopProducts) > 0 {
		fmt.Fprintln(tw, "\nTOP BY STOCK\t\t\t")
		for _, p := range m.TopProducts {
			fmt.Fprintf(tw, "%s\t%s\t%d\t\n", p.Code, strings.TrimSpace(p.Name), p.Quantity)
		}
	}
	tw.Flush()
}
