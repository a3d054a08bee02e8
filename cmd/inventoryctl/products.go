package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/pos-dashboard/internal/repo"
)

func newProductsCmd(root *rootOptions) *cobra.Command {
	var pf repo.ProductFilter
	var limit int

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products, optionally filtered by name or category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit > 0 {
				pf.Limit = &limit
			}
			a, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			products, total, err := a.Products.Filter(cmd.Context(), pf)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tCATEGORY\tQTY\tPRICE")
			for _, p := range products {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", p.Code, p.Name, p.Category, p.Quantity, p.Price.StringFixed(2))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d products\n", len(products), total)
			return nil
		},
	}
	cmd.Flags().StringVar(&pf.Name, "name", "", "substring of the product name")
	cmd.Flags().StringVar(&pf.Category, "category", "", "exact category, case-insensitive")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows to print")
	return cmd
}
