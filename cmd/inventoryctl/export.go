package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/pos-dashboard/internal/export"
	"github.com/rogerio-castellano/pos-dashboard/internal/ingest"
)

// output opens path for writing, or stdout for "" and "-".
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func newExportCmd(root *rootOptions) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup of the catalog that can be imported back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			a, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			products, err := a.Products.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			w, closeFn, err := output(cmd, out)
			if err != nil {
				return err
			}
			if err := export.Write(w, f, products); err != nil {
				closeFn()
				return err
			}
			if err := closeFn(); err != nil {
				return err
			}
			if out != "" && out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d products to %s\n", len(products), out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&out, "output", "o", "", "destination file (default stdout)")
	return cmd
}

func newTemplateCmd(root *rootOptions) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an empty import template with sample rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			aliases := ingest.DefaultAliases()
			// the template needs no backend, only the configured aliases
			if root.configFile != "" {
				a, err := root.open(cmd)
				if err != nil {
					return err
				}
				defer a.Close()
				if aliases, err = aliases.With(a.Config.Ingest.Aliases); err != nil {
					return err
				}
			}

			w, closeFn, err := output(cmd, out)
			if err != nil {
				return err
			}
			t := export.ProductTemplate(aliases.ByField())
			if f == export.FormatXLSX {
				err = export.WriteTemplateXLSX(w, t)
			} else {
				err = export.WriteTemplateCSV(w, t)
			}
			if err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&out, "output", "o", "", "destination file (default stdout)")
	return cmd
}
