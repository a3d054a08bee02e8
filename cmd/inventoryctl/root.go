package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/pos-dashboard/internal/app"
	"github.com/rogerio-castellano/pos-dashboard/internal/config"
	"github.com/rogerio-castellano/pos-dashboard/internal/logging"
)

type rootOptions struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "inventoryctl",
		Short:         "Manage the POS product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default ./config.yaml when present)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline stages")

	cmd.AddCommand(
		newImportCmd(&opts),
		newExportCmd(&opts),
		newTemplateCmd(&opts),
		newSummaryCmd(&opts),
		newProductsCmd(&opts),
	)
	return cmd
}

// open loads configuration and connects the configured backends.
func (o *rootOptions) open(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if !o.verbose {
		cfg.Log.Level = "warn"
	}
	logger := logging.New(cfg)
	logger.SetOutput(cmd.ErrOrStderr())
	return app.New(cmd.Context(), cfg, logrus.NewEntry(logger).WithField("cmd", cmd.Name()))
}
