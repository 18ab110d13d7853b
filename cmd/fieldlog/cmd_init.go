package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database, seed defaults and sample records",
	Long: `Apply migrations, seed the default service categories and crews (once per
database) and, unless BOOTSTRAP_SAMPLES=false, add two sample records to an
empty log. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		res, err := a.service.Initialize(ctx)
		if err != nil {
			return err
		}
		samples := 0
		if a.cfg.BootstrapSamples {
			if samples, err = a.service.Bootstrap(ctx); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "categories seeded: %t\ncrews seeded: %t\nsample records: %d\n",
			res.CategoriesSeeded, res.CrewsSeeded, samples)
		return nil
	},
}
