package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vbonduro/fieldlog/internal/report"
)

var (
	reportStart    string
	reportEnd      string
	reportCategory string
	reportArchive  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export a filtered service report as CSV",
	Long: `Export the records matching the date range and category as CSV.

Without dates the report covers the current month. The CSV is written to
stdout, or saved to the configured archive with --archive.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportStart, "start", "", "First day (YYYY-MM-DD, inclusive)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "Last day (YYYY-MM-DD, inclusive)")
	reportCmd.Flags().StringVar(&reportCategory, "category", report.AllCategories, "Category id, or ALL")
	reportCmd.Flags().BoolVar(&reportArchive, "archive", false, "Save to the report archive instead of printing")
}

func runReport(cmd *cobra.Command, args []string) error {
	f, err := buildReportFilter(reportStart, reportEnd, reportCategory, time.Now())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if reportArchive {
		key, err := a.service.ExportReport(ctx, f)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), key)
		return nil
	}
	return a.service.WriteReportCSV(ctx, f, cmd.OutOrStdout())
}

// buildReportFilter parses the flags, defaulting to the month containing now
// when neither date is set.
func buildReportFilter(start, end, category string, now time.Time) (report.Filter, error) {
	f, err := report.ParseFilter(start, end, category)
	if err != nil {
		return f, err
	}
	if start == "" && end == "" {
		def := report.DefaultRange(now)
		f.StartDate, f.EndDate = def.StartDate, def.EndDate
	}
	return f, nil
}
