package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

var csvHeader = []string{"Date", "Time", "Service Type", "Location", "Crew", "Notes"}

// WriteCSV writes rows as the spreadsheet export.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Date, r.Time, r.Category, r.Location, r.Crew, r.Notes}); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", r.RecordID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// FileName names an exported report after its date range.
func FileName(f Filter, ext string) string {
	start, end := f.StartDate, f.EndDate
	if start == "" {
		start = "all"
	}
	if end == "" {
		end = "all"
	}
	return fmt.Sprintf("service_report_%s_%s.%s", start, end, ext)
}
