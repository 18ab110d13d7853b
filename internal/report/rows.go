package report

import (
	"github.com/vbonduro/fieldlog/internal/domain"
)

const shortNotesLen = 50

// Row is the denormalized projection handed to document and spreadsheet
// exporters: the category is resolved to a name and the timestamp split
// into date and time. ShortNotes is the notes cut down for a printed table
// cell; Notes stays complete for the CSV.
type Row struct {
	RecordID   domain.ID `json:"recordId"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Category   string    `json:"category"`
	Location   string    `json:"location"`
	Crew       string    `json:"crew"`
	Notes      string    `json:"notes"`
	ShortNotes string    `json:"shortNotes"`
	PhotoCount int       `json:"photoCount"`
}

func shortenNotes(notes string) string {
	runes := []rune(notes)
	if len(runes) <= shortNotesLen {
		return notes
	}
	return string(runes[:shortNotesLen]) + "..."
}

// Rows projects records in order. Records whose category cannot be
// resolved get the uncategorized label.
func Rows(records []domain.ServiceRecord, categories []domain.ServiceCategory) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		date, clock := splitTimestamp(r.OccurredAt)
		rows = append(rows, Row{
			RecordID:   r.ID,
			Date:       date,
			Time:       clock,
			Category:   CategoryName(categories, r.CategoryID),
			Location:   r.Location,
			Crew:       r.CrewName,
			Notes:      r.Notes,
			ShortNotes: shortenNotes(r.Notes),
			PhotoCount: len(r.Photos),
		})
	}
	return rows
}

func splitTimestamp(ts string) (date, clock string) {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return DatePrefix(ts), ""
	}
	if len(ts) == len(DateLayout) {
		return t.Format(DateLayout), ""
	}
	return t.Format(DateLayout), t.Format("15:04")
}

// Report is a filtered record set together with its export projection.
type Report struct {
	Filter  Filter                 `json:"filter"`
	Records []domain.ServiceRecord `json:"records"`
	Rows    []Row                  `json:"rows"`
}

// Build filters records and projects the result.
func Build(records []domain.ServiceRecord, categories []domain.ServiceCategory, f Filter) Report {
	matched := Apply(records, f)
	return Report{Filter: f, Records: matched, Rows: Rows(matched, categories)}
}
