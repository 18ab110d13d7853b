package report

import (
	"sort"
	"strings"
	"time"

	"github.com/vbonduro/fieldlog/internal/domain"
)

// DateLayout is the layout of filter dates and of the date prefix of
// OccurredAt.
const DateLayout = "2006-01-02"

// AllCategories disables the category constraint when passed to ParseFilter.
const AllCategories = "ALL"

// Filter selects records. Every field is optional; a zero Filter matches
// every record.
type Filter struct {
	StartDate  string     `json:"startDate,omitempty"`
	EndDate    string     `json:"endDate,omitempty"`
	CategoryID *domain.ID `json:"categoryId,omitempty"`
}

func (f Filter) IsZero() bool {
	return f.StartDate == "" && f.EndDate == "" && f.CategoryID == nil
}

// ParseFilter builds a Filter from user input. Empty strings leave a
// dimension unconstrained, as does a category of AllCategories.
func ParseFilter(startDate, endDate, categoryID string) (Filter, error) {
	var f Filter
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)
	categoryID = strings.TrimSpace(categoryID)

	if startDate != "" {
		if _, err := time.Parse(DateLayout, startDate); err != nil {
			return Filter{}, domain.NewValidationError("startDate", "expected YYYY-MM-DD")
		}
		f.StartDate = startDate
	}
	if endDate != "" {
		if _, err := time.Parse(DateLayout, endDate); err != nil {
			return Filter{}, domain.NewValidationError("endDate", "expected YYYY-MM-DD")
		}
		f.EndDate = endDate
	}
	if categoryID != "" && categoryID != AllCategories {
		f.CategoryID = domain.ID(categoryID).Ref()
	}
	return f, nil
}

// DefaultRange is the report page's initial window: the first day of now's
// month through now.
func DefaultRange(now time.Time) Filter {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Filter{StartDate: first.Format(DateLayout), EndDate: now.Format(DateLayout)}
}

// Apply returns the records matching every constraint in f, in input order.
// Dates compare lexicographically on the YYYY-MM-DD prefix, which assumes
// OccurredAt is well-formed ISO-8601.
func Apply(records []domain.ServiceRecord, f Filter) []domain.ServiceRecord {
	if f.IsZero() {
		return records
	}
	out := make([]domain.ServiceRecord, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f Filter) Matches(r domain.ServiceRecord) bool {
	day := DatePrefix(r.OccurredAt)
	if f.StartDate != "" && day < f.StartDate {
		return false
	}
	if f.EndDate != "" && day > f.EndDate {
		return false
	}
	if f.CategoryID != nil && !r.HasCategory(*f.CategoryID) {
		return false
	}
	return true
}

// DatePrefix returns the date portion of an ISO-8601 timestamp: the text
// before "T", or the first ten characters when there is no "T".
func DatePrefix(ts string) string {
	if day, _, found := strings.Cut(ts, "T"); found {
		return day
	}
	if len(ts) > len(DateLayout) {
		return ts[:len(DateLayout)]
	}
	return ts
}

// SortByOccurredDesc returns a copy of records ordered by OccurredAt, most
// recent first. Ties keep their input order.
func SortByOccurredDesc(records []domain.ServiceRecord) []domain.ServiceRecord {
	out := make([]domain.ServiceRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return occurredAt(out[i]).After(occurredAt(out[j]))
	})
	return out
}
