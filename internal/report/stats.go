package report

import (
	"time"

	"github.com/vbonduro/fieldlog/internal/domain"
)

// CategoryCount is one bar of the dashboard's per-category chart.
type CategoryCount struct {
	CategoryID domain.ID         `json:"categoryId"`
	Name       string            `json:"name"`
	Icon       domain.Icon       `json:"icon"`
	ColorTheme domain.ColorTheme `json:"colorTheme"`
	Color      string            `json:"color"`
	Count      int               `json:"count"`
}

// CountByCategory counts records per referenced category id. Dangling ids
// are counted under their id; records without a category are skipped.
func CountByCategory(records []domain.ServiceRecord) map[domain.ID]int {
	counts := make(map[domain.ID]int)
	for i := range records {
		if ref := records[i].CategoryID; ref != nil {
			counts[*ref]++
		}
	}
	return counts
}

// CategoryBreakdown is the presentation view of CountByCategory: live
// categories in list order, only those with at least one record.
func CategoryBreakdown(records []domain.ServiceRecord, categories []domain.ServiceCategory) []CategoryCount {
	counts := CountByCategory(records)
	out := make([]CategoryCount, 0, len(categories))
	for _, c := range categories {
		n := counts[c.ID]
		if n == 0 {
			continue
		}
		out = append(out, CategoryCount{
			CategoryID: c.ID,
			Name:       c.Name,
			Icon:       c.Icon,
			ColorTheme: c.ColorTheme,
			Color:      c.ColorTheme.Hex(),
			Count:      n,
		})
	}
	return out
}

// CountUncategorized counts records with no category or a dangling one.
func CountUncategorized(records []domain.ServiceRecord, categories []domain.ServiceCategory) int {
	n := 0
	for i := range records {
		if _, ok := ResolveCategory(categories, records[i].CategoryID); !ok {
			n++
		}
	}
	return n
}

// CountOn counts records whose OccurredAt date prefix equals day's date.
func CountOn(records []domain.ServiceRecord, day time.Time) int {
	want := day.Format(DateLayout)
	n := 0
	for i := range records {
		if DatePrefix(records[i].OccurredAt) == want {
			n++
		}
	}
	return n
}

// CountToday counts records that occurred on now's calendar day, in now's
// location.
func CountToday(records []domain.ServiceRecord, now time.Time) int {
	return CountOn(records, now)
}

// DistinctLocations counts exact-match location strings. No normalization
// is applied.
func DistinctLocations(records []domain.ServiceRecord) int {
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		seen[records[i].Location] = struct{}{}
	}
	return len(seen)
}

// Recent returns the first limit records in their current order. It does
// not sort; use SortByOccurredDesc first for true recency.
func Recent(records []domain.ServiceRecord, limit int) []domain.ServiceRecord {
	if limit < 0 {
		limit = 0
	}
	if limit > len(records) {
		limit = len(records)
	}
	return records[:limit]
}

// Dashboard bundles the metrics shown on the landing page.
type Dashboard struct {
	Total             int             `json:"total"`
	Today             int             `json:"today"`
	DistinctLocations int             `json:"distinctLocations"`
	Uncategorized     int             `json:"uncategorized"`
	ByCategory        []CategoryCount `json:"byCategory"`
	Recent            []ActivityItem  `json:"recent"`
	GeneratedAt       time.Time       `json:"generatedAt"`
}

// ActivityItem is one entry of the recent activity feed.
type ActivityItem struct {
	Record       domain.ServiceRecord `json:"record"`
	CategoryName string               `json:"categoryName"`
	Color        string               `json:"color"`
}

// Summarize computes the dashboard for records as of now. The recent feed
// is sorted by OccurredAt before the limit is applied.
func Summarize(records []domain.ServiceRecord, categories []domain.ServiceCategory, now time.Time, recentLimit int) Dashboard {
	recent := Recent(SortByOccurredDesc(records), recentLimit)
	feed := make([]ActivityItem, 0, len(recent))
	for _, r := range recent {
		item := ActivityItem{Record: r, CategoryName: domain.UncategorizedLabel, Color: domain.ColorSlate.Hex()}
		if c, ok := ResolveCategory(categories, r.CategoryID); ok {
			item.CategoryName = c.Name
			item.Color = c.ColorTheme.Hex()
		}
		feed = append(feed, item)
	}

	return Dashboard{
		Total:             len(records),
		Today:             CountToday(records, now),
		DistinctLocations: DistinctLocations(records),
		Uncategorized:     CountUncategorized(records, categories),
		ByCategory:        CategoryBreakdown(records, categories),
		Recent:            feed,
		GeneratedAt:       now,
	}
}
