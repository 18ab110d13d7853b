package report

import "github.com/vbonduro/fieldlog/internal/domain"

// CountReferencingRecords returns how many records point at categoryID.
// Callers show this before deleting a category; deletion never cascades.
func CountReferencingRecords(categoryID domain.ID, records []domain.ServiceRecord) int {
	n := 0
	for i := range records {
		if records[i].HasCategory(categoryID) {
			n++
		}
	}
	return n
}

// CountCrewRecords returns how many records were logged under crewName.
// Records copy the crew name, so this is informational only.
func CountCrewRecords(crewName string, records []domain.ServiceRecord) int {
	n := 0
	for i := range records {
		if records[i].CrewName == crewName {
			n++
		}
	}
	return n
}

// ReferenceCounts returns the referencing-record count for every category,
// including those with none.
func ReferenceCounts(categories []domain.ServiceCategory, records []domain.ServiceRecord) map[domain.ID]int {
	counts := make(map[domain.ID]int, len(categories))
	for _, c := range categories {
		counts[c.ID] = 0
	}
	for i := range records {
		ref := records[i].CategoryID
		if ref == nil {
			continue
		}
		if _, ok := counts[*ref]; ok {
			counts[*ref]++
		}
	}
	return counts
}

// ResolveCategory looks up the category a record points at. ok is false for
// nil and dangling references.
func ResolveCategory(categories []domain.ServiceCategory, ref *domain.ID) (domain.ServiceCategory, bool) {
	if ref == nil {
		return domain.ServiceCategory{}, false
	}
	for _, c := range categories {
		if c.ID == *ref {
			return c, true
		}
	}
	return domain.ServiceCategory{}, false
}

// CategoryName returns the category's name or the uncategorized label.
func CategoryName(categories []domain.ServiceCategory, ref *domain.ID) string {
	if c, ok := ResolveCategory(categories, ref); ok {
		return c.Name
	}
	return domain.UncategorizedLabel
}
