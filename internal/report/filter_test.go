package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/fieldlog/internal/domain"
)

func rec(id, categoryID, occurredAt, location string) domain.ServiceRecord {
	r := domain.ServiceRecord{
		ID:         domain.ID(id),
		OccurredAt: occurredAt,
		Location:   location,
		CrewName:   "Crew A",
		Photos:     []string{},
	}
	if categoryID != "" {
		r.CategoryID = domain.ID(categoryID).Ref()
	}
	return r
}

func ids(records []domain.ServiceRecord) []domain.ID {
	out := make([]domain.ID, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func fixture() []domain.ServiceRecord {
	return []domain.ServiceRecord{
		rec("a", "1", "2024-04-01T08:00", "Main St 5"),
		rec("b", "2", "2024-03-10T09:00", "Main St 5"),
		rec("c", "1", "2024-03-01T00:00:00.000Z", "Park Ave"),
		rec("d", "", "2024-02-29T23:59", "Harbour Rd"),
		rec("e", "1", "2024-03-31T17:45", "Main st 5"),
	}
}

func TestApplyEmptyFilterReturnsAll(t *testing.T) {
	records := fixture()
	assert.Equal(t, records, Apply(records, Filter{}))
}

func TestApplyCategoryOnly(t *testing.T) {
	records := fixture()
	f := Filter{CategoryID: domain.ID("1").Ref()}

	got := Apply(records, f)
	assert.Equal(t, []domain.ID{"a", "c", "e"}, ids(got))

	all := Apply(records, Filter{})
	for _, r := range got {
		assert.Contains(t, all, r)
	}
}

func TestApplyDateBoundaryInclusive(t *testing.T) {
	records := fixture()

	got := Apply(records, Filter{StartDate: "2024-03-01"})
	assert.Contains(t, ids(got), domain.ID("c"), "record on the start date is included")
	assert.NotContains(t, ids(got), domain.ID("d"), "record the day before is excluded")

	got = Apply(records, Filter{EndDate: "2024-03-31"})
	assert.Contains(t, ids(got), domain.ID("e"), "record on the end date is included")
	assert.NotContains(t, ids(got), domain.ID("a"))
}

func TestApplyMarchScenario(t *testing.T) {
	records := []domain.ServiceRecord{
		rec("march", "1", "2024-03-10T09:00", "Main St 5"),
		rec("april", "1", "2024-04-01T09:00", "Main St 5"),
	}
	f, err := ParseFilter("2024-03-01", "2024-03-31", AllCategories)
	require.NoError(t, err)

	assert.Equal(t, []domain.ID{"march"}, ids(Apply(records, f)))
}

func TestApplyComposesConstraints(t *testing.T) {
	f := Filter{StartDate: "2024-03-01", EndDate: "2024-03-31", CategoryID: domain.ID("1").Ref()}
	assert.Equal(t, []domain.ID{"c", "e"}, ids(Apply(fixture(), f)))
}

func TestApplyDanglingCategoryMatchesByID(t *testing.T) {
	records := []domain.ServiceRecord{rec("x", "gone", "2024-03-10T09:00", "A")}
	got := Apply(records, Filter{CategoryID: domain.ID("gone").Ref()})
	assert.Len(t, got, 1)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("", "", "")
	require.NoError(t, err)
	assert.True(t, f.IsZero())

	f, err = ParseFilter(" 2024-03-01 ", "", "ALL")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", f.StartDate)
	assert.Nil(t, f.CategoryID)

	f, err = ParseFilter("", "", "4")
	require.NoError(t, err)
	require.NotNil(t, f.CategoryID)
	assert.Equal(t, domain.ID("4"), *f.CategoryID)

	_, err = ParseFilter("03/01/2024", "", "")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "startDate", ve.Field)

	_, err = ParseFilter("", "2024-13-01", "")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "endDate", ve.Field)
}

func TestDefaultRange(t *testing.T) {
	now := time.Date(2024, 3, 17, 15, 0, 0, 0, time.UTC)
	f := DefaultRange(now)
	assert.Equal(t, "2024-03-01", f.StartDate)
	assert.Equal(t, "2024-03-17", f.EndDate)
	assert.Nil(t, f.CategoryID)
}

func TestDatePrefix(t *testing.T) {
	assert.Equal(t, "2024-03-10", DatePrefix("2024-03-10T09:00"))
	assert.Equal(t, "2024-03-10", DatePrefix("2024-03-10"))
	assert.Equal(t, "2024-03-10", DatePrefix("2024-03-10 09:00"))
	assert.Equal(t, "2024-03", DatePrefix("2024-03"))
}

func TestSortByOccurredDesc(t *testing.T) {
	records := fixture()
	sorted := SortByOccurredDesc(records)

	assert.Equal(t, []domain.ID{"a", "e", "b", "c", "d"}, ids(sorted))
	assert.Equal(t, domain.ID("a"), records[0].ID)
	assert.Equal(t, domain.ID("b"), records[1].ID, "input is not modified")
}
