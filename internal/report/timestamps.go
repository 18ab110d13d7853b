package report

import (
	"time"

	"github.com/vbonduro/fieldlog/internal/domain"
)

// timestampLayouts are the OccurredAt forms the application writes: full
// ISO-8601 from the bootstrap samples and minute precision from the entry
// form.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateLayout,
}

// ParseTimestamp parses an OccurredAt value. Values without a zone are read
// in UTC.
func ParseTimestamp(ts string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// occurredAt orders unparseable timestamps before everything else.
func occurredAt(r domain.ServiceRecord) time.Time {
	t, _ := ParseTimestamp(r.OccurredAt)
	return t
}
