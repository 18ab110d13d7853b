// Package ids generates identifiers for new categories, crews, and records.
package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/vbonduro/fieldlog/internal/domain"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a ULID: a millisecond timestamp followed by 80 random bits,
// monotonic within the process.
func New() domain.ID {
	return Make(time.Now())
}

// Make is New with an explicit timestamp.
func Make(t time.Time) domain.ID {
	mu.Lock()
	defer mu.Unlock()
	return domain.ID(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}
