// Package ids generates and validates entity identifiers. Identifiers are
// ULIDs, so lexical order matches creation order.
package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

func New() string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Valid reports whether s is a well-formed identifier.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// Canonical returns s in its canonical upper-case form, or "" when s is
// not a well-formed identifier.
func Canonical(s string) string {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return ""
	}
	return id.String()
}
