package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by FindByID lookups for ids that do not resolve to
// a stored document.
var ErrNotFound = errors.New("document not found")

// NormalizeID canonicalizes a client-supplied document id. Clients sometimes
// echo ids back wrapped in quotes or padding; lookups normalize once here
// instead of attempting multiple id representations against the store.
func NormalizeID(raw string) string {
	id := strings.TrimSpace(raw)
	id = strings.Trim(id, `"'`)
	return id
}
