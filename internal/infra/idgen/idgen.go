// Package idgen provides UUID-backed identifiers.
package idgen

import (
	"strings"

	"github.com/google/uuid"

	"github.com/runoshun/kanban/internal/domain"
)

// suffixLen is the number of hex characters kept from each UUID.
const suffixLen = 12

// UUID generates ids of the form "<prefix>-<12 hex chars>" from random v4 UUIDs.
type UUID struct{}

// NewID returns a fresh prefixed id.
func (UUID) NewID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + hex[len(hex)-suffixLen:]
}

// Ensure UUID implements IDGenerator.
var _ domain.IDGenerator = UUID{}
