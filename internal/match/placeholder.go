package match

import (
	"strings"

	"github.com/google/uuid"
	"github.com/vmunix/stashgrab/pkg/stash"
)

// PlaceholderPrefix marks entity ids that exist only in the editing
// session and have not been created in the catalog yet. A placeholder id
// must never reach the catalog; the orchestrator resolves them first.
const PlaceholderPrefix = "new:"

// NewPlaceholder wraps an unmatched name in an entity with a temporary
// collision-resistant id, so the editing surface can show matched and
// unmatched names uniformly.
func NewPlaceholder(name string) stash.Entity {
	return stash.Entity{
		ID:   PlaceholderPrefix + uuid.NewString(),
		Name: name,
	}
}

// Placeholders converts a list of unmatched names.
func Placeholders(names []string) []stash.Entity {
	out := make([]stash.Entity, 0, len(names))
	for _, n := range names {
		out = append(out, NewPlaceholder(n))
	}
	return out
}

// IsPlaceholderID reports whether id is a session-local placeholder.
func IsPlaceholderID(id string) bool {
	return strings.HasPrefix(id, PlaceholderPrefix)
}
