// Package scope defines the policy collaborators the navigation engine
// consults when routing destinations: scope membership (does this
// destination belong inside a given container?) and container metadata
// (does this destination require wrapping in a new container?).
//
// The engine never owns global registries; tables are plain values
// built once at startup and injected into the navigator.
package scope

import (
	"github.com/odvcencio/navkit/pkg/navtree"
)

// Registry answers scope-membership questions for destinations.
// Implementations must be pure lookups; the engine calls them on every
// scoped push.
type Registry interface {
	// IsInScope reports whether dest belongs inside containers carrying
	// the given scope key.
	IsInScope(scopeKey string, dest navtree.Destination) bool

	// ScopeKey returns the scope a destination belongs to, if any.
	ScopeKey(dest navtree.Destination) (string, bool)
}

// Empty is the permissive default Registry: every destination is in
// scope everywhere and belongs to no scope of its own.
type Empty struct{}

// IsInScope always reports true.
func (Empty) IsInScope(string, navtree.Destination) bool { return true }

// ScopeKey always reports no scope.
func (Empty) ScopeKey(navtree.Destination) (string, bool) { return "", false }

// Table is a Registry backed by an explicit scope-to-kinds table.
// Destinations not listed under any scope are out of scope for every
// scoped container, so they route above it.
type Table struct {
	kindScope map[string]string
}

// NewTable builds a Table from a map of scope key to the destination
// kinds that belong inside it. A kind listed under two scopes keeps the
// first registration encountered; callers should keep kinds unique.
func NewTable(scopes map[string][]string) *Table {
	kindScope := make(map[string]string)
	for scopeKey, kinds := range scopes {
		for _, kind := range kinds {
			if _, exists := kindScope[kind]; !exists {
				kindScope[kind] = scopeKey
			}
		}
	}
	return &Table{kindScope: kindScope}
}

// IsInScope reports whether dest's kind is registered under scopeKey.
func (t *Table) IsInScope(scopeKey string, dest navtree.Destination) bool {
	if dest == nil {
		return false
	}
	return t.kindScope[dest.Kind()] == scopeKey
}

// ScopeKey returns the scope dest's kind is registered under.
func (t *Table) ScopeKey(dest navtree.Destination) (string, bool) {
	if dest == nil {
		return "", false
	}
	scopeKey, ok := t.kindScope[dest.Kind()]
	return scopeKey, ok
}
