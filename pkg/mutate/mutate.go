// Package mutate implements the pure reducer operations over the
// navigation tree: push, pop, tab switching, pane navigation, and the
// layered back-resolution procedures. Every operation takes a tree and
// returns a new tree, sharing unchanged subtrees with the input.
//
// Two failure classes run through the package. Programmer errors
// (unknown keys, unconfigured roles, out-of-range indices) come back as
// coded errors the caller must treat as fatal. Expected "cannot
// proceed" outcomes (nothing to pop, pane empty, back delegated to the
// host) are encoded in nil return trees and in the BackResult and
// PanePopResult variants; callers branch on those routinely.
package mutate

// KeyFunc generates a unique key for a newly created node. Injecting it
// keeps the reducers pure; tests use a deterministic counter.
type KeyFunc func() string

// EmptyStackBehavior decides what happens when a pop empties a stack.
type EmptyStackBehavior int

const (
	// PreserveEmpty keeps the emptied stack in place.
	PreserveEmpty EmptyStackBehavior = iota
	// Cascade removes the emptied stack from its parent, recursively up
	// the tree. A tab's per-tab stack and a pane's slot stack are
	// structural and are cleared instead of removed.
	Cascade
)

// Routing reports where a scope-aware push actually landed.
type Routing string

const (
	// RoutedToStack is the default: the destination was appended to the
	// deepest active stack.
	RoutedToStack Routing = "push_to_stack"
	// RoutedToTab means the destination was already resident in another
	// tab, so the tab was switched instead of pushing a duplicate.
	RoutedToTab Routing = "switch_to_tab"
	// RoutedAboveScope means an enclosing container rejected the
	// destination, so it was pushed onto the container's parent stack.
	RoutedAboveScope Routing = "push_out_of_scope"
)
