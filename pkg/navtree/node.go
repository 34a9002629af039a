// Package navtree defines the immutable navigation tree: a persistent
// value describing where the user is across stacks, tab sections, and
// multi-pane layouts. Nodes are never mutated in place; every change
// produces a new tree that shares unchanged subtrees with its
// predecessor.
package navtree

import (
	navErr "github.com/odvcencio/navkit/pkg/errors"
)

// Destination is the opaque payload a Screen points at: an identifier
// for content plus whatever typed arguments the host attaches.
type Destination interface {
	// Kind identifies the destination type. Two destinations with the
	// same kind are considered "the same screen type" for tab residency
	// matching, regardless of their arguments.
	Kind() string
}

// BasicDestination is a simple map-backed Destination for hosts that do
// not define their own destination types. It is also what the snapshot
// codec decodes into by default.
type BasicDestination struct {
	Name string
	Args map[string]any
}

// Kind returns the destination name.
func (d BasicDestination) Kind() string { return d.Name }

// Node is one node of the navigation tree. The variant set is closed:
// Screen, Stack, Tab, and Pane are the only implementations, and every
// traversal switches exhaustively over them.
type Node interface {
	// Key uniquely identifies this node within its tree.
	Key() string
	// Parent returns the key of the enclosing node, or "" at the root.
	Parent() string

	// node marks the closed variant set.
	node()
}

// PaneRole names a slot in a multi-pane layout. The role set is closed.
type PaneRole string

const (
	RolePrimary    PaneRole = "primary"
	RoleSupporting PaneRole = "supporting"
	RoleExtra      PaneRole = "extra"
)

// RoleOrder is the canonical iteration order for pane roles. Every
// operation that scans roles walks them in this order so behavior is
// deterministic.
var RoleOrder = []PaneRole{RolePrimary, RoleSupporting, RoleExtra}

// AdaptStrategy hints how a pane's content should adapt when the
// presentation layer cannot show it. The engine records the strategy;
// acting on it is the renderer's job.
type AdaptStrategy string

const (
	AdaptAuto     AdaptStrategy = "auto"
	AdaptHide     AdaptStrategy = "hide"
	AdaptLevitate AdaptStrategy = "levitate"
	AdaptReflow   AdaptStrategy = "reflow"
)

// PaneBackBehavior selects how a Pane resolves a back action when its
// active role's stack is at root level.
type PaneBackBehavior string

const (
	// PopLatest pops the active role's stack with no special handling.
	PopLatest PaneBackBehavior = "pop_latest"
	// PopUntilScaffoldValueChange refocuses Primary first; once on
	// Primary, back requires a presentation-level scaffold change.
	PopUntilScaffoldValueChange PaneBackBehavior = "pop_until_scaffold_value_change"
	// PopUntilCurrentDestinationChange refocuses the first other
	// configured role with content.
	PopUntilCurrentDestinationChange PaneBackBehavior = "pop_until_current_destination_change"
	// PopUntilContentChange pops whichever role still has history,
	// preferring the active one.
	PopUntilContentChange PaneBackBehavior = "pop_until_content_change"
)

// Screen is a leaf node holding a destination.
type Screen struct {
	key        string
	parent     string
	dest       Destination
	transition string
	savedState map[string]any
}

// NewScreen creates a Screen leaf.
func NewScreen(key, parent string, dest Destination) *Screen {
	return &Screen{key: key, parent: parent, dest: dest}
}

func (s *Screen) Key() string    { return s.key }
func (s *Screen) Parent() string { return s.parent }
func (s *Screen) node()          {}

// Destination returns the screen's destination payload.
func (s *Screen) Destination() Destination { return s.dest }

// Transition returns the opaque transition hint recorded when this
// screen was navigated to, or "" if none.
func (s *Screen) Transition() string { return s.transition }

// WithTransition returns a copy carrying the given transition hint.
func (s *Screen) WithTransition(transition string) *Screen {
	out := *s
	out.transition = transition
	return &out
}

// SavedState returns the renderer-attached state for this entry.
// The returned map must not be mutated.
func (s *Screen) SavedState() map[string]any { return s.savedState }

// WithSavedState returns a copy carrying the given saved state.
// The caller must not mutate the map after passing it in.
func (s *Screen) WithSavedState(state map[string]any) *Screen {
	out := *s
	out.savedState = state
	return &out
}

// withParent returns a copy re-homed under a new parent key.
func (s *Screen) withParent(parent string) *Screen {
	out := *s
	out.parent = parent
	return &out
}

// Stack is an ordered sequence of child nodes; the last child is the
// active one. A stack may be empty, which represents "no history".
type Stack struct {
	key      string
	parent   string
	scopeKey string
	children []Node
}

// NewStack creates a Stack with the given children. The caller must not
// mutate the slice after passing it in.
func NewStack(key, parent string, children ...Node) *Stack {
	return &Stack{key: key, parent: parent, children: children}
}

func (s *Stack) Key() string    { return s.key }
func (s *Stack) Parent() string { return s.parent }
func (s *Stack) node()          {}

// ScopeKey returns the scope boundary this stack carries, or "".
func (s *Stack) ScopeKey() string { return s.scopeKey }

// WithScopeKey returns a copy carrying the given scope key.
func (s *Stack) WithScopeKey(scopeKey string) *Stack {
	out := *s
	out.scopeKey = scopeKey
	return &out
}

// Len returns the number of children.
func (s *Stack) Len() int { return len(s.children) }

// ChildAt returns the child at index i. Panics with a coded error when
// i is out of range; an invalid index is a caller bug, not a runtime
// condition.
func (s *Stack) ChildAt(i int) Node {
	if i < 0 || i >= len(s.children) {
		panic(navErr.Newf(navErr.ErrCodeIndexOutOfRange,
			"stack child index %d out of range [0,%d)", i, len(s.children)).
			WithContext("stack", s.key))
	}
	return s.children[i]
}

// LastChild returns the active (topmost) child, or nil when empty.
func (s *Stack) LastChild() Node {
	if len(s.children) == 0 {
		return nil
	}
	return s.children[len(s.children)-1]
}

// Children returns a copy of the child slice.
func (s *Stack) Children() []Node {
	out := make([]Node, len(s.children))
	copy(out, s.children)
	return out
}

// WithChildren returns a copy holding the given children. The caller
// must not mutate the slice after passing it in.
func (s *Stack) WithChildren(children []Node) *Stack {
	out := *s
	out.children = children
	return &out
}

// WithAppended returns a copy with child appended.
func (s *Stack) WithAppended(child Node) *Stack {
	children := make([]Node, len(s.children)+1)
	copy(children, s.children)
	children[len(s.children)] = child
	return s.WithChildren(children)
}

// WithoutLast returns a copy with the topmost child removed. Returns
// the receiver unchanged when already empty.
func (s *Stack) WithoutLast() *Stack {
	if len(s.children) == 0 {
		return s
	}
	children := make([]Node, len(s.children)-1)
	copy(children, s.children[:len(s.children)-1])
	return s.WithChildren(children)
}

// withParent returns a copy re-homed under a new parent key.
func (s *Stack) withParent(parent string) *Stack {
	out := *s
	out.parent = parent
	return &out
}

// Tab is a set of parallel stacks ("tabs") with one active at a time.
// A Tab always has at least one stack and a valid active index.
type Tab struct {
	key          string
	parent       string
	scopeKey     string
	stacks       []*Stack
	activeIndex  int
	initialIndex int
}

// NewTab creates a Tab. Panics with a coded error when stacks is empty
// or activeIndex is out of bounds; a malformed Tab is a caller bug.
// The initial index defaults to the given activeIndex. The caller must
// not mutate the slice after passing it in.
func NewTab(key, parent string, stacks []*Stack, activeIndex int) *Tab {
	if len(stacks) == 0 {
		panic(navErr.New(navErr.ErrCodeInvalidInput, "tab requires at least one stack").
			WithContext("tab", key))
	}
	if activeIndex < 0 || activeIndex >= len(stacks) {
		panic(navErr.Newf(navErr.ErrCodeIndexOutOfRange,
			"tab active index %d out of range [0,%d)", activeIndex, len(stacks)).
			WithContext("tab", key))
	}
	return &Tab{
		key:          key,
		parent:       parent,
		stacks:       stacks,
		activeIndex:  activeIndex,
		initialIndex: activeIndex,
	}
}

func (t *Tab) Key() string    { return t.key }
func (t *Tab) Parent() string { return t.parent }
func (t *Tab) node()          {}

// ScopeKey returns the scope boundary this tab carries, or "".
func (t *Tab) ScopeKey() string { return t.scopeKey }

// WithScopeKey returns a copy carrying the given scope key.
func (t *Tab) WithScopeKey(scopeKey string) *Tab {
	out := *t
	out.scopeKey = scopeKey
	return &out
}

// Count returns the number of tab stacks.
func (t *Tab) Count() int { return len(t.stacks) }

// StackAt returns the tab stack at index i. Panics with a coded error
// when i is out of range.
func (t *Tab) StackAt(i int) *Stack {
	if i < 0 || i >= len(t.stacks) {
		panic(navErr.Newf(navErr.ErrCodeIndexOutOfRange,
			"tab stack index %d out of range [0,%d)", i, len(t.stacks)).
			WithContext("tab", t.key))
	}
	return t.stacks[i]
}

// Stacks returns a copy of the tab stack slice.
func (t *Tab) Stacks() []*Stack {
	out := make([]*Stack, len(t.stacks))
	copy(out, t.stacks)
	return out
}

// ActiveIndex returns the selected tab index.
func (t *Tab) ActiveIndex() int { return t.activeIndex }

// InitialIndex returns the index the tab was created on.
func (t *Tab) InitialIndex() int { return t.initialIndex }

// ActiveStack returns the stack of the selected tab.
func (t *Tab) ActiveStack() *Stack { return t.stacks[t.activeIndex] }

// WithActiveIndex returns a copy selecting index i. Panics with a coded
// error when i is out of range.
func (t *Tab) WithActiveIndex(i int) *Tab {
	if i < 0 || i >= len(t.stacks) {
		panic(navErr.Newf(navErr.ErrCodeIndexOutOfRange,
			"tab active index %d out of range [0,%d)", i, len(t.stacks)).
			WithContext("tab", t.key))
	}
	out := *t
	out.activeIndex = i
	return &out
}

// WithStackAt returns a copy with the stack at index i replaced.
func (t *Tab) WithStackAt(i int, stack *Stack) *Tab {
	if i < 0 || i >= len(t.stacks) {
		panic(navErr.Newf(navErr.ErrCodeIndexOutOfRange,
			"tab stack index %d out of range [0,%d)", i, len(t.stacks)).
			WithContext("tab", t.key))
	}
	stacks := make([]*Stack, len(t.stacks))
	copy(stacks, t.stacks)
	stacks[i] = stack
	out := *t
	out.stacks = stacks
	return &out
}

// withParent returns a copy re-homed under a new parent key.
func (t *Tab) withParent(parent string) *Tab {
	out := *t
	out.parent = parent
	return &out
}

// Slot is a pane role's content stack plus its adaptation strategy.
type Slot struct {
	Stack *Stack
	Adapt AdaptStrategy
}

// Pane maps a closed set of roles to content slots, with one role
// focused at a time. The Primary role is always configured.
type Pane struct {
	key          string
	parent       string
	scopeKey     string
	slots        map[PaneRole]Slot
	activeRole   PaneRole
	backBehavior PaneBackBehavior
}

// NewPane creates a Pane. Panics with a coded error when the Primary
// role is missing or the active role is not configured. The caller
// must not mutate the map after passing it in.
func NewPane(key, parent string, slots map[PaneRole]Slot, activeRole PaneRole, behavior PaneBackBehavior) *Pane {
	if _, ok := slots[RolePrimary]; !ok {
		panic(navErr.New(navErr.ErrCodePrimaryPaneRequired, "pane requires a primary slot").
			WithContext("pane", key))
	}
	if _, ok := slots[activeRole]; !ok {
		panic(navErr.Newf(navErr.ErrCodeRoleNotConfigured, "active role %q not configured", activeRole).
			WithContext("pane", key))
	}
	if behavior == "" {
		behavior = PopLatest
	}
	return &Pane{
		key:          key,
		parent:       parent,
		slots:        slots,
		activeRole:   activeRole,
		backBehavior: behavior,
	}
}

func (p *Pane) Key() string    { return p.key }
func (p *Pane) Parent() string { return p.parent }
func (p *Pane) node()          {}

// ScopeKey returns the scope boundary this pane carries, or "".
func (p *Pane) ScopeKey() string { return p.scopeKey }

// WithScopeKey returns a copy carrying the given scope key.
func (p *Pane) WithScopeKey(scopeKey string) *Pane {
	out := *p
	out.scopeKey = scopeKey
	return &out
}

// Slot returns the slot configured for role.
func (p *Pane) Slot(role PaneRole) (Slot, bool) {
	slot, ok := p.slots[role]
	return slot, ok
}

// Roles returns the configured roles in canonical order.
func (p *Pane) Roles() []PaneRole {
	out := make([]PaneRole, 0, len(p.slots))
	for _, role := range RoleOrder {
		if _, ok := p.slots[role]; ok {
			out = append(out, role)
		}
	}
	return out
}

// ActiveRole returns the focused role.
func (p *Pane) ActiveRole() PaneRole { return p.activeRole }

// ActiveSlot returns the focused role's slot.
func (p *Pane) ActiveSlot() Slot { return p.slots[p.activeRole] }

// BackBehavior returns the configured back resolution mode.
func (p *Pane) BackBehavior() PaneBackBehavior { return p.backBehavior }

// WithActiveRole returns a copy focusing role. Panics with a coded
// error when role is not configured.
func (p *Pane) WithActiveRole(role PaneRole) *Pane {
	if _, ok := p.slots[role]; !ok {
		panic(navErr.Newf(navErr.ErrCodeRoleNotConfigured, "role %q not configured", role).
			WithContext("pane", p.key))
	}
	out := *p
	out.activeRole = role
	return &out
}

// WithSlot returns a copy with the slot for role replaced or added.
func (p *Pane) WithSlot(role PaneRole, slot Slot) *Pane {
	slots := make(map[PaneRole]Slot, len(p.slots)+1)
	for r, s := range p.slots {
		slots[r] = s
	}
	slots[role] = slot
	out := *p
	out.slots = slots
	return &out
}

// WithoutRole returns a copy with the role removed. Panics with a coded
// error when asked to remove Primary; the Primary slot is a structural
// invariant. If the removed role was focused, focus moves to Primary.
func (p *Pane) WithoutRole(role PaneRole) *Pane {
	if role == RolePrimary {
		panic(navErr.New(navErr.ErrCodePrimaryPaneRequired, "cannot remove the primary slot").
			WithContext("pane", p.key))
	}
	slots := make(map[PaneRole]Slot, len(p.slots))
	for r, s := range p.slots {
		if r != role {
			slots[r] = s
		}
	}
	out := *p
	out.slots = slots
	if out.activeRole == role {
		out.activeRole = RolePrimary
	}
	return &out
}

// withParent returns a copy re-homed under a new parent key.
func (p *Pane) withParent(parent string) *Pane {
	out := *p
	out.parent = parent
	return &out
}

// WithParent returns a copy of node re-homed under a new parent key.
// Used when wrapping existing content into a freshly built container.
func WithParent(n Node, parent string) Node {
	switch n := n.(type) {
	case *Screen:
		return n.withParent(parent)
	case *Stack:
		return n.withParent(parent)
	case *Tab:
		return n.withParent(parent)
	case *Pane:
		return n.withParent(parent)
	default:
		panic(navErr.Newf(navErr.ErrCodeInternal, "unknown node variant %T", n))
	}
}
