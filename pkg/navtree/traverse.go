package navtree

import (
	"reflect"
)

// FindByKey returns the node with the given key, searching depth-first
// from root. Returns nil when no node matches.
func FindByKey(root Node, key string) Node {
	if root == nil {
		return nil
	}
	if root.Key() == key {
		return root
	}
	switch n := root.(type) {
	case *Screen:
		return nil
	case *Stack:
		for i := 0; i < n.Len(); i++ {
			if found := FindByKey(n.ChildAt(i), key); found != nil {
				return found
			}
		}
	case *Tab:
		for i := 0; i < n.Count(); i++ {
			if found := FindByKey(n.StackAt(i), key); found != nil {
				return found
			}
		}
	case *Pane:
		for _, role := range n.Roles() {
			slot, _ := n.Slot(role)
			if found := FindByKey(slot.Stack, key); found != nil {
				return found
			}
		}
	}
	return nil
}

// ParentOf returns the parent node of n within root, or nil at the root.
func ParentOf(root, n Node) Node {
	if n == nil || n.Parent() == "" {
		return nil
	}
	return FindByKey(root, n.Parent())
}

// ActivePath returns the nodes from root down to the focused leaf,
// following each container's active child: a stack's last child, a
// tab's selected stack, a pane's focused slot. The path ends at a
// Screen or at a childless Stack.
func ActivePath(root Node) []Node {
	var path []Node
	current := root
	for current != nil {
		path = append(path, current)
		switch n := current.(type) {
		case *Screen:
			current = nil
		case *Stack:
			current = n.LastChild()
		case *Tab:
			current = n.ActiveStack()
		case *Pane:
			current = n.ActiveSlot().Stack
		}
	}
	return path
}

// ActiveLeaf returns the focused Screen, or nil when the active path
// ends at an empty stack.
func ActiveLeaf(root Node) *Screen {
	path := ActivePath(root)
	if len(path) == 0 {
		return nil
	}
	if screen, ok := path[len(path)-1].(*Screen); ok {
		return screen
	}
	return nil
}

// ActiveStack returns the deepest Stack on the active path: the stack
// that receives the next push or pop. Returns nil when the tree has no
// stack on its active path (a bare Screen root).
func ActiveStack(root Node) *Stack {
	var deepest *Stack
	for _, n := range ActivePath(root) {
		if stack, ok := n.(*Stack); ok {
			deepest = stack
		}
	}
	return deepest
}

// Screens collects every Screen in the tree, depth-first.
func Screens(root Node) []*Screen {
	var out []*Screen
	walk(root, func(n Node) {
		if screen, ok := n.(*Screen); ok {
			out = append(out, screen)
		}
	})
	return out
}

// Stacks collects every Stack in the tree, depth-first.
func Stacks(root Node) []*Stack {
	var out []*Stack
	walk(root, func(n Node) {
		if stack, ok := n.(*Stack); ok {
			out = append(out, stack)
		}
	})
	return out
}

// Tabs collects every Tab in the tree, depth-first.
func Tabs(root Node) []*Tab {
	var out []*Tab
	walk(root, func(n Node) {
		if tab, ok := n.(*Tab); ok {
			out = append(out, tab)
		}
	})
	return out
}

// Panes collects every Pane in the tree, depth-first.
func Panes(root Node) []*Pane {
	var out []*Pane
	walk(root, func(n Node) {
		if pane, ok := n.(*Pane); ok {
			out = append(out, pane)
		}
	})
	return out
}

// ScreenKeys returns the set of Screen keys present in the tree.
// Diffing this set across mutations detects screens that were
// garbage-collected out of the tree.
func ScreenKeys(root Node) map[string]struct{} {
	out := make(map[string]struct{})
	walk(root, func(n Node) {
		if _, ok := n.(*Screen); ok {
			out[n.Key()] = struct{}{}
		}
	})
	return out
}

// walk visits every node in the tree, depth-first, parents before
// children.
func walk(root Node, visit func(Node)) {
	if root == nil {
		return
	}
	visit(root)
	switch n := root.(type) {
	case *Screen:
	case *Stack:
		for i := 0; i < n.Len(); i++ {
			walk(n.ChildAt(i), visit)
		}
	case *Tab:
		for i := 0; i < n.Count(); i++ {
			walk(n.StackAt(i), visit)
		}
	case *Pane:
		for _, role := range n.Roles() {
			slot, _ := n.Slot(role)
			walk(slot.Stack, visit)
		}
	}
}

// CanHandleBackInternally reports whether popping this node's own state
// is meaningful without delegating to a parent: a stack with history, a
// tab moved off its initial index, or a pane holding secondary content.
func CanHandleBackInternally(n Node) bool {
	switch n := n.(type) {
	case *Screen:
		return false
	case *Stack:
		return n.Len() > 1
	case *Tab:
		return n.ActiveIndex() != n.InitialIndex()
	case *Pane:
		for _, role := range n.Roles() {
			if role == RolePrimary {
				continue
			}
			slot, _ := n.Slot(role)
			if slot.Stack != nil && slot.Stack.Len() > 0 {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Equal reports structural equality of two trees: same variants, keys,
// indices, roles, destinations, and saved state throughout.
// Destinations and saved state are compared with reflect.DeepEqual.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Key() != b.Key() || a.Parent() != b.Parent() {
		return false
	}
	switch an := a.(type) {
	case *Screen:
		bn, ok := b.(*Screen)
		if !ok {
			return false
		}
		return an.Transition() == bn.Transition() &&
			reflect.DeepEqual(an.Destination(), bn.Destination()) &&
			reflect.DeepEqual(an.SavedState(), bn.SavedState())
	case *Stack:
		bn, ok := b.(*Stack)
		if !ok {
			return false
		}
		if an.ScopeKey() != bn.ScopeKey() || an.Len() != bn.Len() {
			return false
		}
		for i := 0; i < an.Len(); i++ {
			if !Equal(an.ChildAt(i), bn.ChildAt(i)) {
				return false
			}
		}
		return true
	case *Tab:
		bn, ok := b.(*Tab)
		if !ok {
			return false
		}
		if an.ScopeKey() != bn.ScopeKey() ||
			an.Count() != bn.Count() ||
			an.ActiveIndex() != bn.ActiveIndex() ||
			an.InitialIndex() != bn.InitialIndex() {
			return false
		}
		for i := 0; i < an.Count(); i++ {
			if !Equal(an.StackAt(i), bn.StackAt(i)) {
				return false
			}
		}
		return true
	case *Pane:
		bn, ok := b.(*Pane)
		if !ok {
			return false
		}
		if an.ScopeKey() != bn.ScopeKey() ||
			an.ActiveRole() != bn.ActiveRole() ||
			an.BackBehavior() != bn.BackBehavior() ||
			len(an.Roles()) != len(bn.Roles()) {
			return false
		}
		for _, role := range an.Roles() {
			aSlot, _ := an.Slot(role)
			bSlot, ok := bn.Slot(role)
			if !ok || aSlot.Adapt != bSlot.Adapt || !Equal(aSlot.Stack, bSlot.Stack) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
