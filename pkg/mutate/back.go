package mutate

import (
	"github.com/odvcencio/navkit/pkg/navtree"
)

// BackResultKind classifies the outcome of tree-aware back resolution.
type BackResultKind int

const (
	// BackHandled means the tree changed; the new tree is in Tree.
	BackHandled BackResultKind = iota
	// BackDelegateToSystem means navigation has nothing left to do; the
	// host decides what back means now (typically: exit).
	BackDelegateToSystem
	// BackCannotHandle means the engine cannot resolve back here; an
	// internal fallback (usually the presentation layer) must act.
	BackCannotHandle
)

// BackResult is the outcome of PopWithTabBehavior.
type BackResult struct {
	Kind BackResultKind
	Tree navtree.Node
}

// PanePopKind classifies the outcome of pane back resolution.
type PanePopKind int

const (
	// PaneHandled means the tree changed; the new tree is in Tree.
	PaneHandled PanePopKind = iota
	// PaneRequiresScaffoldChange means only the presentation layer can
	// resolve back here, by changing which panes are visually shown.
	PaneRequiresScaffoldChange
	// PaneNoContent means the pane holds nothing left to pop or
	// refocus.
	PaneNoContent
)

// PanePopResult is the outcome of PopWithPaneBehavior.
type PanePopResult struct {
	Kind PanePopKind
	Tree navtree.Node
}

// PopWithTabBehavior is the layered back resolution used for the
// default hardware or gesture back action.
//
// If the active stack has history, it simply pops. Otherwise the
// emptied-out container chain is walked upward: a Tab is removed whole
// (tabs are never switched on back), a nested stack is removed when
// its parent has siblings, and a Pane first gets a chance to resolve
// back internally before being removed itself. Reaching the root with
// nothing removable delegates back to the hosting environment.
func PopWithTabBehavior(tree navtree.Node) BackResult {
	stack := navtree.ActiveStack(tree)
	if stack == nil {
		return BackResult{Kind: BackCannotHandle}
	}

	if stack.Len() > 1 {
		newTree, err := navtree.Replace(tree, stack.Key(), stack.WithoutLast())
		if err != nil {
			return BackResult{Kind: BackCannotHandle}
		}
		return BackResult{Kind: BackHandled, Tree: newTree}
	}

	// The active stack is down to its last entry (or empty): removing
	// anything here means removing a container. Walk upward for a
	// removable candidate.
	candidate := navtree.Node(stack)
	for {
		parent := navtree.ParentOf(tree, candidate)
		if parent == nil {
			return BackResult{Kind: BackDelegateToSystem}
		}

		switch parent := parent.(type) {
		case *navtree.Tab:
			// Tabs are never switched on back; the whole container
			// becomes the removal candidate.
			candidate = parent

		case *navtree.Pane:
			result := PopWithPaneBehavior(tree)
			switch result.Kind {
			case PaneHandled:
				return BackResult{Kind: BackHandled, Tree: result.Tree}
			case PaneRequiresScaffoldChange:
				return BackResult{Kind: BackCannotHandle}
			case PaneNoContent:
				candidate = parent
			}

		case *navtree.Stack:
			if parent.Len() > 1 {
				newTree, err := navtree.Remove(tree, candidate.Key())
				if err != nil {
					return BackResult{Kind: BackCannotHandle}
				}
				return BackResult{Kind: BackHandled, Tree: newTree}
			}
			candidate = parent

		default:
			return BackResult{Kind: BackCannotHandle}
		}
	}
}

// PopWithPaneBehavior resolves back for the nearest Pane on the active
// path. With history in the focused role it pops normally; at root
// level the pane's configured PaneBackBehavior decides between
// popping, refocusing another role, or reporting that only a
// presentation-level change can go further.
func PopWithPaneBehavior(tree navtree.Node) PanePopResult {
	pane := activePane(tree)
	if pane == nil {
		return PanePopResult{Kind: PaneNoContent}
	}

	active := pane.ActiveSlot()
	if active.Stack.Len() > 1 {
		newTree, err := navtree.Replace(tree, active.Stack.Key(), active.Stack.WithoutLast())
		if err != nil {
			return PanePopResult{Kind: PaneNoContent}
		}
		return PanePopResult{Kind: PaneHandled, Tree: newTree}
	}

	switch pane.BackBehavior() {
	case navtree.PopLatest:
		if active.Stack.Len() == 0 {
			return PanePopResult{Kind: PaneNoContent}
		}
		newTree, err := navtree.Replace(tree, active.Stack.Key(), active.Stack.WithoutLast())
		if err != nil {
			return PanePopResult{Kind: PaneNoContent}
		}
		return PanePopResult{Kind: PaneHandled, Tree: newTree}

	case navtree.PopUntilScaffoldValueChange:
		if pane.ActiveRole() != navtree.RolePrimary {
			return refocus(tree, pane, navtree.RolePrimary)
		}
		return PanePopResult{Kind: PaneRequiresScaffoldChange}

	case navtree.PopUntilCurrentDestinationChange:
		for _, role := range pane.Roles() {
			if role == pane.ActiveRole() {
				continue
			}
			slot, _ := pane.Slot(role)
			if slot.Stack.Len() > 0 {
				return refocus(tree, pane, role)
			}
		}
		return PanePopResult{Kind: PaneNoContent}

	case navtree.PopUntilContentChange:
		return popContentChange(tree, pane)

	default:
		return PanePopResult{Kind: PaneNoContent}
	}
}

// PopPaneAdaptive is the compact-presentation wrapper around pane back
// resolution. When only a single surface is visible, back must behave
// like a plain stack pop regardless of the pane's configured behavior.
func PopPaneAdaptive(tree navtree.Node, compact bool) PanePopResult {
	if !compact {
		return PopWithPaneBehavior(tree)
	}

	pane := activePane(tree)
	if pane == nil {
		return PanePopResult{Kind: PaneNoContent}
	}

	stack := pane.ActiveSlot().Stack
	if stack.Len() == 0 {
		return PanePopResult{Kind: PaneNoContent}
	}
	newTree, err := navtree.Replace(tree, stack.Key(), stack.WithoutLast())
	if err != nil {
		return PanePopResult{Kind: PaneNoContent}
	}
	return PanePopResult{Kind: PaneHandled, Tree: newTree}
}

// activePane returns the deepest Pane on the active path, or nil.
func activePane(tree navtree.Node) *navtree.Pane {
	var pane *navtree.Pane
	for _, n := range navtree.ActivePath(tree) {
		if p, ok := n.(*navtree.Pane); ok {
			pane = p
		}
	}
	return pane
}

// refocus switches a pane's focus to role.
func refocus(tree navtree.Node, pane *navtree.Pane, role navtree.PaneRole) PanePopResult {
	newTree, err := navtree.Replace(tree, pane.Key(), pane.WithActiveRole(role))
	if err != nil {
		return PanePopResult{Kind: PaneNoContent}
	}
	return PanePopResult{Kind: PaneHandled, Tree: newTree}
}

// popContentChange pops from whichever role still has history,
// preferring the focused one. A secondary role popped down to its root
// entry is cleared outright and focus returns to Primary, so back
// never leaves a secondary pane pinned at its own root.
func popContentChange(tree navtree.Node, pane *navtree.Pane) PanePopResult {
	order := make([]navtree.PaneRole, 0, len(pane.Roles())+1)
	order = append(order, pane.ActiveRole())
	for _, role := range pane.Roles() {
		if role != pane.ActiveRole() {
			order = append(order, role)
		}
	}

	for _, role := range order {
		slot, _ := pane.Slot(role)
		if slot.Stack.Len() <= 1 {
			continue
		}

		popped := slot.Stack.WithoutLast()
		slot.Stack = popped
		newPane := pane.WithSlot(role, slot)

		if role != navtree.RolePrimary && popped.Len() == 1 {
			slot.Stack = popped.WithChildren(nil)
			newPane = pane.WithSlot(role, slot).WithActiveRole(navtree.RolePrimary)
		}

		newTree, err := navtree.Replace(tree, pane.Key(), newPane)
		if err != nil {
			return PanePopResult{Kind: PaneNoContent}
		}
		return PanePopResult{Kind: PaneHandled, Tree: newTree}
	}

	return PanePopResult{Kind: PaneNoContent}
}
