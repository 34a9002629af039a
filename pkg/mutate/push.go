package mutate

import (
	navErr "github.com/odvcencio/navkit/pkg/errors"
	"github.com/odvcencio/navkit/pkg/navtree"
	"github.com/odvcencio/navkit/pkg/scope"
)

// Push appends a new Screen for dest onto the deepest active stack.
// Returns the new tree and the new screen's key. Fails with
// NO_ACTIVE_STACK when the tree has no stack on its active path; the
// caller must seed an initial stack before pushing.
func Push(tree navtree.Node, dest navtree.Destination, transition string, gen KeyFunc) (navtree.Node, string, error) {
	stack := navtree.ActiveStack(tree)
	if stack == nil {
		return nil, "", navErr.New(navErr.ErrCodeNoActiveStack, "push requires an active stack")
	}
	return pushOnto(tree, stack, dest, transition, gen)
}

// pushOnto appends a new Screen for dest onto the given stack.
func pushOnto(tree navtree.Node, stack *navtree.Stack, dest navtree.Destination, transition string, gen KeyFunc) (navtree.Node, string, error) {
	key := gen()
	screen := navtree.NewScreen(key, stack.Key(), dest)
	if transition != "" {
		screen = screen.WithTransition(transition)
	}

	newTree, err := navtree.Replace(tree, stack.Key(), stack.WithAppended(screen))
	if err != nil {
		return nil, "", err
	}
	return newTree, key, nil
}

// PushScoped routes dest with scope awareness before pushing. Walking
// the active path from deepest to shallowest:
//
//   - the first scoped container that rejects dest retargets the push
//     to that container's parent stack, so the destination lands above
//     the container and its internal state survives for back
//     navigation;
//   - a scoped Tab that accepts dest but already holds a screen of the
//     same kind in a different tab switches to that tab instead of
//     pushing a duplicate.
//
// Exactly one routing strategy applies per call; when nothing special
// matches, dest is pushed onto the deepest active stack. The returned
// key is empty when routing switched tabs instead of pushing.
func PushScoped(tree navtree.Node, dest navtree.Destination, transition string, reg scope.Registry, gen KeyFunc) (navtree.Node, string, Routing, error) {
	if reg == nil {
		reg = scope.Empty{}
	}

	path := navtree.ActivePath(tree)
	for i := len(path) - 1; i >= 0; i-- {
		container := path[i]
		scopeKey := containerScopeKey(container)
		if scopeKey == "" {
			continue
		}

		if !reg.IsInScope(scopeKey, dest) {
			parentStack := nearestStackAbove(path, i)
			if parentStack == nil {
				return nil, "", "", navErr.Newf(navErr.ErrCodeNoActiveStack,
					"destination %q is out of scope %q and no stack exists above the container",
					dest.Kind(), scopeKey).
					WithContext("container", container.Key())
			}
			newTree, key, err := pushOnto(tree, parentStack, dest, transition, gen)
			if err != nil {
				return nil, "", "", err
			}
			return newTree, key, RoutedAboveScope, nil
		}

		if tab, ok := container.(*navtree.Tab); ok {
			if idx, found := residentTabIndex(tab, dest); found {
				newTree, err := navtree.Replace(tree, tab.Key(), tab.WithActiveIndex(idx))
				if err != nil {
					return nil, "", "", err
				}
				return newTree, "", RoutedToTab, nil
			}
		}
	}

	newTree, key, err := Push(tree, dest, transition, gen)
	if err != nil {
		return nil, "", "", err
	}
	return newTree, key, RoutedToStack, nil
}

// ReplaceTop swaps the top entry of the active stack for a new Screen.
// When the stack is empty this degenerates to a plain push.
func ReplaceTop(tree navtree.Node, dest navtree.Destination, transition string, gen KeyFunc) (navtree.Node, string, error) {
	stack := navtree.ActiveStack(tree)
	if stack == nil {
		return nil, "", navErr.New(navErr.ErrCodeNoActiveStack, "replace requires an active stack")
	}
	return pushOnto(tree, stack.WithoutLast(), dest, transition, gen)
}

// ClearAndPush empties the active stack and pushes dest as its sole
// entry.
func ClearAndPush(tree navtree.Node, dest navtree.Destination, transition string, gen KeyFunc) (navtree.Node, string, error) {
	stack := navtree.ActiveStack(tree)
	if stack == nil {
		return nil, "", navErr.New(navErr.ErrCodeNoActiveStack, "clear requires an active stack")
	}
	return pushOnto(tree, stack.WithChildren(nil), dest, transition, gen)
}

// containerScopeKey returns the scope key a node carries, or "".
func containerScopeKey(n navtree.Node) string {
	switch n := n.(type) {
	case *navtree.Stack:
		return n.ScopeKey()
	case *navtree.Tab:
		return n.ScopeKey()
	case *navtree.Pane:
		return n.ScopeKey()
	default:
		return ""
	}
}

// nearestStackAbove returns the deepest Stack strictly above path[i].
func nearestStackAbove(path []navtree.Node, i int) *navtree.Stack {
	for j := i - 1; j >= 0; j-- {
		if stack, ok := path[j].(*navtree.Stack); ok {
			return stack
		}
	}
	return nil
}

// residentTabIndex finds a non-active tab whose subtree already holds a
// screen of dest's kind.
func residentTabIndex(tab *navtree.Tab, dest navtree.Destination) (int, bool) {
	for i := 0; i < tab.Count(); i++ {
		if i == tab.ActiveIndex() {
			continue
		}
		for _, screen := range navtree.Screens(tab.StackAt(i)) {
			if screen.Destination() != nil && screen.Destination().Kind() == dest.Kind() {
				return i, true
			}
		}
	}
	return 0, false
}
