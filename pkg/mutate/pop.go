package mutate

import (
	"github.com/odvcencio/navkit/pkg/navtree"
)

// Pop removes the top entry of the active stack. Returns nil when
// popping is impossible: the active stack is already empty, or the
// root stack holds its last entry under Cascade and there is nothing
// to cascade into.
//
// When the pop empties the stack, behavior decides what happens next:
// PreserveEmpty leaves the zero-child stack in place; Cascade removes
// the emptied stack from its parent, recursively, stopping at tab and
// pane content stacks, which are structural and only ever cleared.
func Pop(tree navtree.Node, behavior EmptyStackBehavior) navtree.Node {
	stack := navtree.ActiveStack(tree)
	if stack == nil || stack.Len() == 0 {
		return nil
	}

	if stack.Len() > 1 || behavior == PreserveEmpty {
		newTree, err := navtree.Replace(tree, stack.Key(), stack.WithoutLast())
		if err != nil {
			return nil
		}
		return newTree
	}

	// Cascade, and the pop empties the stack.
	if stack.Parent() == "" {
		// Root stack at its last entry: no cascade target.
		return nil
	}

	newTree, err := navtree.Replace(tree, stack.Key(), stack.WithoutLast())
	if err != nil {
		return nil
	}
	return cascadeEmpty(newTree, stack.Key())
}

// cascadeEmpty removes the empty stack at key from its parent,
// continuing up while parents become empty. Tab and pane content
// stacks stop the cascade: they stay in place, cleared.
func cascadeEmpty(tree navtree.Node, key string) navtree.Node {
	for {
		node := navtree.FindByKey(tree, key)
		if node == nil {
			return tree
		}
		parent := navtree.ParentOf(tree, node)
		if parent == nil {
			// Reached the root; it stays, possibly empty.
			return tree
		}

		parentStack, ok := parent.(*navtree.Stack)
		if !ok {
			// Tab or pane content stack: cleared, never removed.
			return tree
		}

		newTree, err := navtree.Remove(tree, key)
		if err != nil {
			return tree
		}
		tree = newTree

		remaining := navtree.FindByKey(tree, parentStack.Key())
		if stack, ok := remaining.(*navtree.Stack); !ok || stack.Len() > 0 {
			return tree
		}
		key = parentStack.Key()
	}
}

// PopTo truncates the active stack down to the first entry (searching
// from the top) matching pred. With inclusive set, the match itself is
// removed too. Returns nil when no entry matches or when the
// truncation would empty the stack.
func PopTo(tree navtree.Node, pred func(navtree.Node) bool, inclusive bool) navtree.Node {
	stack := navtree.ActiveStack(tree)
	if stack == nil {
		return nil
	}

	match := -1
	for i := stack.Len() - 1; i >= 0; i-- {
		if pred(stack.ChildAt(i)) {
			match = i
			break
		}
	}
	if match == -1 {
		return nil
	}

	cut := match + 1
	if inclusive {
		cut = match
	}
	if cut == 0 {
		// Truncating to nothing is a no-op.
		return nil
	}
	if cut == stack.Len() {
		// Nothing above the match to remove.
		return nil
	}

	children := stack.Children()[:cut]
	newTree, err := navtree.Replace(tree, stack.Key(), stack.WithChildren(children))
	if err != nil {
		return nil
	}
	return newTree
}
