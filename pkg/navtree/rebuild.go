package navtree

import (
	navErr "github.com/odvcencio/navkit/pkg/errors"
)

// Replace returns a new tree with the node at key swapped for
// replacement. Only the ancestor chain of key is rebuilt; every sibling
// subtree is reused by reference. The replacement's key and parent must
// already be consistent with its position; Replace does not re-home it.
//
// Returns a NODE_NOT_FOUND error when key is absent, and an
// INVALID_INPUT error when the replacement's variant would break its
// container's shape (a tab stack or pane slot replaced by a non-stack).
func Replace(root Node, key string, replacement Node) (Node, error) {
	out, found, err := replaceIn(root, key, replacement)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, navErr.Newf(navErr.ErrCodeNodeNotFound, "no node with key %q", key)
	}
	return out, nil
}

func replaceIn(n Node, key string, replacement Node) (Node, bool, error) {
	if n == nil {
		return nil, false, nil
	}
	if n.Key() == key {
		return replacement, true, nil
	}

	switch node := n.(type) {
	case *Screen:
		return n, false, nil

	case *Stack:
		for i := 0; i < node.Len(); i++ {
			child, found, err := replaceIn(node.ChildAt(i), key, replacement)
			if err != nil {
				return nil, false, err
			}
			if found {
				children := node.Children()
				children[i] = child
				return node.WithChildren(children), true, nil
			}
		}
		return n, false, nil

	case *Tab:
		for i := 0; i < node.Count(); i++ {
			child, found, err := replaceIn(node.StackAt(i), key, replacement)
			if err != nil {
				return nil, false, err
			}
			if found {
				stack, ok := child.(*Stack)
				if !ok {
					return nil, false, navErr.Newf(navErr.ErrCodeInvalidInput,
						"tab stack %q must remain a stack, got %T", key, child).
						WithContext("tab", node.Key())
				}
				return node.WithStackAt(i, stack), true, nil
			}
		}
		return n, false, nil

	case *Pane:
		for _, role := range node.Roles() {
			slot, _ := node.Slot(role)
			child, found, err := replaceIn(slot.Stack, key, replacement)
			if err != nil {
				return nil, false, err
			}
			if found {
				stack, ok := child.(*Stack)
				if !ok {
					return nil, false, navErr.Newf(navErr.ErrCodeInvalidInput,
						"pane slot %q must remain a stack, got %T", key, child).
						WithContext("pane", node.Key())
				}
				slot.Stack = stack
				return node.WithSlot(role, slot), true, nil
			}
		}
		return n, false, nil

	default:
		return nil, false, navErr.Newf(navErr.ErrCodeInternal, "unknown node variant %T", n)
	}
}

// Remove returns a new tree with the node at key removed from its
// parent stack. Only stacks can lose children: a tab's per-tab stack
// and a pane's slot stack are structural and may only be cleared, never
// removed, so attempting either is an INVALID_INPUT error. Removing the
// root is likewise invalid.
func Remove(root Node, key string) (Node, error) {
	if root == nil {
		return nil, navErr.New(navErr.ErrCodeInvalidInput, "remove on empty tree")
	}
	if root.Key() == key {
		return nil, navErr.New(navErr.ErrCodeInvalidInput, "cannot remove the tree root").
			WithContext("key", key)
	}

	target := FindByKey(root, key)
	if target == nil {
		return nil, navErr.Newf(navErr.ErrCodeNodeNotFound, "no node with key %q", key)
	}

	parent := ParentOf(root, target)
	if parent == nil {
		return nil, navErr.Newf(navErr.ErrCodeInternal, "node %q has dangling parent %q", key, target.Parent())
	}

	parentStack, ok := parent.(*Stack)
	if !ok {
		return nil, navErr.Newf(navErr.ErrCodeInvalidInput,
			"node %q is structural content of a %T and cannot be removed", key, parent).
			WithContext("parent", parent.Key())
	}

	children := make([]Node, 0, parentStack.Len()-1)
	for i := 0; i < parentStack.Len(); i++ {
		if child := parentStack.ChildAt(i); child.Key() != key {
			children = append(children, child)
		}
	}

	if parent.Key() == root.Key() {
		return parentStack.WithChildren(children), nil
	}
	return Replace(root, parent.Key(), parentStack.WithChildren(children))
}
