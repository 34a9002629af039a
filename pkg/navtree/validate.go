package navtree

import (
	navErr "github.com/odvcencio/navkit/pkg/errors"
)

// Validate checks the cross-cutting tree invariants: unique keys,
// consistent parent links, every tab index in bounds, and every pane
// holding a Primary slot with a configured active role. Returns the
// first violation found, or nil.
//
// Mutator operations preserve these invariants by construction;
// Validate exists for tests, debug builds, and snapshot decoding.
func Validate(root Node) error {
	if root == nil {
		return navErr.New(navErr.ErrCodeInvalidInput, "tree root is nil")
	}
	if root.Parent() != "" {
		return navErr.Newf(navErr.ErrCodeInvalidInput,
			"root node %q has non-empty parent %q", root.Key(), root.Parent())
	}

	seen := make(map[string]struct{})
	return validateNode(root, seen)
}

func validateNode(n Node, seen map[string]struct{}) error {
	if n.Key() == "" {
		return navErr.New(navErr.ErrCodeInvalidInput, "node has empty key")
	}
	if _, dup := seen[n.Key()]; dup {
		return navErr.Newf(navErr.ErrCodeDuplicateKey, "key %q appears more than once", n.Key())
	}
	seen[n.Key()] = struct{}{}

	switch node := n.(type) {
	case *Screen:
		if node.Destination() == nil {
			return navErr.Newf(navErr.ErrCodeInvalidInput, "screen %q has nil destination", node.Key())
		}
		return nil

	case *Stack:
		for i := 0; i < node.Len(); i++ {
			child := node.ChildAt(i)
			if child.Parent() != node.Key() {
				return navErr.Newf(navErr.ErrCodeInvalidInput,
					"child %q of stack %q claims parent %q", child.Key(), node.Key(), child.Parent())
			}
			if err := validateNode(child, seen); err != nil {
				return err
			}
		}
		return nil

	case *Tab:
		if node.Count() == 0 {
			return navErr.Newf(navErr.ErrCodeInvalidInput, "tab %q has no stacks", node.Key())
		}
		if node.ActiveIndex() < 0 || node.ActiveIndex() >= node.Count() {
			return navErr.Newf(navErr.ErrCodeIndexOutOfRange,
				"tab %q active index %d out of range [0,%d)", node.Key(), node.ActiveIndex(), node.Count())
		}
		for i := 0; i < node.Count(); i++ {
			stack := node.StackAt(i)
			if stack.Parent() != node.Key() {
				return navErr.Newf(navErr.ErrCodeInvalidInput,
					"stack %q of tab %q claims parent %q", stack.Key(), node.Key(), stack.Parent())
			}
			if err := validateNode(stack, seen); err != nil {
				return err
			}
		}
		return nil

	case *Pane:
		if _, ok := node.Slot(RolePrimary); !ok {
			return navErr.Newf(navErr.ErrCodePrimaryPaneRequired, "pane %q is missing its primary slot", node.Key())
		}
		if _, ok := node.Slot(node.ActiveRole()); !ok {
			return navErr.Newf(navErr.ErrCodeRoleNotConfigured,
				"pane %q active role %q not configured", node.Key(), node.ActiveRole())
		}
		for _, role := range node.Roles() {
			slot, _ := node.Slot(role)
			if slot.Stack == nil {
				return navErr.Newf(navErr.ErrCodeInvalidInput,
					"pane %q role %q has nil content stack", node.Key(), role)
			}
			if slot.Stack.Parent() != node.Key() {
				return navErr.Newf(navErr.ErrCodeInvalidInput,
					"stack %q of pane %q claims parent %q", slot.Stack.Key(), node.Key(), slot.Stack.Parent())
			}
			if err := validateNode(slot.Stack, seen); err != nil {
				return err
			}
		}
		return nil

	default:
		return navErr.Newf(navErr.ErrCodeInternal, "unknown node variant %T", n)
	}
}
