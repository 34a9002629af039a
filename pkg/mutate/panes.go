package mutate

import (
	navErr "github.com/odvcencio/navkit/pkg/errors"
	"github.com/odvcencio/navkit/pkg/navtree"
)

// findPane resolves paneKey to a Pane node.
func findPane(tree navtree.Node, paneKey string) (*navtree.Pane, error) {
	node := navtree.FindByKey(tree, paneKey)
	if node == nil {
		return nil, navErr.Newf(navErr.ErrCodeNodeNotFound, "no node with key %q", paneKey)
	}
	pane, ok := node.(*navtree.Pane)
	if !ok {
		return nil, navErr.Newf(navErr.ErrCodeNotAPane, "node %q is a %T, not a pane", paneKey, node)
	}
	return pane, nil
}

// NavigateToPane appends a Screen for dest onto the given pane role's
// content stack, optionally moving focus to that role. Returns the new
// tree and the new screen's key.
func NavigateToPane(tree navtree.Node, paneKey string, role navtree.PaneRole, dest navtree.Destination, switchFocus bool, transition string, gen KeyFunc) (navtree.Node, string, error) {
	pane, err := findPane(tree, paneKey)
	if err != nil {
		return nil, "", err
	}

	slot, ok := pane.Slot(role)
	if !ok {
		return nil, "", navErr.Newf(navErr.ErrCodeRoleNotConfigured, "role %q not configured", role).
			WithContext("pane", paneKey)
	}

	key := gen()
	screen := navtree.NewScreen(key, slot.Stack.Key(), dest)
	if transition != "" {
		screen = screen.WithTransition(transition)
	}
	slot.Stack = slot.Stack.WithAppended(screen)

	newPane := pane.WithSlot(role, slot)
	if switchFocus {
		newPane = newPane.WithActiveRole(role)
	}

	newTree, err := navtree.Replace(tree, paneKey, newPane)
	if err != nil {
		return nil, "", err
	}
	return newTree, key, nil
}

// SwitchActivePane moves the pane's focus to role. Returns (nil, nil)
// when the role is already focused.
func SwitchActivePane(tree navtree.Node, paneKey string, role navtree.PaneRole) (navtree.Node, error) {
	pane, err := findPane(tree, paneKey)
	if err != nil {
		return nil, err
	}

	if _, ok := pane.Slot(role); !ok {
		return nil, navErr.Newf(navErr.ErrCodeRoleNotConfigured, "role %q not configured", role).
			WithContext("pane", paneKey)
	}

	if pane.ActiveRole() == role {
		return nil, nil
	}

	return navtree.Replace(tree, paneKey, pane.WithActiveRole(role))
}

// PopPane removes the top entry of the given pane role's content
// stack. Returns (nil, nil) when the stack is already empty.
func PopPane(tree navtree.Node, paneKey string, role navtree.PaneRole) (navtree.Node, error) {
	pane, err := findPane(tree, paneKey)
	if err != nil {
		return nil, err
	}

	slot, ok := pane.Slot(role)
	if !ok {
		return nil, navErr.Newf(navErr.ErrCodeRoleNotConfigured, "role %q not configured", role).
			WithContext("pane", paneKey)
	}

	if slot.Stack.Len() == 0 {
		return nil, nil
	}

	slot.Stack = slot.Stack.WithoutLast()
	return navtree.Replace(tree, paneKey, pane.WithSlot(role, slot))
}

// RemovePaneConfiguration drops a secondary role from the pane's
// configuration. Removing Primary is rejected; if the removed role was
// focused, focus returns to Primary.
func RemovePaneConfiguration(tree navtree.Node, paneKey string, role navtree.PaneRole) (navtree.Node, error) {
	pane, err := findPane(tree, paneKey)
	if err != nil {
		return nil, err
	}

	if role == navtree.RolePrimary {
		return nil, navErr.New(navErr.ErrCodePrimaryPaneRequired, "cannot remove the primary slot").
			WithContext("pane", paneKey)
	}
	if _, ok := pane.Slot(role); !ok {
		return nil, navErr.Newf(navErr.ErrCodeRoleNotConfigured, "role %q not configured", role).
			WithContext("pane", paneKey)
	}

	return navtree.Replace(tree, paneKey, pane.WithoutRole(role))
}
