package mutate

import (
	navErr "github.com/odvcencio/navkit/pkg/errors"
	"github.com/odvcencio/navkit/pkg/navtree"
)

// SwitchTab selects index on the Tab at tabKey. Returns (nil, nil)
// when the index is already selected. Unknown keys, non-tab nodes, and
// out-of-range indices are caller errors.
func SwitchTab(tree navtree.Node, tabKey string, index int) (navtree.Node, error) {
	node := navtree.FindByKey(tree, tabKey)
	if node == nil {
		return nil, navErr.Newf(navErr.ErrCodeNodeNotFound, "no node with key %q", tabKey)
	}

	tab, ok := node.(*navtree.Tab)
	if !ok {
		return nil, navErr.Newf(navErr.ErrCodeNotATab, "node %q is a %T, not a tab", tabKey, node)
	}

	if index < 0 || index >= tab.Count() {
		return nil, navErr.Newf(navErr.ErrCodeIndexOutOfRange,
			"tab index %d out of range [0,%d)", index, tab.Count()).
			WithContext("tab", tabKey)
	}

	if index == tab.ActiveIndex() {
		return nil, nil
	}

	return navtree.Replace(tree, tabKey, tab.WithActiveIndex(index))
}
