// Package snapshot encodes a navigation tree to YAML and back. The
// encoding is a tagged union: every node carries a type discriminator,
// so a decoded tree reconstructs the exact variant structure. Hosts
// with typed destinations plug in a factory to rebuild them; the
// default decodes into BasicDestination.
package snapshot

import (
	"gopkg.in/yaml.v3"

	navErr "github.com/odvcencio/navkit/pkg/errors"
	"github.com/odvcencio/navkit/pkg/navtree"
)

// DestinationFactory rebuilds a host destination from its encoded kind
// and arguments.
type DestinationFactory func(kind string, args map[string]any) navtree.Destination

// node is the wire form of one tree node.
type node struct {
	Type         string         `yaml:"type"`
	Key          string         `yaml:"key"`
	Parent       string         `yaml:"parent,omitempty"`
	ScopeKey     string         `yaml:"scope,omitempty"`
	Destination  string         `yaml:"destination,omitempty"`
	Args         map[string]any `yaml:"args,omitempty"`
	Transition   string         `yaml:"transition,omitempty"`
	SavedState   map[string]any `yaml:"saved_state,omitempty"`
	Children     []*node        `yaml:"children,omitempty"`
	Stacks       []*node        `yaml:"stacks,omitempty"`
	ActiveIndex  int            `yaml:"active_index,omitempty"`
	InitialIndex int            `yaml:"initial_index,omitempty"`
	Slots        []slot         `yaml:"slots,omitempty"`
	ActiveRole   string         `yaml:"active_role,omitempty"`
	BackBehavior string         `yaml:"back_behavior,omitempty"`
}

// slot is the wire form of one pane slot.
type slot struct {
	Role  string `yaml:"role"`
	Adapt string `yaml:"adapt,omitempty"`
	Stack *node  `yaml:"stack"`
}

const (
	typeScreen = "screen"
	typeStack  = "stack"
	typeTab    = "tab"
	typePane   = "pane"
)

// Encode serializes a tree to YAML.
func Encode(root navtree.Node) ([]byte, error) {
	wire, err := toWire(root)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(wire)
	if err != nil {
		return nil, navErr.Wrap(err, navErr.ErrCodeSnapshotEncode, "failed to marshal tree")
	}
	return data, nil
}

// Decode rebuilds a tree from YAML and validates it. A nil factory
// decodes destinations into BasicDestination.
func Decode(data []byte, factory DestinationFactory) (navtree.Node, error) {
	if factory == nil {
		factory = func(kind string, args map[string]any) navtree.Destination {
			return navtree.BasicDestination{Name: kind, Args: args}
		}
	}

	var wire node
	if err := yaml.Unmarshal(data, &wire); err != nil {
		return nil, navErr.Wrap(err, navErr.ErrCodeSnapshotDecode, "failed to unmarshal tree")
	}

	root, err := fromWire(&wire, factory)
	if err != nil {
		return nil, err
	}
	if err := navtree.Validate(root); err != nil {
		return nil, navErr.Wrap(err, navErr.ErrCodeSnapshotDecode, "decoded tree is invalid")
	}
	return root, nil
}

func toWire(n navtree.Node) (*node, error) {
	switch n := n.(type) {
	case *navtree.Screen:
		out := &node{
			Type:       typeScreen,
			Key:        n.Key(),
			Parent:     n.Parent(),
			Transition: n.Transition(),
			SavedState: n.SavedState(),
		}
		if dest := n.Destination(); dest != nil {
			out.Destination = dest.Kind()
			if basic, ok := dest.(navtree.BasicDestination); ok {
				out.Args = basic.Args
			}
		}
		return out, nil

	case *navtree.Stack:
		out := &node{
			Type:     typeStack,
			Key:      n.Key(),
			Parent:   n.Parent(),
			ScopeKey: n.ScopeKey(),
		}
		for _, child := range n.Children() {
			wire, err := toWire(child)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, wire)
		}
		return out, nil

	case *navtree.Tab:
		out := &node{
			Type:         typeTab,
			Key:          n.Key(),
			Parent:       n.Parent(),
			ScopeKey:     n.ScopeKey(),
			ActiveIndex:  n.ActiveIndex(),
			InitialIndex: n.InitialIndex(),
		}
		for _, stack := range n.Stacks() {
			wire, err := toWire(stack)
			if err != nil {
				return nil, err
			}
			out.Stacks = append(out.Stacks, wire)
		}
		return out, nil

	case *navtree.Pane:
		out := &node{
			Type:         typePane,
			Key:          n.Key(),
			Parent:       n.Parent(),
			ScopeKey:     n.ScopeKey(),
			ActiveRole:   string(n.ActiveRole()),
			BackBehavior: string(n.BackBehavior()),
		}
		for _, role := range n.Roles() {
			s, _ := n.Slot(role)
			wire, err := toWire(s.Stack)
			if err != nil {
				return nil, err
			}
			out.Slots = append(out.Slots, slot{
				Role:  string(role),
				Adapt: string(s.Adapt),
				Stack: wire,
			})
		}
		return out, nil

	default:
		return nil, navErr.Newf(navErr.ErrCodeSnapshotEncode, "unknown node variant %T", n)
	}
}

func fromWire(w *node, factory DestinationFactory) (navtree.Node, error) {
	switch w.Type {
	case typeScreen:
		screen := navtree.NewScreen(w.Key, w.Parent, factory(w.Destination, w.Args))
		if w.Transition != "" {
			screen = screen.WithTransition(w.Transition)
		}
		if w.SavedState != nil {
			screen = screen.WithSavedState(w.SavedState)
		}
		return screen, nil

	case typeStack:
		children := make([]navtree.Node, 0, len(w.Children))
		for _, cw := range w.Children {
			child, err := fromWire(cw, factory)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		stack := navtree.NewStack(w.Key, w.Parent, children...)
		if w.ScopeKey != "" {
			stack = stack.WithScopeKey(w.ScopeKey)
		}
		return stack, nil

	case typeTab:
		stacks := make([]*navtree.Stack, 0, len(w.Stacks))
		for _, sw := range w.Stacks {
			decoded, err := fromWire(sw, factory)
			if err != nil {
				return nil, err
			}
			stack, ok := decoded.(*navtree.Stack)
			if !ok {
				return nil, navErr.Newf(navErr.ErrCodeSnapshotDecode,
					"tab %q holds a non-stack child", w.Key)
			}
			stacks = append(stacks, stack)
		}
		if len(stacks) == 0 ||
			w.ActiveIndex < 0 || w.ActiveIndex >= len(stacks) ||
			w.InitialIndex < 0 || w.InitialIndex >= len(stacks) {
			return nil, navErr.Newf(navErr.ErrCodeSnapshotDecode,
				"tab %q has invalid stacks or indices", w.Key)
		}
		// NewTab seeds the initial index; WithActiveIndex restores the
		// selection recorded at encode time.
		tab := navtree.NewTab(w.Key, w.Parent, stacks, w.InitialIndex).
			WithActiveIndex(w.ActiveIndex)
		if w.ScopeKey != "" {
			tab = tab.WithScopeKey(w.ScopeKey)
		}
		return tab, nil

	case typePane:
		slots := make(map[navtree.PaneRole]navtree.Slot, len(w.Slots))
		for _, sw := range w.Slots {
			decoded, err := fromWire(sw.Stack, factory)
			if err != nil {
				return nil, err
			}
			stack, ok := decoded.(*navtree.Stack)
			if !ok {
				return nil, navErr.Newf(navErr.ErrCodeSnapshotDecode,
					"pane %q slot %q holds a non-stack child", w.Key, sw.Role)
			}
			slots[navtree.PaneRole(sw.Role)] = navtree.Slot{
				Stack: stack,
				Adapt: navtree.AdaptStrategy(sw.Adapt),
			}
		}
		if _, ok := slots[navtree.RolePrimary]; !ok {
			return nil, navErr.Newf(navErr.ErrCodeSnapshotDecode,
				"pane %q is missing its primary slot", w.Key)
		}
		active := navtree.PaneRole(w.ActiveRole)
		if _, ok := slots[active]; !ok {
			return nil, navErr.Newf(navErr.ErrCodeSnapshotDecode,
				"pane %q active role %q not configured", w.Key, w.ActiveRole)
		}
		pane := navtree.NewPane(w.Key, w.Parent, slots, active,
			navtree.PaneBackBehavior(w.BackBehavior))
		if w.ScopeKey != "" {
			pane = pane.WithScopeKey(w.ScopeKey)
		}
		return pane, nil

	default:
		return nil, navErr.Newf(navErr.ErrCodeSnapshotDecode, "unknown node type %q", w.Type)
	}
}
