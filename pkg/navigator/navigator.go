// Package navigator is the facade that owns a navigation tree and its
// transition state. It applies intents serially, recomputes derived
// projections after every mutation, and publishes immutable snapshots
// to observers.
package navigator

import (
	"sync"

	navErr "github.com/odvcencio/navkit/pkg/errors"
	"github.com/odvcencio/navkit/pkg/logging"
	"github.com/odvcencio/navkit/pkg/metrics"
	"github.com/odvcencio/navkit/pkg/mutate"
	"github.com/odvcencio/navkit/pkg/navtree"
	"github.com/odvcencio/navkit/pkg/scope"
	"github.com/odvcencio/navkit/pkg/transition"
)

// IntentRecorder persists applied intents. The journal package provides
// the SQLite implementation; tests substitute their own.
type IntentRecorder interface {
	RecordIntent(op, fromKind, toKind, nodeKey string) error
}

// Navigator holds the authoritative tree and transition state.
//
// The design is single-writer, multi-reader: one logical owner calls
// the mutating methods, while any number of observers read snapshots.
// The internal mutex keeps accidental concurrent writers from
// corrupting state rather than making concurrent writing a supported
// pattern.
type Navigator struct {
	mu sync.RWMutex

	id         string
	tree       navtree.Node
	tm         *transition.Manager
	keys       KeyGenerator
	scopes     scope.Registry
	containers scope.ContainerRegistry
	pop        mutate.EmptyStackBehavior

	logger   *logging.Logger
	counters *metrics.Metrics
	recorder IntentRecorder

	watchers *watcherSet
	broker   *resultBroker
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithID sets the navigator id used in log events.
func WithID(id string) Option {
	return func(n *Navigator) { n.id = id }
}

// WithKeyGenerator replaces the default ULID key generator.
func WithKeyGenerator(gen KeyGenerator) Option {
	return func(n *Navigator) { n.keys = gen }
}

// WithScopeRegistry sets the scope registry consulted on navigate.
func WithScopeRegistry(reg scope.Registry) Option {
	return func(n *Navigator) { n.scopes = reg }
}

// WithContainerRegistry sets the container registry consulted on
// navigate.
func WithContainerRegistry(reg scope.ContainerRegistry) Option {
	return func(n *Navigator) { n.containers = reg }
}

// WithLogger attaches a structured event logger.
func WithLogger(logger *logging.Logger) Option {
	return func(n *Navigator) { n.logger = logger }
}

// WithMetrics attaches navigation counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(n *Navigator) { n.counters = m }
}

// WithRecorder attaches an intent journal.
func WithRecorder(r IntentRecorder) Option {
	return func(n *Navigator) { n.recorder = r }
}

// WithPopBehavior sets the empty-stack behavior used by plain pops.
func WithPopBehavior(b mutate.EmptyStackBehavior) Option {
	return func(n *Navigator) { n.pop = b }
}

// New creates a Navigator rooted at the given tree. The root must
// validate; an invalid root is a programmer error and panics.
func New(root navtree.Node, opts ...Option) *Navigator {
	if err := navtree.Validate(root); err != nil {
		panic(err)
	}

	n := &Navigator{
		id:         "navigator",
		tree:       root,
		tm:         transition.NewManager(root),
		scopes:     scope.Empty{},
		containers: scope.EmptyContainers{},
		pop:        mutate.Cascade,
		watchers:   newWatcherSet(),
		broker:     newResultBroker(),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.keys == nil {
		n.keys = NewULIDGenerator()
	}
	return n
}

// NavigateOption configures a single navigate call.
type NavigateOption func(*navigateConfig)

type navigateConfig struct {
	transition string
}

// WithTransition attaches an opaque transition hint to the new screen.
func WithTransition(t string) NavigateOption {
	return func(c *navigateConfig) { c.transition = t }
}

// Navigate pushes a new destination. The container registry is
// consulted first: a destination that requires a container gets one
// built and pushed unless the active path already sits inside a
// container of the same scope. Otherwise the push routes with scope
// awareness. Returns the new node's key, or "" when routing switched
// tabs instead of creating a node.
func (n *Navigator) Navigate(dest navtree.Destination, opts ...NavigateOption) (string, error) {
	if dest == nil {
		return "", navErr.New(navErr.ErrCodeInvalidInput, "navigate requires a destination")
	}
	var cfg navigateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if info, ok := n.containers.ContainerInfo(dest); ok && !n.insideScope(info.ScopeKey) {
		return n.wrapInContainer(dest, info)
	}

	from := n.currentKindLocked()
	newTree, key, routing, err := mutate.PushScoped(n.tree, dest, cfg.transition, n.scopes, n.keys.NewKey)
	if err != nil {
		return "", err
	}
	n.apply(newTree)
	n.counters.Navigation(string(routing))
	n.record("navigate", from, dest.Kind(), key)
	n.logger.Info(logging.CategoryNavigate, "navigate", "", map[string]any{
		"destination": dest.Kind(),
		"routing":     string(routing),
		"key":         key,
	})
	return key, nil
}

// wrapInContainer builds the destination's container and pushes it onto
// the active stack. Caller holds the lock.
func (n *Navigator) wrapInContainer(dest navtree.Destination, info scope.ContainerInfo) (string, error) {
	parent := navtree.ActiveStack(n.tree)
	if parent == nil {
		return "", navErr.New(navErr.ErrCodeNoActiveStack, "container push requires an active stack")
	}

	containerKey := n.keys.NewKey()
	container := info.Build(containerKey, parent.Key(), info.InitialIndex)
	if container == nil {
		return "", navErr.New(navErr.ErrCodeInternal, "container builder returned nil").
			WithContext("destination", dest.Kind())
	}

	from := n.currentKindLocked()
	newTree, err := navtree.Replace(n.tree, parent.Key(), parent.WithAppended(container))
	if err != nil {
		return "", err
	}
	n.apply(newTree)
	n.counters.Navigation("wrap_in_container")
	n.record("navigate_container", from, dest.Kind(), containerKey)
	n.logger.Info(logging.CategoryContainer, "wrap", "", map[string]any{
		"destination": dest.Kind(),
		"scope":       info.ScopeKey,
		"key":         containerKey,
	})
	return containerKey, nil
}

// insideScope reports whether the active path already holds a scoped
// container with the given scope key.
func (n *Navigator) insideScope(scopeKey string) bool {
	if scopeKey == "" {
		return false
	}
	for _, node := range navtree.ActivePath(n.tree) {
		switch node := node.(type) {
		case *navtree.Stack:
			if node.ScopeKey() == scopeKey {
				return true
			}
		case *navtree.Tab:
			if node.ScopeKey() == scopeKey {
				return true
			}
		case *navtree.Pane:
			if node.ScopeKey() == scopeKey {
				return true
			}
		}
	}
	return false
}

// NavigateAndReplace swaps the top of the active stack for dest.
func (n *Navigator) NavigateAndReplace(dest navtree.Destination, opts ...NavigateOption) (string, error) {
	var cfg navigateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	from := n.currentKindLocked()
	newTree, key, err := mutate.ReplaceTop(n.tree, dest, cfg.transition, n.keys.NewKey)
	if err != nil {
		return "", err
	}
	n.apply(newTree)
	n.counters.Navigation("replace_top")
	n.record("navigate_replace", from, dest.Kind(), key)
	n.logger.Info(logging.CategoryNavigate, "replace", "", map[string]any{
		"destination": dest.Kind(),
		"key":         key,
	})
	return key, nil
}

// NavigateAndClearAll empties the active stack and pushes dest as its
// sole entry.
func (n *Navigator) NavigateAndClearAll(dest navtree.Destination, opts ...NavigateOption) (string, error) {
	var cfg navigateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	from := n.currentKindLocked()
	newTree, key, err := mutate.ClearAndPush(n.tree, dest, cfg.transition, n.keys.NewKey)
	if err != nil {
		return "", err
	}
	n.apply(newTree)
	n.counters.Navigation("clear_all")
	n.record("navigate_clear_all", from, dest.Kind(), key)
	n.logger.Info(logging.CategoryNavigate, "clear_all", "", map[string]any{
		"destination": dest.Kind(),
		"key":         key,
	})
	return key, nil
}

// NavigateBack applies tree-aware back resolution. The returned kind
// tells the host whether the engine handled back, wants the system to
// take over, or needs a presentation-level fallback.
func (n *Navigator) NavigateBack() mutate.BackResultKind {
	n.mu.Lock()
	defer n.mu.Unlock()

	from := n.currentKindLocked()
	result := mutate.PopWithTabBehavior(n.tree)
	if result.Kind == mutate.BackHandled {
		n.apply(result.Tree)
		n.counters.Pop()
		n.record("back", from, n.currentKindLocked(), "")
	}
	n.logger.Info(logging.CategoryBack, "navigate_back", "", map[string]any{
		"outcome": int(result.Kind),
	})
	return result.Kind
}

// Pop pops the active stack with the configured empty-stack behavior.
// Reports whether the tree changed.
func (n *Navigator) Pop() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	from := n.currentKindLocked()
	newTree := mutate.Pop(n.tree, n.pop)
	if newTree == nil {
		return false
	}
	n.apply(newTree)
	n.counters.Pop()
	n.record("pop", from, n.currentKindLocked(), "")
	return true
}

// PopTo pops the active stack down to the deepest entry matching pred.
// Reports whether the tree changed.
func (n *Navigator) PopTo(pred func(navtree.Node) bool, inclusive bool) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	from := n.currentKindLocked()
	newTree := mutate.PopTo(n.tree, pred, inclusive)
	if newTree == nil {
		return false
	}
	n.apply(newTree)
	n.counters.Pop()
	n.record("pop_to", from, n.currentKindLocked(), "")
	return true
}

// SwitchTab selects a tab by index.
func (n *Navigator) SwitchTab(tabKey string, index int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	newTree, err := mutate.SwitchTab(n.tree, tabKey, index)
	if err != nil {
		return err
	}
	if newTree == nil {
		return nil
	}
	n.apply(newTree)
	n.counters.TabSwitch()
	n.record("switch_tab", "", n.currentKindLocked(), tabKey)
	n.logger.Info(logging.CategoryTab, "switch", "", map[string]any{
		"tab":   tabKey,
		"index": index,
	})
	return nil
}

// NavigateToPane pushes dest onto a pane role's stack, optionally
// moving focus there.
func (n *Navigator) NavigateToPane(paneKey string, role navtree.PaneRole, dest navtree.Destination, switchFocus bool, opts ...NavigateOption) (string, error) {
	var cfg navigateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	from := n.currentKindLocked()
	newTree, key, err := mutate.NavigateToPane(n.tree, paneKey, role, dest, switchFocus, cfg.transition, n.keys.NewKey)
	if err != nil {
		return "", err
	}
	n.apply(newTree)
	n.counters.PaneOp()
	n.record("navigate_pane", from, dest.Kind(), key)
	n.logger.Info(logging.CategoryPane, "navigate", "", map[string]any{
		"pane":        paneKey,
		"role":        string(role),
		"destination": dest.Kind(),
	})
	return key, nil
}

// SwitchActivePane moves a pane's focus to role.
func (n *Navigator) SwitchActivePane(paneKey string, role navtree.PaneRole) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	newTree, err := mutate.SwitchActivePane(n.tree, paneKey, role)
	if err != nil {
		return err
	}
	if newTree == nil {
		return nil
	}
	n.apply(newTree)
	n.counters.PaneOp()
	n.record("switch_pane", "", n.currentKindLocked(), paneKey)
	return nil
}

// PopPane pops one entry from a pane role's stack.
func (n *Navigator) PopPane(paneKey string, role navtree.PaneRole) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	newTree, err := mutate.PopPane(n.tree, paneKey, role)
	if err != nil {
		return err
	}
	if newTree == nil {
		return nil
	}
	n.apply(newTree)
	n.counters.PaneOp()
	n.record("pop_pane", "", n.currentKindLocked(), paneKey)
	return nil
}

// RemovePaneConfiguration drops a secondary role from a pane.
func (n *Navigator) RemovePaneConfiguration(paneKey string, role navtree.PaneRole) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	newTree, err := mutate.RemovePaneConfiguration(n.tree, paneKey, role)
	if err != nil {
		return err
	}
	n.apply(newTree)
	n.counters.PaneOp()
	n.record("remove_pane_role", "", n.currentKindLocked(), paneKey)
	return nil
}

// Tree returns the authoritative tree.
func (n *Navigator) Tree() navtree.Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.tree
}

// TransitionState returns the current transition snapshot.
func (n *Navigator) TransitionState() transition.State {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.tm.State()
}

// CurrentDestination is the destination of the active leaf screen, or
// nil when the active stack is empty.
func (n *Navigator) CurrentDestination() navtree.Destination {
	n.mu.RLock()
	defer n.mu.RUnlock()

	leaf := navtree.ActiveLeaf(n.tree)
	if leaf == nil {
		return nil
	}
	return leaf.Destination()
}

// PreviousDestination is the destination back would reveal within the
// active stack, or nil when the stack holds fewer than two entries or
// the entry below the top is not a screen.
func (n *Navigator) PreviousDestination() navtree.Destination {
	n.mu.RLock()
	defer n.mu.RUnlock()

	stack := navtree.ActiveStack(n.tree)
	if stack == nil || stack.Len() < 2 {
		return nil
	}
	screen, ok := stack.ChildAt(stack.Len() - 2).(*navtree.Screen)
	if !ok {
		return nil
	}
	return screen.Destination()
}

// CanNavigateBack reports whether NavigateBack would change the tree.
func (n *Navigator) CanNavigateBack() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return mutate.PopWithTabBehavior(n.tree).Kind == mutate.BackHandled
}

// Entries is the flat back-stack projection of the active stack.
func (n *Navigator) Entries() []navtree.Entry {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return navtree.Entries(n.tree)
}

// Watch subscribes to snapshots published after every applied intent.
// The cancel function must be called when the observer goes away.
func (n *Navigator) Watch() (<-chan Snapshot, func()) {
	return n.watchers.Add()
}

// ExpectResult registers interest in a result from the screen with the
// given node key. The channel receives exactly one Result; the await
// fails with ErrScreenGone if a mutation removes the key first.
func (n *Navigator) ExpectResult(key string) <-chan Result {
	return n.broker.Expect(key)
}

// DeliverResult resolves a pending result await. Reports whether an
// await was waiting for the key.
func (n *Navigator) DeliverResult(key string, value any) bool {
	return n.broker.Deliver(key, value)
}

// apply installs a new tree while Idle: transition state, result
// broker, and watchers all observe the change. Caller holds the write
// lock.
func (n *Navigator) apply(newTree navtree.Node) {
	oldKeys := navtree.ScreenKeys(n.tree)
	n.tree = newTree
	n.tm.SetCurrent(newTree)
	n.broker.FailRemoved(oldKeys, navtree.ScreenKeys(newTree))
	n.publish()
}

// publish fans the current snapshot out to watchers. Caller holds the
// lock.
func (n *Navigator) publish() {
	n.watchers.Publish(Snapshot{Tree: n.tree, Transition: n.tm.State()})
}

// currentKindLocked is the active leaf's destination kind, or "".
// Caller holds the lock.
func (n *Navigator) currentKindLocked() string {
	leaf := navtree.ActiveLeaf(n.tree)
	if leaf == nil || leaf.Destination() == nil {
		return ""
	}
	return leaf.Destination().Kind()
}

// record appends to the intent journal, if one is attached. Journal
// failures are logged, never surfaced: diagnostics must not break
// navigation.
func (n *Navigator) record(op, fromKind, destKind, nodeKey string) {
	if n.recorder == nil {
		return
	}
	if err := n.recorder.RecordIntent(op, fromKind, destKind, nodeKey); err != nil {
		n.logger.Warn(logging.CategoryJournal, "record_failed", err.Error(), map[string]any{
			"op": op,
		})
	}
}
