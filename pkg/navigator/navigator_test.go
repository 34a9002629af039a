package navigator

import (
	"strings"
	"testing"

	"github.com/odvcencio/navkit/pkg/mutate"
	"github.com/odvcencio/navkit/pkg/navtree"
	"github.com/odvcencio/navkit/pkg/scope"
)

func dest(name string) navtree.Destination {
	return navtree.BasicDestination{Name: name}
}

func seedRoot() navtree.Node {
	return navtree.NewStack("root", "", navtree.NewScreen("s0", "root", dest("home")))
}

func newTestNavigator(opts ...Option) *Navigator {
	opts = append([]Option{WithKeyGenerator(NewSequentialGenerator("k"))}, opts...)
	return New(seedRoot(), opts...)
}

func TestNavigatePushesAndProjects(t *testing.T) {
	nav := newTestNavigator()

	key, err := nav.Navigate(dest("detail"))
	if err != nil {
		t.Fatalf("Navigate error = %v", err)
	}
	if key != "k1" {
		t.Errorf("key = %q, want k1", key)
	}

	if got := nav.CurrentDestination().Kind(); got != "detail" {
		t.Errorf("CurrentDestination = %q, want detail", got)
	}
	if got := nav.PreviousDestination().Kind(); got != "home" {
		t.Errorf("PreviousDestination = %q, want home", got)
	}
	if !nav.CanNavigateBack() {
		t.Error("CanNavigateBack should be true with history")
	}
}

func TestNavigateBack(t *testing.T) {
	nav := newTestNavigator()
	if _, err := nav.Navigate(dest("detail")); err != nil {
		t.Fatal(err)
	}

	if kind := nav.NavigateBack(); kind != mutate.BackHandled {
		t.Fatalf("NavigateBack = %v, want BackHandled", kind)
	}
	if got := nav.CurrentDestination().Kind(); got != "home" {
		t.Errorf("CurrentDestination = %q, want home", got)
	}
	if nav.PreviousDestination() != nil {
		t.Error("PreviousDestination should be nil at the root entry")
	}

	if kind := nav.NavigateBack(); kind != mutate.BackDelegateToSystem {
		t.Errorf("NavigateBack at root = %v, want BackDelegateToSystem", kind)
	}
}

func TestNavigateAndReplace(t *testing.T) {
	nav := newTestNavigator()
	if _, err := nav.Navigate(dest("detail")); err != nil {
		t.Fatal(err)
	}

	if _, err := nav.NavigateAndReplace(dest("edit")); err != nil {
		t.Fatalf("NavigateAndReplace error = %v", err)
	}
	if got := nav.CurrentDestination().Kind(); got != "edit" {
		t.Errorf("CurrentDestination = %q, want edit", got)
	}
	if got := nav.PreviousDestination().Kind(); got != "home" {
		t.Errorf("PreviousDestination = %q, want home (detail replaced)", got)
	}
}

func TestNavigateAndClearAll(t *testing.T) {
	nav := newTestNavigator()
	for _, d := range []string{"a", "b", "c"} {
		if _, err := nav.Navigate(dest(d)); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := nav.NavigateAndClearAll(dest("login")); err != nil {
		t.Fatalf("NavigateAndClearAll error = %v", err)
	}
	entries := nav.Entries()
	if len(entries) != 1 {
		t.Fatalf("Entries = %d, want 1", len(entries))
	}
	if entries[0].Destination.Kind() != "login" {
		t.Errorf("sole entry = %q, want login", entries[0].Destination.Kind())
	}
}

func TestNavigateCarriesTransition(t *testing.T) {
	nav := newTestNavigator()

	key, err := nav.Navigate(dest("detail"), WithTransition("slide-up"))
	if err != nil {
		t.Fatal(err)
	}
	screen := navtree.FindByKey(nav.Tree(), key).(*navtree.Screen)
	if screen.Transition() != "slide-up" {
		t.Errorf("Transition = %q, want slide-up", screen.Transition())
	}
}

func TestNavigateWrapsInContainer(t *testing.T) {
	containers := scope.NewContainerTable()
	containers.Register("library", scope.ContainerInfo{
		ScopeKey:     "library",
		InitialIndex: 0,
		Build: func(containerKey, parentKey string, initialIndex int) navtree.Node {
			songs := navtree.NewStack(containerKey+"-songs", containerKey,
				navtree.NewScreen(containerKey+"-songs-root", containerKey+"-songs", dest("library")))
			albums := navtree.NewStack(containerKey+"-albums", containerKey)
			return navtree.NewTab(containerKey, parentKey,
				[]*navtree.Stack{songs, albums}, initialIndex).WithScopeKey("library")
		},
	})
	nav := newTestNavigator(WithContainerRegistry(containers))

	key, err := nav.Navigate(dest("library"))
	if err != nil {
		t.Fatalf("Navigate error = %v", err)
	}

	tab, ok := navtree.FindByKey(nav.Tree(), key).(*navtree.Tab)
	if !ok {
		t.Fatal("navigating to a container destination should push the built Tab")
	}
	if tab.ScopeKey() != "library" {
		t.Errorf("ScopeKey = %q, want library", tab.ScopeKey())
	}
	if err := navtree.Validate(nav.Tree()); err != nil {
		t.Errorf("Validate = %v", err)
	}

	// Already inside the library scope: no second container.
	if _, err := nav.Navigate(dest("library")); err != nil {
		t.Fatal(err)
	}
	tabs := navtree.Tabs(nav.Tree())
	if len(tabs) != 1 {
		t.Errorf("tab count = %d, want 1 (no duplicate container)", len(tabs))
	}
}

func TestSwitchTabAndPaneDelegation(t *testing.T) {
	tabA := navtree.NewStack("tab-a", "tab", navtree.NewScreen("a1", "tab-a", dest("home")))
	tabB := navtree.NewStack("tab-b", "tab", navtree.NewScreen("b1", "tab-b", dest("albums")))
	tab := navtree.NewTab("tab", "root", []*navtree.Stack{tabA, tabB}, 0)
	nav := New(navtree.NewStack("root", "", tab),
		WithKeyGenerator(NewSequentialGenerator("k")))

	if err := nav.SwitchTab("tab", 1); err != nil {
		t.Fatalf("SwitchTab error = %v", err)
	}
	if got := nav.CurrentDestination().Kind(); got != "albums" {
		t.Errorf("CurrentDestination = %q, want albums", got)
	}

	// No-op switch does not publish a new tree.
	before := nav.Tree()
	if err := nav.SwitchTab("tab", 1); err != nil {
		t.Fatal(err)
	}
	if nav.Tree() != before {
		t.Error("no-op SwitchTab should keep the identical tree")
	}
}

func TestWatchObservesMutations(t *testing.T) {
	nav := newTestNavigator()
	ch, cancel := nav.Watch()
	defer cancel()

	if _, err := nav.Navigate(dest("detail")); err != nil {
		t.Fatal(err)
	}

	snap := <-ch
	if navtree.ActiveLeaf(snap.Tree).Destination().Kind() != "detail" {
		t.Error("watcher should see the post-navigate tree")
	}

	cancel()
	if _, open := <-ch; open {
		t.Error("cancel should close the watch channel")
	}
}

func TestResultBrokerDeliver(t *testing.T) {
	nav := newTestNavigator()
	key, err := nav.Navigate(dest("picker"))
	if err != nil {
		t.Fatal(err)
	}

	results := nav.ExpectResult(key)
	if !nav.DeliverResult(key, "picked-42") {
		t.Fatal("DeliverResult should find the pending await")
	}
	res := <-results
	if res.Err != nil || res.Value != "picked-42" {
		t.Errorf("result = %+v", res)
	}

	if nav.DeliverResult(key, "again") {
		t.Error("a result must be delivered at most once")
	}
}

func TestResultBrokerFailsWhenScreenRemoved(t *testing.T) {
	nav := newTestNavigator()
	key, err := nav.Navigate(dest("picker"))
	if err != nil {
		t.Fatal(err)
	}

	results := nav.ExpectResult(key)
	if kind := nav.NavigateBack(); kind != mutate.BackHandled {
		t.Fatal("back should pop the picker")
	}

	res := <-results
	if res.Err == nil || !strings.Contains(res.Err.Error(), "removed") {
		t.Errorf("err = %v, want screen-gone failure", res.Err)
	}
}

func TestRecorderReceivesIntents(t *testing.T) {
	var ops []string
	rec := recorderFunc(func(op, from, to, key string) error {
		ops = append(ops, op)
		return nil
	})
	nav := newTestNavigator(WithRecorder(rec))

	if _, err := nav.Navigate(dest("detail")); err != nil {
		t.Fatal(err)
	}
	nav.NavigateBack()

	if len(ops) != 2 || ops[0] != "navigate" || ops[1] != "back" {
		t.Errorf("recorded ops = %v", ops)
	}
}

type recorderFunc func(op, from, to, key string) error

func (f recorderFunc) RecordIntent(op, from, to, key string) error {
	return f(op, from, to, key)
}
