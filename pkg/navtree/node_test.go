package navtree

import (
	"testing"

	navErr "github.com/odvcencio/navkit/pkg/errors"
)

func dest(name string) Destination {
	return BasicDestination{Name: name}
}

// mustPanic asserts fn panics with the given error code.
func mustPanic(t *testing.T, code navErr.ErrorCode, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		err, ok := r.(*navErr.Error)
		if !ok {
			t.Fatalf("panic value = %v (%T), want *errors.Error", r, r)
		}
		if err.Code != code {
			t.Errorf("panic code = %q, want %q", err.Code, code)
		}
	}()
	fn()
}

func TestScreenWithers(t *testing.T) {
	s := NewScreen("s1", "root", dest("home"))

	s2 := s.WithTransition("slide")
	if s2.Transition() != "slide" {
		t.Errorf("Transition() = %q, want slide", s2.Transition())
	}
	if s.Transition() != "" {
		t.Error("WithTransition should not mutate the original")
	}
	if s2.Key() != "s1" || s2.Parent() != "root" {
		t.Error("WithTransition should preserve identity")
	}
}

func TestStackChildren(t *testing.T) {
	a := NewScreen("a", "st", dest("home"))
	b := NewScreen("b", "st", dest("detail"))
	st := NewStack("st", "", a, b)

	if st.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", st.Len())
	}
	if st.LastChild() != b {
		t.Error("LastChild() should be the most recently pushed node")
	}

	appended := st.WithAppended(NewScreen("c", "st", dest("settings")))
	if appended.Len() != 3 || st.Len() != 2 {
		t.Error("WithAppended should copy, not mutate")
	}
	// Unchanged children are shared by reference.
	if appended.ChildAt(0) != a || appended.ChildAt(1) != b {
		t.Error("WithAppended should share existing children")
	}

	popped := appended.WithoutLast()
	if popped.Len() != 2 || popped.LastChild() != b {
		t.Error("WithoutLast should drop only the top child")
	}

	empty := NewStack("e", "")
	if empty.WithoutLast() != empty {
		t.Error("WithoutLast on an empty stack should be a no-op")
	}
	if empty.LastChild() != nil {
		t.Error("LastChild on an empty stack should be nil")
	}
}

func TestStackChildAtOutOfRange(t *testing.T) {
	st := NewStack("st", "")
	mustPanic(t, navErr.ErrCodeIndexOutOfRange, func() { st.ChildAt(0) })
}

func TestTabInvariants(t *testing.T) {
	mustPanic(t, navErr.ErrCodeInvalidInput, func() {
		NewTab("t", "", nil, 0)
	})
	mustPanic(t, navErr.ErrCodeIndexOutOfRange, func() {
		NewTab("t", "", []*Stack{NewStack("a", "t")}, 1)
	})
}

func TestTabWithActiveIndex(t *testing.T) {
	tab := NewTab("t", "", []*Stack{NewStack("a", "t"), NewStack("b", "t")}, 0)

	if tab.InitialIndex() != 0 {
		t.Errorf("InitialIndex() = %d, want 0", tab.InitialIndex())
	}

	switched := tab.WithActiveIndex(1)
	if switched.ActiveIndex() != 1 {
		t.Errorf("ActiveIndex() = %d, want 1", switched.ActiveIndex())
	}
	if switched.InitialIndex() != 0 {
		t.Error("WithActiveIndex should preserve the initial index")
	}
	if tab.ActiveIndex() != 0 {
		t.Error("WithActiveIndex should not mutate the original")
	}
	if switched.ActiveStack().Key() != "b" {
		t.Errorf("ActiveStack() = %q, want b", switched.ActiveStack().Key())
	}

	mustPanic(t, navErr.ErrCodeIndexOutOfRange, func() { tab.WithActiveIndex(5) })
}

func TestTabWithStackAtSharesSiblings(t *testing.T) {
	a := NewStack("a", "t")
	b := NewStack("b", "t")
	tab := NewTab("t", "", []*Stack{a, b}, 0)

	replaced := tab.WithStackAt(1, NewStack("b", "t", NewScreen("s", "b", dest("x"))))
	if replaced.StackAt(0) != a {
		t.Error("untouched tab stacks should be shared by reference")
	}
	if tab.StackAt(1) != b {
		t.Error("WithStackAt should not mutate the original")
	}
}

func TestPaneInvariants(t *testing.T) {
	mustPanic(t, navErr.ErrCodePrimaryPaneRequired, func() {
		NewPane("p", "", map[PaneRole]Slot{
			RoleSupporting: {Stack: NewStack("s", "p")},
		}, RoleSupporting, PopLatest)
	})
	mustPanic(t, navErr.ErrCodeRoleNotConfigured, func() {
		NewPane("p", "", map[PaneRole]Slot{
			RolePrimary: {Stack: NewStack("s", "p")},
		}, RoleExtra, PopLatest)
	})
}

func TestPaneRolesCanonicalOrder(t *testing.T) {
	pane := NewPane("p", "", map[PaneRole]Slot{
		RoleExtra:      {Stack: NewStack("e", "p")},
		RolePrimary:    {Stack: NewStack("m", "p")},
		RoleSupporting: {Stack: NewStack("s", "p")},
	}, RolePrimary, PopLatest)

	roles := pane.Roles()
	want := []PaneRole{RolePrimary, RoleSupporting, RoleExtra}
	if len(roles) != len(want) {
		t.Fatalf("Roles() = %v, want %v", roles, want)
	}
	for i := range want {
		if roles[i] != want[i] {
			t.Errorf("Roles()[%d] = %q, want %q", i, roles[i], want[i])
		}
	}
}

func TestPaneWithoutRole(t *testing.T) {
	pane := NewPane("p", "", map[PaneRole]Slot{
		RolePrimary:    {Stack: NewStack("m", "p")},
		RoleSupporting: {Stack: NewStack("s", "p")},
	}, RoleSupporting, PopLatest)

	trimmed := pane.WithoutRole(RoleSupporting)
	if _, ok := trimmed.Slot(RoleSupporting); ok {
		t.Error("WithoutRole should drop the slot")
	}
	if trimmed.ActiveRole() != RolePrimary {
		t.Error("removing the focused role should refocus primary")
	}
	if pane.ActiveRole() != RoleSupporting {
		t.Error("WithoutRole should not mutate the original")
	}

	mustPanic(t, navErr.ErrCodePrimaryPaneRequired, func() { pane.WithoutRole(RolePrimary) })
}

func TestPaneDefaultBackBehavior(t *testing.T) {
	pane := NewPane("p", "", map[PaneRole]Slot{
		RolePrimary: {Stack: NewStack("m", "p")},
	}, RolePrimary, "")

	if pane.BackBehavior() != PopLatest {
		t.Errorf("BackBehavior() = %q, want %q", pane.BackBehavior(), PopLatest)
	}
}

func TestWithParent(t *testing.T) {
	s := NewScreen("s", "old", dest("home"))
	moved := WithParent(s, "new")
	if moved.Parent() != "new" {
		t.Errorf("Parent() = %q, want new", moved.Parent())
	}
	if s.Parent() != "old" {
		t.Error("WithParent should not mutate the original")
	}
}
