package navtree

import (
	"testing"

	navErr "github.com/odvcencio/navkit/pkg/errors"
)

func TestReplaceSharesSiblings(t *testing.T) {
	tree := sampleTree().(*Stack)
	tab := tree.ChildAt(0).(*Tab)
	tabB := tab.StackAt(1)

	newTree, err := Replace(tree, "tab-a", NewStack("tab-a", "tab",
		NewScreen("a1", "tab-a", dest("home")),
	))
	if err != nil {
		t.Fatalf("Replace error = %v", err)
	}

	newTab := newTree.(*Stack).ChildAt(0).(*Tab)
	if newTab.StackAt(1) != tabB {
		t.Error("sibling tab stack should be shared by reference after Replace")
	}
	if newTab.StackAt(0).Len() != 1 {
		t.Errorf("replaced stack Len = %d, want 1", newTab.StackAt(0).Len())
	}
	// Original tree untouched.
	if tab.StackAt(0).Len() != 2 {
		t.Error("Replace should not mutate the original tree")
	}
}

func TestReplaceRoot(t *testing.T) {
	tree := sampleTree()

	newRoot := NewStack("root", "")
	got, err := Replace(tree, "root", newRoot)
	if err != nil {
		t.Fatalf("Replace error = %v", err)
	}
	if got != Node(newRoot) {
		t.Error("replacing the root should return the replacement itself")
	}
}

func TestReplaceUnknownKey(t *testing.T) {
	_, err := Replace(sampleTree(), "missing", NewStack("missing", ""))
	if !navErr.IsCode(err, navErr.ErrCodeNodeNotFound) {
		t.Errorf("Replace(missing) error = %v, want NODE_NOT_FOUND", err)
	}
}

func TestReplaceTabStackWithNonStack(t *testing.T) {
	_, err := Replace(sampleTree(), "tab-a", NewScreen("tab-a", "tab", dest("x")))
	if !navErr.IsCode(err, navErr.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestReplacePaneSlot(t *testing.T) {
	tree := paneTree(RolePrimary, PopLatest)

	newTree, err := Replace(tree, "pane-supporting", NewStack("pane-supporting", "pane"))
	if err != nil {
		t.Fatalf("Replace error = %v", err)
	}

	pane := newTree.(*Stack).ChildAt(0).(*Pane)
	slot, _ := pane.Slot(RoleSupporting)
	if slot.Stack.Len() != 0 {
		t.Error("supporting slot should have been cleared")
	}

	// Primary slot untouched and shared.
	origPane := tree.(*Stack).ChildAt(0).(*Pane)
	origPrimary, _ := origPane.Slot(RolePrimary)
	newPrimary, _ := pane.Slot(RolePrimary)
	if newPrimary.Stack != origPrimary.Stack {
		t.Error("primary slot stack should be shared by reference")
	}
}

func TestRemoveFromStack(t *testing.T) {
	tree := sampleTree()

	newTree, err := Remove(tree, "a2")
	if err != nil {
		t.Fatalf("Remove error = %v", err)
	}
	if FindByKey(newTree, "a2") != nil {
		t.Error("a2 should be gone")
	}
	if stack := FindByKey(newTree, "tab-a").(*Stack); stack.Len() != 1 {
		t.Errorf("tab-a Len = %d, want 1", stack.Len())
	}
}

func TestRemoveRootRejected(t *testing.T) {
	_, err := Remove(sampleTree(), "root")
	if !navErr.IsCode(err, navErr.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestRemoveTabStackRejected(t *testing.T) {
	// A tab's per-tab stack is structural: it may be cleared, never removed.
	_, err := Remove(sampleTree(), "tab-a")
	if !navErr.IsCode(err, navErr.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestRemovePaneSlotStackRejected(t *testing.T) {
	_, err := Remove(paneTree(RolePrimary, PopLatest), "pane-primary")
	if !navErr.IsCode(err, navErr.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestRemoveUnknownKey(t *testing.T) {
	_, err := Remove(sampleTree(), "missing")
	if !navErr.IsCode(err, navErr.ErrCodeNodeNotFound) {
		t.Errorf("error = %v, want NODE_NOT_FOUND", err)
	}
}

func TestValidateAcceptsWellFormedTrees(t *testing.T) {
	if err := Validate(sampleTree()); err != nil {
		t.Errorf("Validate(sampleTree) = %v", err)
	}
	if err := Validate(paneTree(RoleSupporting, PopUntilContentChange)); err != nil {
		t.Errorf("Validate(paneTree) = %v", err)
	}
	if err := Validate(NewStack("root", "")); err != nil {
		t.Errorf("Validate(empty root stack) = %v", err)
	}
}

func TestValidateRejectsDuplicateKeys(t *testing.T) {
	tree := NewStack("root", "",
		NewScreen("dup", "root", dest("a")),
		NewScreen("dup", "root", dest("b")),
	)
	if err := Validate(tree); !navErr.IsCode(err, navErr.ErrCodeDuplicateKey) {
		t.Errorf("Validate = %v, want DUPLICATE_KEY", err)
	}
}

func TestValidateRejectsBadParentLink(t *testing.T) {
	tree := NewStack("root", "", NewScreen("s", "elsewhere", dest("a")))
	if err := Validate(tree); !navErr.IsCode(err, navErr.ErrCodeInvalidInput) {
		t.Errorf("Validate = %v, want INVALID_INPUT", err)
	}
}

func TestValidateRejectsNonEmptyRootParent(t *testing.T) {
	tree := NewStack("root", "somewhere")
	if err := Validate(tree); !navErr.IsCode(err, navErr.ErrCodeInvalidInput) {
		t.Errorf("Validate = %v, want INVALID_INPUT", err)
	}
}

func TestEntriesProjection(t *testing.T) {
	tree := sampleTree()

	entries := Entries(tree)
	if len(entries) != 2 {
		t.Fatalf("Entries length = %d, want 2", len(entries))
	}
	if entries[0].ID != "a1" || entries[1].ID != "a2" {
		t.Errorf("entry IDs = %q, %q", entries[0].ID, entries[1].ID)
	}
	if entries[1].Destination.Kind() != "detail" {
		t.Errorf("top entry kind = %q, want detail", entries[1].Destination.Kind())
	}
}
