package journal

import (
	"path/filepath"
	"testing"

	"github.com/odvcencio/navkit/pkg/navigator"
	"github.com/odvcencio/navkit/pkg/navtree"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "nav.db"), "test-navigator")
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndRecent(t *testing.T) {
	j := openTestJournal(t)

	if err := j.RecordIntent("navigate", "home", "detail", "k1"); err != nil {
		t.Fatalf("RecordIntent error = %v", err)
	}
	if err := j.RecordIntent("back", "detail", "home", ""); err != nil {
		t.Fatalf("RecordIntent error = %v", err)
	}

	entries, err := j.Recent(10)
	if err != nil {
		t.Fatalf("Recent error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Recent len = %d, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Op != "back" || entries[1].Op != "navigate" {
		t.Errorf("order = %q, %q", entries[0].Op, entries[1].Op)
	}
	if entries[1].FromKind != "home" || entries[1].ToKind != "detail" || entries[1].NodeKey != "k1" {
		t.Errorf("navigate entry = %+v", entries[1])
	}
	if entries[0].RecordedAt.IsZero() {
		t.Error("RecordedAt should be set")
	}
}

func TestCountByOp(t *testing.T) {
	j := openTestJournal(t)

	for i := 0; i < 3; i++ {
		if err := j.RecordIntent("navigate", "", "detail", ""); err != nil {
			t.Fatal(err)
		}
	}
	if err := j.RecordIntent("back", "", "", ""); err != nil {
		t.Fatal(err)
	}

	counts, err := j.CountByOp()
	if err != nil {
		t.Fatalf("CountByOp error = %v", err)
	}
	if counts["navigate"] != 3 || counts["back"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

// TestNavigatorIntegration checks that every applied intent appends
// exactly one row.
func TestNavigatorIntegration(t *testing.T) {
	j := openTestJournal(t)

	root := navtree.NewStack("root", "",
		navtree.NewScreen("s0", "root", navtree.BasicDestination{Name: "home"}))
	nav := navigator.New(root,
		navigator.WithKeyGenerator(navigator.NewSequentialGenerator("k")),
		navigator.WithRecorder(j))

	if _, err := nav.Navigate(navtree.BasicDestination{Name: "detail"}); err != nil {
		t.Fatal(err)
	}
	if _, err := nav.Navigate(navtree.BasicDestination{Name: "edit"}); err != nil {
		t.Fatal(err)
	}
	nav.NavigateBack()

	entries, err := j.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("Recent len = %d, want 3 (one row per intent)", len(entries))
	}
}
