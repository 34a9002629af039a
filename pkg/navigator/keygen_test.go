package navigator

import (
	"testing"
)

func TestULIDGeneratorKeysSortInCreationOrder(t *testing.T) {
	gen := NewULIDGenerator()

	prev := gen.NewKey()
	for i := 0; i < 100; i++ {
		next := gen.NewKey()
		if next <= prev {
			t.Fatalf("keys out of order: %q then %q", prev, next)
		}
		prev = next
	}
}

func TestUUIDGeneratorKeysAreUnique(t *testing.T) {
	gen := UUIDGenerator{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := gen.NewKey()
		if seen[key] {
			t.Fatalf("duplicate key %q", key)
		}
		seen[key] = true
	}
}

func TestSequentialGenerator(t *testing.T) {
	gen := NewSequentialGenerator("n")
	if got := gen.NewKey(); got != "n1" {
		t.Errorf("first key = %q, want n1", got)
	}
	if got := gen.NewKey(); got != "n2" {
		t.Errorf("second key = %q, want n2", got)
	}
}
