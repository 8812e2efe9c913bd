package ids

import (
	"sort"
	"testing"
)

func TestSortableIsMonotonic(t *testing.T) {
	issued := make([]string, 0, 50)
	for range 50 {
		issued = append(issued, Sortable())
	}
	if !sort.StringsAreSorted(issued) {
		t.Fatalf("expected ids in issue order, got %v", issued)
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for range 100 {
		id := New()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}
