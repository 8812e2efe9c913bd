package store

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

type record struct {
	ID     string
	Status string
	Tags   []string
}

func cloneRecord(r record) record {
	r.Tags = append([]string(nil), r.Tags...)
	return r
}

func TestCollectionInsertGetFilter(t *testing.T) {
	c := NewCollection(cloneRecord)
	for _, id := range []string{"a", "b", "c"} {
		if err := c.Insert(id, record{ID: id, Status: "pending"}); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}
	if err := c.Insert("a", record{ID: "a"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	got, err := c.Get("b")
	if err != nil || got.ID != "b" {
		t.Fatalf("unexpected get result %+v %v", got, err)
	}
	if _, err := c.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	all := c.Filter(nil)
	if len(all) != 3 || all[0].ID != "a" || all[2].ID != "c" {
		t.Fatalf("expected insertion order, got %+v", all)
	}
}

func TestCollectionReturnsCopies(t *testing.T) {
	c := NewCollection(cloneRecord)
	_ = c.Insert("a", record{ID: "a", Tags: []string{"x"}})

	got, _ := c.Get("a")
	got.Tags[0] = "mutated"

	again, _ := c.Get("a")
	if again.Tags[0] != "x" {
		t.Fatalf("expected stored record to be isolated, got %v", again.Tags)
	}
}

func TestCollectionUpdateDiscardsOnError(t *testing.T) {
	c := NewCollection(cloneRecord)
	_ = c.Insert("a", record{ID: "a", Status: "pending"})

	boom := errors.New("boom")
	_, err := c.Update("a", func(r *record) error {
		r.Status = "approved"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected mutate error, got %v", err)
	}
	got, _ := c.Get("a")
	if got.Status != "pending" {
		t.Fatalf("expected unchanged record, got %+v", got)
	}
}

func TestCollectionUpdateIsCompareAndSet(t *testing.T) {
	c := NewCollection(cloneRecord)
	_ = c.Insert("a", record{ID: "a", Status: "pending"})

	errInvalid := errors.New("not pending")
	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Update("a", func(r *record) error {
				if r.Status != "pending" {
					return errInvalid
				}
				r.Status = "approved"
				return nil
			})
			if err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	if wins.Load() != 1 {
		t.Fatalf("expected exactly one transition, got %d", wins.Load())
	}
}

func TestCollectionInsertUnless(t *testing.T) {
	c := NewCollection(cloneRecord)
	_ = c.Insert("a", record{ID: "a", Status: "EMP001"})

	err := c.InsertUnless("b", record{ID: "b", Status: "EMP001"}, func(r record) bool { return r.Status == "EMP001" })
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected one record, got %d", c.Len())
	}
}

func TestCollectionUpdateUnless(t *testing.T) {
	c := NewCollection(cloneRecord)
	_ = c.Insert("a", record{ID: "a", Status: "EMP001"})
	_ = c.Insert("b", record{ID: "b", Status: "EMP002"})

	taken := func(r record) bool { return r.Status == "EMP001" }
	_, err := c.UpdateUnless("b", func(r *record) error {
		r.Status = "EMP001"
		return nil
	}, taken)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected conflict, got %v", err)
	}
	got, _ := c.Get("b")
	if got.Status != "EMP002" {
		t.Fatalf("expected unchanged record, got %+v", got)
	}

	// the record being updated never conflicts with itself
	if _, err := c.UpdateUnless("a", func(r *record) error { return nil }, taken); err != nil {
		t.Fatalf("expected self match to pass, got %v", err)
	}
	if _, err := c.UpdateUnless("zz", func(r *record) error { return nil }, taken); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCollectionUpdateUnlessIsAtomic(t *testing.T) {
	c := NewCollection(cloneRecord)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		_ = c.Insert(id, record{ID: id, Status: "EMP-" + id})
	}

	var wins atomic.Int32
	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := c.UpdateUnless(id, func(r *record) error {
				r.Status = "EMP999"
				return nil
			}, func(r record) bool { return r.Status == "EMP999" })
			if err == nil {
				wins.Add(1)
			}
		}(id)
	}
	wg.Wait()
	if wins.Load() != 1 {
		t.Fatalf("expected exactly one owner of the number, got %d", wins.Load())
	}
	if n := c.Count(func(r record) bool { return r.Status == "EMP999" }); n != 1 {
		t.Fatalf("expected one record holding the number, got %d", n)
	}
}

func TestCollectionDelete(t *testing.T) {
	c := NewCollection(cloneRecord)
	_ = c.Insert("a", record{ID: "a"})
	_ = c.Insert("b", record{ID: "b"})

	c.Delete("a")
	c.Delete("missing")

	if _, err := c.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected a to be gone, got %v", err)
	}
	if got := c.Filter(nil); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("unexpected remaining records %+v", got)
	}
}
