package history

import (
	"fmt"
	"testing"
)

// counter is a codec over a single int, standing in for an editor.
type counter struct {
	value    int
	restores int
}

func (c *counter) Save() int     { return c.value }
func (c *counter) Restore(v int) { c.value = v; c.restores++ }

func newTestPool(capacity int) (*Pool[int], *counter) {
	c := &counter{}
	p := New[int](capacity, c)
	p.Seed("Map loaded", "maps/test.json")
	return p, c
}

func edit(p *Pool[int], c *counter, v int) {
	c.value = v
	p.NewEntry("set", fmt.Sprint(v))
}

func TestNewPanicsOnSmallCapacity(t *testing.T) {
	for _, capacity := range []int{-1, 0, 1} {
		t.Run(fmt.Sprint(capacity), func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			New[int](capacity, &counter{})
		})
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	p, c := newTestPool(10)
	edit(p, c, 1)
	edit(p, c, 2)

	if !p.Undo() || c.value != 1 {
		t.Fatalf("expected 1 after undo, got %d", c.value)
	}
	if !p.Undo() || c.value != 0 {
		t.Fatalf("expected 0 after second undo, got %d", c.value)
	}
	if p.Undo() {
		t.Fatalf("undo past the first entry should be a no-op")
	}
	if c.value != 0 {
		t.Fatalf("state changed on no-op undo: %d", c.value)
	}

	if !p.Redo() || c.value != 1 {
		t.Fatalf("expected 1 after redo, got %d", c.value)
	}
	if !p.Redo() || c.value != 2 {
		t.Fatalf("expected 2 after redo, got %d", c.value)
	}
	if p.Redo() {
		t.Fatalf("redo past the last entry should be a no-op")
	}
}

func TestNewEntryDropsRedoBranch(t *testing.T) {
	p, c := newTestPool(10)
	edit(p, c, 1)
	edit(p, c, 2)
	edit(p, c, 3)
	p.Undo()
	p.Undo()
	if p.Len() != 4 {
		t.Fatalf("expected 4 entries before truncation, got %d", p.Len())
	}

	edit(p, c, 9)
	if p.CanRedo() || p.Redo() {
		t.Fatalf("redo branch survived a new entry")
	}
	if p.Len() != 3 {
		t.Fatalf("expected truncated entries to be freed, got %d in use", p.Len())
	}
	p.Undo()
	if c.value != 1 {
		t.Fatalf("expected 1 before the new entry, got %d", c.value)
	}
}

func TestRecyclingDropsOldest(t *testing.T) {
	const capacity = 5
	p, c := newTestPool(capacity)
	for v := 1; v <= capacity+1; v++ {
		edit(p, c, v)
	}
	if p.Len() != capacity {
		t.Fatalf("expected %d entries, got %d", capacity, p.Len())
	}

	tl := p.Timeline()
	if len(tl) != capacity {
		t.Fatalf("expected timeline of %d, got %d", capacity, len(tl))
	}
	if got := p.Info(tl[0]); got.Action == "Map loaded" {
		t.Fatalf("map loaded entry should have been recycled")
	}

	for i := 0; i < capacity; i++ {
		p.Undo()
	}
	// entries 0 (map loaded) and 1 were dropped; 2 is the oldest survivor
	if c.value != 2 {
		t.Fatalf("expected oldest surviving state 2, got %d", c.value)
	}
	if p.CanUndo() {
		t.Fatalf("root still has a previous entry")
	}
}

func TestRecyclingAfterUndoToRoot(t *testing.T) {
	p, c := newTestPool(3)
	edit(p, c, 1)
	edit(p, c, 2)
	p.Undo()
	p.Undo()

	// the pool is full but the redo branch frees room before allocating
	edit(p, c, 7)
	tl := p.Timeline()
	if len(tl) != 2 || p.Current() != tl[1] {
		t.Fatalf("unexpected timeline %v current=%d", tl, p.Current())
	}
	if p.Info(tl[0]).Action != "Map loaded" {
		t.Fatalf("root should still be the map loaded entry")
	}
}

func TestRestoreToEntry(t *testing.T) {
	p, c := newTestPool(10)
	edit(p, c, 1)
	target := p.Current()
	edit(p, c, 2)
	edit(p, c, 3)

	p.RestoreToEntry(target)
	if c.value != 1 || p.Current() != target {
		t.Fatalf("expected state 1 at %d, got %d at %d", target, c.value, p.Current())
	}
	if !p.CanRedo() {
		t.Fatalf("later entries should stay redoable")
	}
}

func TestRestoreUnusedEntryPanics(t *testing.T) {
	cases := []struct {
		name string
		ref  Ref
	}{
		{"none", None},
		{"out_of_range", 99},
		{"free_slot", 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			p, _ := newTestPool(5)
			p.RestoreToEntry(c.ref)
		})
	}
}

func TestUndoWithoutSeedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	p := New[int](2, &counter{})
	p.Undo()
}

func TestSeedClears(t *testing.T) {
	p, c := newTestPool(4)
	edit(p, c, 1)
	edit(p, c, 2)
	p.Seed("Map loaded", "other")
	if p.Len() != 1 || p.CanUndo() || p.CanRedo() {
		t.Fatalf("seed did not reset the pool: len=%d", p.Len())
	}
	if got := p.Info(p.Current()); got.Description != "other" {
		t.Fatalf("unexpected seed info %+v", got)
	}
}
