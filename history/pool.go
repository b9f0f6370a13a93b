// Package history keeps a bounded, linear undo/redo timeline of snapshots.
//
// Entries live in a fixed arena and link to each other by slot index. Starting
// a new entry drops everything after the current one; when the arena is full
// the oldest entry of the timeline is recycled.
package history

import (
	"fmt"
	"log"
)

// DefaultCapacity is the number of entries kept when no size is configured.
const DefaultCapacity = 50

// Ref addresses an entry slot. None means no entry.
type Ref int

const None Ref = -1

// Codec captures the state an entry records and puts it back.
type Codec[S any] interface {
	Save() S
	Restore(S)
}

// Info describes one entry for display.
type Info struct {
	Action      string
	Description string
}

type entry[S any] struct {
	used    bool
	hasSnap bool
	info    Info
	snap    S
	prev    Ref
	next    Ref
}

// Pool is a fixed-capacity timeline of entries with a single current entry.
type Pool[S any] struct {
	codec   Codec[S]
	entries []entry[S]
	current Ref
}

// New returns an empty pool of the given capacity. It panics when capacity is
// below 2: recycling needs one entry to drop and one to keep.
func New[S any](capacity int, codec Codec[S]) *Pool[S] {
	if capacity < 2 {
		panic(fmt.Sprintf("history: capacity %d, need at least 2", capacity))
	}
	if codec == nil {
		panic("history: nil codec")
	}
	p := &Pool[S]{codec: codec, entries: make([]entry[S], capacity)}
	p.Clear()
	return p
}

// Clear frees every entry. The pool has no current entry afterwards.
func (p *Pool[S]) Clear() {
	for i := range p.entries {
		p.entries[i] = entry[S]{prev: None, next: None}
	}
	p.current = None
}

// Seed clears the pool and records the current state as the first entry.
func (p *Pool[S]) Seed(action, desc string) Ref {
	p.Clear()
	r := p.allocate()
	p.fill(r, action, desc)
	p.current = r
	return r
}

// allocate returns the lowest free slot. When every slot is used it recycles
// the root of the current timeline.
func (p *Pool[S]) allocate() Ref {
	for i := range p.entries {
		if !p.entries[i].used {
			p.entries[i] = entry[S]{used: true, prev: None, next: None}
			return Ref(i)
		}
	}

	root := p.current
	for p.entries[root].prev != None {
		root = p.entries[root].prev
	}
	if root == p.current {
		panic("history: no entry left to recycle")
	}
	next := p.entries[root].next
	p.entries[next].prev = None
	log.Printf("history: recycled oldest entry %q", p.entries[root].info.Action)
	p.entries[root] = entry[S]{used: true, prev: None, next: None}
	return root
}

func (p *Pool[S]) free(r Ref) {
	p.entries[r] = entry[S]{prev: None, next: None}
}

func (p *Pool[S]) fill(r Ref, action, desc string) {
	e := &p.entries[r]
	e.snap = p.codec.Save()
	e.hasSnap = true
	e.info = Info{Action: action, Description: desc}
}

// NewEntry records the current state after the current entry and makes it
// current. Entries that could have been redone are dropped.
func (p *Pool[S]) NewEntry(action, desc string) Ref {
	p.mustCurrent()

	// Truncate first so recycling never picks an entry we are about to link to.
	for r := p.entries[p.current].next; r != None; {
		next := p.entries[r].next
		p.free(r)
		r = next
	}
	p.entries[p.current].next = None

	r := p.allocate()
	p.fill(r, action, desc)
	p.entries[r].prev = p.current
	p.entries[p.current].next = r
	p.current = r
	return r
}

// RestoreToEntry restores the state held by r and makes it current.
func (p *Pool[S]) RestoreToEntry(r Ref) {
	if !p.valid(r) {
		panic(fmt.Sprintf("history: restore of unused entry %d", r))
	}
	e := &p.entries[r]
	if !e.hasSnap {
		panic(fmt.Sprintf("history: entry %d has no snapshot", r))
	}
	p.codec.Restore(e.snap)
	p.current = r
}

// Undo steps back one entry. It reports false at the start of the timeline.
func (p *Pool[S]) Undo() bool {
	p.mustCurrent()
	prev := p.entries[p.current].prev
	if prev == None {
		return false
	}
	p.RestoreToEntry(prev)
	return true
}

// Redo steps forward one entry. It reports false at the end of the timeline.
func (p *Pool[S]) Redo() bool {
	p.mustCurrent()
	next := p.entries[p.current].next
	if next == None {
		return false
	}
	p.RestoreToEntry(next)
	return true
}

func (p *Pool[S]) CanUndo() bool {
	return p.current != None && p.entries[p.current].prev != None
}

func (p *Pool[S]) CanRedo() bool {
	return p.current != None && p.entries[p.current].next != None
}

func (p *Pool[S]) Current() Ref { return p.current }

// Info returns the labels of entry r.
func (p *Pool[S]) Info(r Ref) Info {
	if !p.valid(r) {
		panic(fmt.Sprintf("history: info of unused entry %d", r))
	}
	return p.entries[r].info
}

// Snapshot returns the state recorded by entry r.
func (p *Pool[S]) Snapshot(r Ref) S {
	if !p.valid(r) || !p.entries[r].hasSnap {
		panic(fmt.Sprintf("history: snapshot of unused entry %d", r))
	}
	return p.entries[r].snap
}

// Timeline returns the entries from the oldest to the newest.
func (p *Pool[S]) Timeline() []Ref {
	if p.current == None {
		return nil
	}
	root := p.current
	for p.entries[root].prev != None {
		root = p.entries[root].prev
	}
	var refs []Ref
	for r := root; r != None; r = p.entries[r].next {
		refs = append(refs, r)
	}
	return refs
}

// Len is the number of entries in use.
func (p *Pool[S]) Len() int {
	n := 0
	for i := range p.entries {
		if p.entries[i].used {
			n++
		}
	}
	return n
}

func (p *Pool[S]) Cap() int { return len(p.entries) }

func (p *Pool[S]) valid(r Ref) bool {
	return r >= 0 && int(r) < len(p.entries) && p.entries[r].used
}

func (p *Pool[S]) mustCurrent() {
	if p.current == None {
		panic("history: no current entry")
	}
}
