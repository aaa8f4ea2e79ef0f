package arena

import (
	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/handlelist"
	"pkg.world.dev/world-engine/sprite/types"
)

// Iterator walks an ascending handle list. It remembers the last handle it visited rather than a position, so
// freeing entities anywhere in the list (including the current one) never causes a skip. Entities allocated
// ahead of the cursor are visited. Slots are resolved at visit time, never cached.
type Iterator struct {
	arena  *Arena
	source func() handlelist.List
	kind   types.Kind

	last    types.Handle
	started bool
	done    bool
}

// IterateByKind returns an iterator over the live entities of the given kind, ascending by handle.
func (a *Arena) IterateByKind(kind types.Kind) *Iterator {
	return &Iterator{
		arena: a,
		source: func() handlelist.List {
			if !kind.Live() {
				return nil
			}
			return a.lists[kind]
		},
		last: types.NullHandle,
	}
}

// IterateByCell returns an iterator over every entity in the cell containing pos, ascending by handle.
func (a *Arena) IterateByCell(pos types.Position) *Iterator {
	cell := a.grid.CellOf(pos)
	return &Iterator{
		arena:  a,
		source: func() handlelist.List { return a.grid.CellContents(cell) },
		last:   types.NullHandle,
	}
}

// IterateByCellKind is IterateByCell restricted to a single kind.
func (a *Arena) IterateByCellKind(pos types.Position, kind types.Kind) *Iterator {
	it := a.IterateByCell(pos)
	it.kind = kind
	return it
}

// Next advances to the next entity and reports whether there is one. Once Next returns false it keeps returning
// false until Reset.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	l := it.source()
	i := 0
	if it.started {
		i = l.After(it.last)
	}
	for ; i < len(l); i++ {
		h := l[i]
		if it.kind != types.KindNull && it.arena.slots[h].Kind != it.kind {
			continue
		}
		it.last = h
		it.started = true
		return true
	}
	it.done = true
	return false
}

// Handle returns the current handle, or NullHandle before the first Next.
func (it *Iterator) Handle() types.Handle {
	if !it.started {
		return types.NullHandle
	}
	return it.last
}

// Slot resolves the current handle. It reports false if the entity was freed after Next returned it.
func (it *Iterator) Slot() (*entity.Slot, bool) {
	return it.arena.Resolve(it.Handle())
}

// Reset rewinds the iterator to the start.
func (it *Iterator) Reset() {
	it.last = types.NullHandle
	it.started = false
	it.done = false
}

// Collect rewinds the iterator and returns every handle it yields.
func (it *Iterator) Collect() []types.Handle {
	it.Reset()
	var out []types.Handle
	for it.Next() {
		out = append(out, it.Handle())
	}
	return out
}

// Each calls fn for every live entity of the given kind, ascending by handle, until fn returns false.
// fn may free entities, including the one it was handed.
func (a *Arena) Each(kind types.Kind, fn func(h types.Handle, slot *entity.Slot) bool) {
	each(a.IterateByKind(kind), fn)
}

// EachLive calls fn for every live entity, kind by kind in tag order and ascending by handle within a kind.
func (a *Arena) EachLive(fn func(h types.Handle, slot *entity.Slot) bool) {
	for _, kind := range types.LiveKinds() {
		stopped := false
		a.Each(kind, func(h types.Handle, slot *entity.Slot) bool {
			if !fn(h, slot) {
				stopped = true
				return false
			}
			return true
		})
		if stopped {
			return
		}
	}
}

// EachInCell calls fn for every entity in the cell containing pos until fn returns false.
func (a *Arena) EachInCell(pos types.Position, fn func(h types.Handle, slot *entity.Slot) bool) {
	each(a.IterateByCell(pos), fn)
}

func each(it *Iterator, fn func(h types.Handle, slot *entity.Slot) bool) {
	for it.Next() {
		slot, ok := it.Slot()
		if !ok {
			continue
		}
		if !fn(it.Handle(), slot) {
			return
		}
	}
}
