// Package tween interpolates the rendered position of moving entities between two simulation ticks so the
// renderer can run at a different rate than the simulation.
package tween

import (
	"pkg.world.dev/world-engine/sprite/arena"
	"pkg.world.dev/world-engine/sprite/types"
)

// Tweener records the positions of every tweened entity before and after a tick. Records are only valid between
// one PreTick and the next.
type Tweener struct {
	arena *arena.Arena

	handles []types.Handle
	index   map[types.Handle]int
	pre     []types.Position
	post    []types.Position

	populated bool
	ticked    bool
}

// New creates a tweener over a and subscribes it to the arena's free and reset notifications.
func New(a *arena.Arena) *Tweener {
	t := &Tweener{
		arena: a,
		index: make(map[types.Handle]int),
	}
	a.OnFree(t.RemoveEntity)
	a.OnReset(t.Reset)
	return t
}

// PreTick restores rendered positions, then records the current position of every tweened entity. Entities are
// recorded kind by kind in handle order, the same order as a live enumeration.
func (t *Tweener) PreTick() {
	t.Restore()
	t.Reset()
	t.populate()
	for _, h := range t.handles {
		slot, _ := t.arena.Resolve(h)
		t.pre = append(t.pre, slot.Pos)
	}
}

// PostTick records the positions of the entities captured by PreTick after the simulation has run.
func (t *Tweener) PostTick() {
	for _, h := range t.handles {
		slot, ok := t.arena.Resolve(h)
		if h.IsNull() || !ok {
			t.post = append(t.post, types.NullPosition)
			continue
		}
		t.post = append(t.post, slot.Pos)
	}
	t.ticked = true
}

// Tween writes lerp(pre, post, alpha) into the rendered position of each tracked entity. The simulation position
// is never touched. Entities entering or leaving the world this tick are drawn at their post-tick position.
func (t *Tweener) Tween(alpha float64) {
	if !t.ticked {
		return
	}
	for i, h := range t.handles {
		if h.IsNull() {
			continue
		}
		slot, ok := t.arena.Resolve(h)
		if !ok {
			continue
		}
		pre, post := t.pre[i], t.post[i]
		if pre == post || pre.IsNull() || post.IsNull() {
			slot.RenderPos = post
			continue
		}
		slot.RenderPos = pre.Lerp(post, alpha)
	}
}

// Restore puts every tracked entity's rendered position back on its post-tick position. It is equivalent to
// Tween(1) and is used when interpolation is bypassed, for example while paused.
func (t *Tweener) Restore() {
	if !t.ticked {
		return
	}
	for i, h := range t.handles {
		if h.IsNull() {
			continue
		}
		if slot, ok := t.arena.Resolve(h); ok {
			slot.RenderPos = t.post[i]
		}
	}
}

// RemoveEntity stops tracking h. The arena calls it synchronously whenever an entity is freed, so a handle that is
// reused within the same tick is never interpolated from the previous occupant's position.
func (t *Tweener) RemoveEntity(h types.Handle) {
	i, ok := t.index[h]
	if !ok {
		return
	}
	t.handles[i] = types.NullHandle
	delete(t.index, h)
}

// Reset drops every record. The next PreTick repopulates from the arena.
func (t *Tweener) Reset() {
	t.handles = t.handles[:0]
	t.pre = t.pre[:0]
	t.post = t.post[:0]
	clear(t.index)
	t.populated = false
	t.ticked = false
}

// Tracked returns the number of entities currently being interpolated.
func (t *Tweener) Tracked() int {
	return len(t.index)
}

func (t *Tweener) populate() {
	if t.populated {
		return
	}
	for _, kind := range types.LiveKinds() {
		if !kind.Tweened() {
			continue
		}
		it := t.arena.IterateByKind(kind)
		for it.Next() {
			t.index[it.Handle()] = len(t.handles)
			t.handles = append(t.handles, it.Handle())
		}
	}
	t.populated = true
}
