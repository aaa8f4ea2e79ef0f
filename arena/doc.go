/*
Package arena owns every dynamic simulation entity: guests, staff, vehicles, litter and the short-lived effect
entities. It combines four structures behind one owner:

  - the slot storage, a fixed array of entity.Slot allocated once at construction;
  - the free list, the handles of unused slots kept in descending order so the lowest free handle is handed out
    first;
  - one ascending handle list per kind, used for kind-filtered iteration;
  - a spatial.Grid mapping map tiles to the handles standing on them.

# Invariants

Every handle is either on the free list or on exactly one kind list, never both, so the free list length plus
the kind list lengths always equals the capacity. Every live entity is in exactly the grid cell its position
falls in. Lists are always sorted. These orderings are what make two peers that replay the same sequence of
Allocate, AllocateAt, Free and MoveTo calls enumerate entities in byte-identical order.

# Failure classes

Capacity exhaustion (ErrArenaFull, ErrMiscLimitReached) is an ordinary result; callers drop or retry the
request. Bad handles (ErrInvalidHandle, ErrEntityNotLive) are programming errors: they panic when the arena was
built WithStrictHandles(true), otherwise the call returns the error and changes nothing. A kind list or free
list that loses its ordering panics, since continuing would desync every peer. A spatial cell that is missing a
handle is logged as a bug and the grid is rebuilt from the live entities; spatial queries are the only thing a
stale grid can affect.

# Concurrency

An Arena is not safe for concurrent use. The simulation goroutine is the only writer; readers such as renderers
or debug endpoints must be serialised against it by the owner (see sim.World).
*/
package arena
