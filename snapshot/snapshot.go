// Package snapshot captures the whole arena as a list of entity records and replays it onto another arena with
// every handle reproduced exactly.
package snapshot

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/sprite/arena"
	"pkg.world.dev/world-engine/sprite/codec"
	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/types"
)

var (
	ErrIncompatible = eris.New("snapshot does not fit this arena")
	ErrNoSnapshot   = eris.New("no snapshot stored")
)

// Record is one live entity: its common header and its kind-specific payload as JSON.
type Record struct {
	Header entity.Header   `json:"header"`
	Body   json.RawMessage `json:"body"`
}

type Snapshot struct {
	Tick      uint64   `json:"tick"`
	Capacity  int      `json:"capacity"`
	MiscLimit int      `json:"miscLimit"`
	Entities  []Record `json:"entities"`
}

// Capture records every live entity, kind by kind in ascending handle order.
func Capture(a *arena.Arena, tick uint64) (*Snapshot, error) {
	snap := &Snapshot{
		Tick:      tick,
		Capacity:  a.Capacity(),
		MiscLimit: a.MiscLimit(),
		Entities:  make([]Record, 0, a.LiveCount()),
	}
	var err error
	a.EachLive(func(_ types.Handle, slot *entity.Slot) bool {
		var bz []byte
		bz, err = codec.Encode(slot.Body())
		if err != nil {
			err = eris.Wrapf(err, "encoding %s %d", slot.Kind, slot.ID)
			return false
		}
		snap.Entities = append(snap.Entities, Record{Header: slot.Header, Body: bz})
		return true
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Apply resets a and recreates every recorded entity at its recorded handle. If a record cannot be applied the
// arena is reset again and the error returned.
func Apply(a *arena.Arena, snap *Snapshot) error {
	if snap.Capacity > a.Capacity() {
		return eris.Wrapf(ErrIncompatible, "snapshot capacity %d, arena capacity %d", snap.Capacity, a.Capacity())
	}
	a.Reset()
	for _, rec := range snap.Entities {
		if err := applyRecord(a, rec); err != nil {
			a.Reset()
			return err
		}
	}
	return nil
}

func applyRecord(a *arena.Arena, rec Record) error {
	h, err := a.AllocateAt(rec.Header.ID, rec.Header.Kind)
	if err != nil {
		return eris.Wrapf(err, "restoring %s %d", rec.Header.Kind, rec.Header.ID)
	}
	slot, _ := a.Resolve(h)
	if err := codec.DecodeInto(rec.Body, slot.Body()); err != nil {
		return eris.Wrapf(err, "decoding %s %d", rec.Header.Kind, rec.Header.ID)
	}

	header := rec.Header
	pos := header.Pos
	header.Pos = types.NullPosition
	header.RenderPos = types.NullPosition
	slot.Header = header
	if pos.IsNull() {
		return nil
	}
	return a.MoveTo(h, pos)
}
