// Package checksum hashes the deterministic serialisation of an arena so peers in lockstep can detect desyncs,
// and explains a detected desync by diffing two snapshots.
package checksum

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"

	"pkg.world.dev/world-engine/sprite/arena"
	"pkg.world.dev/world-engine/sprite/codec"
	"pkg.world.dev/world-engine/sprite/snapshot"
	"pkg.world.dev/world-engine/sprite/types"
)

// bytesPerEntity is a sizing hint for the serialisation buffer.
const bytesPerEntity = 48

// Compute returns the Keccak-256 hash of every live entity serialised kind by kind in ascending handle order.
// Two arenas that went through the same operations always produce the same hash.
func Compute(a *arena.Arena) common.Hash {
	stream := codec.NewStream(a.LiveCount() * bytesPerEntity)
	for _, kind := range types.LiveKinds() {
		serialiseKind(a, kind, stream)
	}
	return crypto.Keccak256Hash(stream.Bytes())
}

// PerKind hashes each kind separately, which narrows down which simulation system diverged.
func PerKind(a *arena.Arena) map[types.Kind]common.Hash {
	out := make(map[types.Kind]common.Hash, types.KindCount)
	stream := codec.NewStream(0)
	for _, kind := range types.LiveKinds() {
		if a.Count(kind) == 0 {
			continue
		}
		stream.Reset()
		serialiseKind(a, kind, stream)
		out[kind] = crypto.Keccak256Hash(stream.Bytes())
	}
	return out
}

func serialiseKind(a *arena.Arena, kind types.Kind, stream *codec.Stream) {
	it := a.IterateByKind(kind)
	for it.Next() {
		if slot, ok := it.Slot(); ok {
			slot.Serialise(stream)
		}
	}
}

// Diff returns the JSON patch that turns snapshot a into snapshot b. An empty patch means the two agree.
func Diff(a, b *snapshot.Snapshot) (jsondiff.Patch, error) {
	left, err := codec.Encode(a)
	if err != nil {
		return nil, err
	}
	right, err := codec.Encode(b)
	if err != nil {
		return nil, err
	}
	patch, err := jsondiff.CompareJSON(left, right)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return patch, nil
}
