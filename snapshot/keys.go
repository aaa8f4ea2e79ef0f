package snapshot

import (
	"fmt"

	"pkg.world.dev/world-engine/sprite/types"
)

// redisSnapshotKey is the key that stores the encoded snapshot taken at the given tick.
func redisSnapshotKey(ns types.Namespace, tick uint64) string {
	return fmt.Sprintf("SPRITE:%s:SNAPSHOT:TICK-%d", ns, tick)
}

// redisLatestTickKey is the key that stores the tick of the most recently saved snapshot.
func redisLatestTickKey(ns types.Namespace) string {
	return fmt.Sprintf("SPRITE:%s:LATEST-TICK", ns)
}

// redisTicksKey is the sorted set of every tick with a stored snapshot, scored by tick.
func redisTicksKey(ns types.Namespace) string {
	return fmt.Sprintf("SPRITE:%s:TICKS", ns)
}
