package arena

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/sprite/types"
)

var (
	ErrArenaFull        = eris.New("no free entity slots")
	ErrMiscLimitReached = eris.New("misc entity limit reached")
	ErrHandleInUse      = eris.New("entity handle already in use")
	ErrInvalidHandle    = eris.New("entity handle out of range")
	ErrEntityNotLive    = eris.New("entity handle is not allocated")
	ErrUnknownKind      = types.ErrUnknownKind
	ErrCorrupt          = eris.New("arena invariant violated")
)

// CapacityErrors are the recoverable allocation failures.
var CapacityErrors = []error{
	ErrArenaFull,
	ErrMiscLimitReached,
}

// IsCapacityError reports whether err means the allocation was refused for lack of room.
func IsCapacityError(err error) bool {
	for _, e := range CapacityErrors {
		if eris.Is(err, e) {
			return true
		}
	}
	return false
}
