package sim

import (
	"encoding/binary"

	"github.com/coocood/freecache"
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/sprite/codec"
	"pkg.world.dev/world-engine/sprite/types"
)

const (
	DefaultHistorySize = 4 * 1024 * 1024
	// MaxHistoryEntries bounds how many entries a single peep keeps. Older entries are dropped first.
	MaxHistoryEntries = 16
)

// History keeps short free-form logs for peeps outside the arena's fixed-size slots, keyed by handle. Entries for
// a handle are released when the peep is freed, so a reused handle never inherits another peep's history.
type History struct {
	cache *freecache.Cache
}

func NewHistory(size int) *History {
	return &History{cache: freecache.NewCache(size)}
}

// Append adds entry to h's history.
func (hs *History) Append(h types.Handle, entry string) error {
	entries, err := hs.Entries(h)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	if len(entries) > MaxHistoryEntries {
		entries = entries[len(entries)-MaxHistoryEntries:]
	}
	bz, err := codec.Encode(entries)
	if err != nil {
		return err
	}
	return eris.Wrap(hs.cache.Set(historyKey(h), bz, 0), "")
}

// Entries returns h's history, oldest first. A handle without history returns an empty slice.
func (hs *History) Entries(h types.Handle) ([]string, error) {
	bz, err := hs.cache.Get(historyKey(h))
	if err == freecache.ErrNotFound {
		return []string{}, nil
	} else if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return codec.Decode[[]string](bz)
}

// Release drops h's history and reports whether there was any.
func (hs *History) Release(h types.Handle) bool {
	return hs.cache.Del(historyKey(h))
}

// Len returns the number of handles with stored history.
func (hs *History) Len() int64 {
	return hs.cache.EntryCount()
}

func (hs *History) Clear() {
	hs.cache.Clear()
}

func historyKey(h types.Handle) []byte {
	return binary.BigEndian.AppendUint16(nil, uint16(h))
}
