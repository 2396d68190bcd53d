package progress

import "sync"

type (
	entryKey struct {
		userID    string
		bookID    string
		audioName string
	}

	// Tracker remembers the last playback offset per (user, book, track)
	// triple. Saving again for the same triple replaces the prior value.
	// A flat composite key keeps lookups and iteration trivial compared to a
	// nested user/book/track map.
	Tracker struct {
		mutex   sync.RWMutex
		entries map[entryKey]float64
	}
)

func NewTracker() *Tracker {
	return &Tracker{entries: make(map[entryKey]float64)}
}

// Save records the playback offset, overwriting any prior value for the
// triple. Neither the book nor the track is validated against the catalog.
func (t *Tracker) Save(userID, bookID, audioName string, currentTime float64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.entries[entryKey{userID: userID, bookID: bookID, audioName: audioName}] = currentTime
}

// Get returns the saved offsets of one user for one book, keyed by track
// name. Users or books with nothing saved yield an empty map.
func (t *Tracker) Get(userID, bookID string) map[string]float64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	out := make(map[string]float64)
	for k, v := range t.entries {
		if k.userID == userID && k.bookID == bookID {
			out[k.audioName] = v
		}
	}
	return out
}
