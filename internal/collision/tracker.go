// Package collision tracks signal-name-to-id hash collisions for the
// waveform registry: every signal is named, but internally addressed by
// the xxHash64 of its name, and two distinct names can map to the same id.
package collision

import "github.com/waveformdb/wavedb/errs"

// Tracker records which signal names have claimed which hash, and detects
// when two different names hash to the same id.
type Tracker struct {
	names        map[uint64]string
	namesList    []string
	hasCollision bool
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:     make(map[uint64]string),
		namesList: make([]string, 0),
	}
}

// Track registers name under hash. It returns errs.ErrInvalidID if name is
// empty, errs.ErrDuplicateSignalName if name was already registered. A
// collision between two different names sharing the same hash sets
// HasCollision but is not itself an error; callers disambiguate lookups on
// name in addition to hash once HasCollision is true.
func (t *Tracker) Track(name string, hash uint64) error {
	if name == "" {
		return errs.ErrInvalidID
	}

	if existing, ok := t.names[hash]; ok {
		if existing == name {
			return errs.ErrDuplicateSignalName
		}

		t.hasCollision = true
	}

	t.names[hash] = name
	t.namesList = append(t.namesList, name)

	return nil
}

// HasCollision reports whether two distinct names have ever hashed to the
// same id.
func (t *Tracker) HasCollision() bool { return t.hasCollision }

// Names returns the registered names in registration order.
func (t *Tracker) Names() []string { return t.namesList }

// Count returns the number of successful Track calls. The same name tracked
// under two different hashes counts twice.
func (t *Tracker) Count() int { return len(t.namesList) }

// Reset clears all tracked names and collision state, allowing the tracker
// to be reused.
func (t *Tracker) Reset() {
	for k := range t.names {
		delete(t.names, k)
	}

	t.namesList = t.namesList[:0]
	t.hasCollision = false
}
