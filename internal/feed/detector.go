package feed

import "sync"

// Detector announces pending orders the first time they show up in a
// snapshot. The first batch after construction or Rehydrate only fills the
// seen set.
type Detector struct {
	mu       sync.Mutex
	hydrated bool
	seen     map[string]struct{}
}

func NewDetector() *Detector {
	return &Detector{seen: make(map[string]struct{})}
}

// Observe returns the ids in batch that were never seen before, in batch
// order. An id is returned at most once over the detector's lifetime.
func (d *Detector) Observe(batch []string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var fresh []string
	for _, id := range batch {
		if id == "" {
			continue
		}
		if _, ok := d.seen[id]; ok {
			continue
		}
		d.seen[id] = struct{}{}
		if d.hydrated {
			fresh = append(fresh, id)
		}
	}
	d.hydrated = true
	return fresh
}

// Rehydrate makes the next batch silent again, for a re-subscribed stream.
// Ids already announced stay suppressed.
func (d *Detector) Rehydrate() {
	d.mu.Lock()
	d.hydrated = false
	d.mu.Unlock()
}

func (d *Detector) Seen(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.seen[id]
	return ok
}
