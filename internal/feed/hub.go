// Package feed fans order change notices out to live owner panels.
package feed

import "sync"

// Notice tells subscribers of a store that one of its orders changed.
type Notice struct {
	StoreID string
	OrderID string
	Type    string
}

// Subscription receives notices for a single store until Close.
type Subscription struct {
	C <-chan Notice

	ch      chan Notice
	storeID string
	hub     *Hub
	once    sync.Once
}

func (s *Subscription) Close() {
	s.once.Do(func() { s.hub.remove(s) })
}

// Hub keeps per-store subscriber sets. Publishing never blocks: a subscriber
// whose buffer is full already has a refresh queued, so the notice is dropped.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{subs: make(map[string]map[*Subscription]struct{}), buffer: buffer}
}

func (h *Hub) Subscribe(storeID string) *Subscription {
	ch := make(chan Notice, h.buffer)
	s := &Subscription{C: ch, ch: ch, storeID: storeID, hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[storeID]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[storeID] = set
	}
	set[s] = struct{}{}
	return s
}

// Publish returns how many subscribers were handed the notice.
func (h *Hub) Publish(n Notice) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for s := range h.subs[n.StoreID] {
		select {
		case s.ch <- n:
			delivered++
		default:
		}
	}
	return delivered
}

func (h *Hub) Subscribers(storeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[storeID])
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[s.storeID]
	if _, ok := set[s]; !ok {
		return
	}
	delete(set, s)
	if len(set) == 0 {
		delete(h.subs, s.storeID)
	}
	close(s.ch)
}
