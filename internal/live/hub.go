// Package live fans out per-user change events to in-process
// subscribers, the way the UI's live list views consume them. Ordering
// is preserved within one user's stream; streams for different users
// are independent.
package live

import (
	"sync"

	"github.com/google/uuid"
)

type Event struct {
	Collection string      `json:"collection"`
	Type       string      `json:"type"`
	Payload    interface{} `json:"payload,omitempty"`
}

const (
	TypeCreated = "created"
	TypeUpdated = "updated"
	TypeDeleted = "deleted"
)

type subscriber struct {
	ch chan Event
}

type Hub struct {
	mu   sync.Mutex
	subs map[uuid.UUID]map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]map[*subscriber]struct{})}
}

// Subscribe returns the user's change stream and a cancel function.
// Once cancel returns, no further events are delivered and the channel
// is closed. Cancel is safe to call more than once.
func (h *Hub) Subscribe(userID uuid.UUID, buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	sub := &subscriber{ch: make(chan Event, buffer)}

	h.mu.Lock()
	set := h.subs[userID]
	if set == nil {
		set = make(map[*subscriber]struct{})
		h.subs[userID] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if set, ok := h.subs[userID]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(h.subs, userID)
				}
			}
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// Publish delivers ev to every live subscriber of userID. A subscriber
// whose buffer is full misses the event rather than blocking the
// publisher; list views re-read on reconnect anyway. Publishing and
// cancellation take the same lock, so nothing is sent on a closed
// channel.
func (h *Hub) Publish(userID uuid.UUID, ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[userID] {
		select {
		case sub.ch <- ev:
		default:
		}
	}
}
