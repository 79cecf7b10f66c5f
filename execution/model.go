package execution

import (
	"sync"
	"time"
)

const defaultReplay = 64

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Execution records one node invocation.
type Execution struct {
	ID         string         `json:"id"`
	Class      string         `json:"class"`
	UniqueID   string         `json:"unique_id,omitempty"`
	Status     Status         `json:"status"`
	Outputs    map[string]any `json:"outputs,omitempty"`
	Error      string         `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// Event types pushed to subscribers.
const (
	EventExecuting = "executing"
	EventExecuted  = "executed"
	EventError     = "execution_error"
)

type Event struct {
	Type        string         `json:"type"`
	ExecutionID string         `json:"execution_id"`
	Class       string         `json:"class"`
	Data        map[string]any `json:"data,omitempty"`
	Time        time.Time      `json:"time"`
}

// Hub fans events out to live subscribers and keeps the most recent ones for
// replay when a client connects.
type Hub struct {
	mu      sync.Mutex
	clients map[chan Event]struct{}
	recent  []Event
	max     int
}

// NewHub keeps up to replay recent events; replay <= 0 uses the default.
func NewHub(replay int) *Hub {
	if replay <= 0 {
		replay = defaultReplay
	}
	return &Hub{clients: make(map[chan Event]struct{}), max: replay}
}

// Publish records ev and sends it to every subscriber. A subscriber whose
// channel is full misses the event.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recent = append(h.recent, ev)
	if len(h.recent) > h.max {
		excess := len(h.recent) - h.max
		h.recent = h.recent[excess:]
	}
	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers ch for live events and returns the replay buffer as of
// registration, so nothing published in between is lost or duplicated.
func (h *Hub) Subscribe(ch chan Event) []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[ch] = struct{}{}
	return h.snapshotLocked()
}

// Unsubscribe removes ch and closes it so its pump goroutine exits. Calling it
// twice is harmless.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	_, ok := h.clients[ch]
	delete(h.clients, ch)
	h.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Snapshot returns a copy of the replay buffer.
func (h *Hub) Snapshot() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshotLocked()
}

func (h *Hub) snapshotLocked() []Event {
	if len(h.recent) == 0 {
		return nil
	}
	cp := make([]Event, len(h.recent))
	copy(cp, h.recent)
	return cp
}

// Subscribers reports the number of live subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
