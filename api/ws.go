package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"prompt-nodes/execution"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWS streams execution events. Recent events are replayed first.
func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade error", zap.Error(err))
		return
	}
	defer conn.Close()

	// gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	writeEvent := func(ev execution.Event) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(ev)
	}

	events := make(chan execution.Event, 256)
	replay := h.hub.Subscribe(events)
	defer h.hub.Unsubscribe(events)

	for _, ev := range replay {
		if err := writeEvent(ev); err != nil {
			h.logger.Debug("ws replay error", zap.Error(err))
			return
		}
	}

	// Goroutine: pump live events to the client.
	// Exits when Unsubscribe closes events.
	go func() {
		for ev := range events {
			if err := writeEvent(ev); err != nil {
				return
			}
		}
	}()

	// The feed is one-way; reading only detects the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
