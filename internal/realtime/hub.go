// Package realtime pushes ledger events to websocket subscribers of a trip.
package realtime

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/olahol/melody"
)

const tripKey = "trip_id"

// Hub fans events out to the websocket sessions watching each trip.
type Hub struct {
	m *melody.Melody
}

// NewHub creates a hub with no sessions.
func NewHub() *Hub {
	m := melody.New()
	m.Config.MaxMessageSize = 4096
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		tripID, _ := s.Get(tripKey)
		slog.Debug("Subscriber connected", "trip_id", tripID, "remote_addr", s.Request.RemoteAddr)
	})
	m.HandleDisconnect(func(s *melody.Session) {
		tripID, _ := s.Get(tripKey)
		slog.Debug("Subscriber disconnected", "trip_id", tripID)
	})
	m.HandleError(func(s *melody.Session, err error) {
		tripID, _ := s.Get(tripKey)
		slog.Warn("Websocket error", "trip_id", tripID, "error", err)
	})
	// Subscribers only listen; inbound messages are dropped.
	m.HandleMessage(func(*melody.Session, []byte) {})

	return &Hub{m: m}
}

// ServeHTTP upgrades GET /ws/trips/{tripID} to a websocket subscribed to tripID.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("tripID")
	if tripID == "" {
		http.Error(w, "trip id required", http.StatusBadRequest)
		return
	}
	if err := h.m.HandleRequestWithKeys(w, r, map[string]any{tripKey: tripID}); err != nil {
		slog.Warn("Websocket upgrade failed", "trip_id", tripID, "error", err)
	}
}

// Publish sends event as JSON to every session subscribed to tripID.
func (h *Hub) Publish(tripID string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return h.m.BroadcastFilter(data, func(s *melody.Session) bool {
		id, ok := s.Get(tripKey)
		return ok && id == tripID
	})
}

// Len returns the number of connected sessions across all trips.
func (h *Hub) Len() int {
	return h.m.Len()
}

// Close disconnects every session.
func (h *Hub) Close() error {
	return h.m.Close()
}
