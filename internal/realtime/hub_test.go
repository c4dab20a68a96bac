package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type testEvent struct {
	Type   string `json:"type"`
	TripID string `json:"tripId"`
}

func setupHub(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub()
	mux := http.NewServeMux()
	mux.Handle("GET /ws/trips/{tripID}", hub)
	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})

	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s failed: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForSessions(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() < n {
		if time.Now().After(deadline) {
			t.Fatalf("only %d of %d sessions registered", hub.Len(), n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubPublishOnlyReachesTripSubscribers(t *testing.T) {
	hub, base := setupHub(t)

	first := dial(t, base+"/ws/trips/trip-a")
	second := dial(t, base+"/ws/trips/trip-a")
	other := dial(t, base+"/ws/trips/trip-b")
	waitForSessions(t, hub, 3)

	if err := hub.Publish("trip-a", testEvent{Type: "ledger.updated", TripID: "trip-a"}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	for i, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got testEvent
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("subscriber %d: read failed: %v", i, err)
		}
		if got.Type != "ledger.updated" || got.TripID != "trip-a" {
			t.Errorf("subscriber %d: got %+v", i, got)
		}
	}

	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, msg, err := other.ReadMessage(); err == nil {
		t.Errorf("trip-b subscriber received %s", msg)
	}
}

func TestHubPublishWithoutSubscribers(t *testing.T) {
	hub, _ := setupHub(t)
	if err := hub.Publish("nobody", testEvent{Type: "ledger.updated"}); err != nil {
		t.Errorf("Publish with no sessions failed: %v", err)
	}
}

func TestHubRejectsPlainHTTP(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	req := httptest.NewRequest(http.MethodGet, "/ws/trips/trip-a", nil)
	req.SetPathValue("tripID", "trip-a")
	rec := httptest.NewRecorder()
	hub.ServeHTTP(rec, req)

	if rec.Code == http.StatusSwitchingProtocols {
		t.Error("non-websocket request was upgraded")
	}
}
