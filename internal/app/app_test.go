package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripledger/internal/auth"
	"github.com/mmynk/tripledger/internal/config"
	"github.com/mmynk/tripledger/internal/service"
)

func setupServer(t *testing.T, secret string) (*Server, *httptest.Server) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "app.db")
	cfg.Auth.JWTSecret = secret

	store, err := OpenStore(context.Background(), cfg.Database)
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	srv := NewServer(cfg, store)
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
		store.Close()
	})
	return srv, ts
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	if _, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: "mysql"}); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestServer_RequiresTokenWhenSecretSet(t *testing.T) {
	_, ts := setupServer(t, "test-secret")
	client := service.NewLedgerServiceClient(http.DefaultClient, ts.URL)

	_, err := client.ListTrips(context.Background(), connect.NewRequest(&service.ListTripsRequest{}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Fatalf("code = %v, want Unauthenticated", connect.CodeOf(err))
	}

	token, err := auth.IssueToken("test-secret", "", "user-1", "Alice", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	req := connect.NewRequest(&service.ListTripsRequest{})
	req.Header().Set("Authorization", "Bearer "+token)
	if _, err := client.ListTrips(context.Background(), req); err != nil {
		t.Fatalf("ListTrips with token failed: %v", err)
	}
}

func TestServer_PublishesToWebsocketSubscribers(t *testing.T) {
	srv, ts := setupServer(t, "")
	client := service.NewLedgerServiceClient(http.DefaultClient, ts.URL)
	ctx := context.Background()

	created, err := client.CreateTrip(ctx, connect.NewRequest(&service.CreateTripRequest{
		Name:             "Oslo",
		ParticipantNames: []string{"Alice", "Bob"},
	}))
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	trip := created.Msg.Trip

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/trips/" + trip.ID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for srv.Hub.Len() < 1 {
		if time.Now().After(deadline) {
			t.Fatal("websocket session never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if _, err := client.AddExpense(ctx, connect.NewRequest(&service.AddExpenseRequest{
		TripID:  trip.ID,
		PayerID: trip.Participants[0].ID,
		Amount:  decimal.NewFromInt(40),
	})); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event service.LedgerEvent
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read event failed: %v", err)
	}
	if event.Type != service.EventLedgerUpdated || event.Settlement == nil {
		t.Fatalf("unexpected event: %+v", event)
	}
	if got := event.Settlement.Transfers[0].Summary; got != "Bob owes Alice 20.00 EUR" {
		t.Errorf("summary = %q, want Bob owes Alice 20.00 EUR", got)
	}
}

func TestServer_MetricsAndHealth(t *testing.T) {
	_, ts := setupServer(t, "")
	client := service.NewLedgerServiceClient(http.DefaultClient, ts.URL)
	_, _ = client.GetTrip(context.Background(), connect.NewRequest(&service.GetTripRequest{TripID: "missing"}))

	for path, want := range map[string]string{
		"/healthz": "ok",
		"/metrics": `tripledger_rpc_requests_total{code="not_found",procedure="/tripledger.v1.LedgerService/GetTrip"} 1`,
	} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if !strings.Contains(string(body), want) {
			t.Errorf("GET %s missing %q", path, want)
		}
	}

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/"+service.LedgerServiceName+"/GetTrip", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS failed: %v", err)
	}
	resp.Body.Close()
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS headers missing on preflight")
	}
}
