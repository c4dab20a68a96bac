package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripledger/internal/auth"
	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/service"
	"github.com/mmynk/tripledger/internal/storage/sqlite"
)

func TestOpenLedger_UsesConfiguredStore(t *testing.T) {
	t.Chdir(t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("TRIPLEDGER_CONFIG", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", dbPath)

	store, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	trip := &models.Trip{
		Name:         "Porto",
		NumPeople:    2,
		Participants: []models.Participant{{Name: "Alice"}, {Name: "Bob"}},
	}
	ctx := context.Background()
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	if err := store.CreateExpense(ctx, &models.Expense{
		TripID:  trip.ID,
		PayerID: trip.Participants[0].ID,
		Amount:  decimal.NewFromInt(50),
	}); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	store.Close()

	flagServer, flagConfig = "", ""
	l, release, err := openLedger(ctx)
	if err != nil {
		t.Fatalf("openLedger failed: %v", err)
	}
	defer release()

	resp, err := l.GetSettlement(ctx, connect.NewRequest(&service.GetSettlementRequest{TripID: trip.ID}))
	if err != nil {
		t.Fatalf("GetSettlement failed: %v", err)
	}
	if got := resp.Msg.Transfers; len(got) != 1 || got[0].Summary != "Bob owes Alice 25.00 EUR" {
		t.Errorf("unexpected transfers: %+v", got)
	}
}

func TestCommandsRequireTripID(t *testing.T) {
	for _, cmd := range []string{"settle", "budget"} {
		rootCmd.SetArgs([]string{cmd})
		if err := rootCmd.Execute(); err == nil {
			t.Errorf("%s without a trip id should fail", cmd)
		}
	}
}

func TestTokenCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRIPLEDGER_CONFIG", "")
	t.Setenv("JWT_ISSUER", "ops")
	flagConfig = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		flagTokenName, flagTokenTTL = "", ""
	})

	t.Run("without secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		rootCmd.SetArgs([]string{"token", "user-7"})
		if err := rootCmd.Execute(); err == nil {
			t.Error("token without a configured secret should fail")
		}
	})

	t.Run("signed with configured secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "cli-secret")
		out.Reset()
		rootCmd.SetArgs([]string{"token", "user-7", "--name", "Dana", "--ttl", "1h"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("token failed: %v", err)
		}

		claims, err := auth.NewVerifier("cli-secret", "ops", 0).Verify(strings.TrimSpace(out.String()))
		if err != nil {
			t.Fatalf("minted token does not verify: %v", err)
		}
		if claims.UserID != "user-7" || claims.Name != "Dana" {
			t.Errorf("unexpected claims: %+v", claims)
		}
	})
}
