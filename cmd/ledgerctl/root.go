package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/tripledger/internal/app"
	"github.com/mmynk/tripledger/internal/config"
	"github.com/mmynk/tripledger/internal/service"
	"github.com/mmynk/tripledger/pkg/logging"
)

var (
	flagConfig string
	flagServer string
	flagToken  string
)

var rootCmd = &cobra.Command{
	Use:           "ledgerctl",
	Short:         "Trip ledger CLI",
	Long:          "Inspect group trip ledgers: who owes whom and how the budget is holding up.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "  Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to TOML config (default: $TRIPLEDGER_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "Query a running server instead of the configured store")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", os.Getenv("TRIPLEDGER_TOKEN"), "Bearer token for --server")
}

// ledger is the subset of the ledger API the commands use. It is satisfied
// both by the in-process service and by the remote client.
type ledger interface {
	GetTrip(context.Context, *connect.Request[service.GetTripRequest]) (*connect.Response[service.GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[service.ListTripsRequest]) (*connect.Response[service.ListTripsResponse], error)
	GetSettlement(context.Context, *connect.Request[service.GetSettlementRequest]) (*connect.Response[service.GetSettlementResponse], error)
	GetBudgetSnapshot(context.Context, *connect.Request[service.GetBudgetSnapshotRequest]) (*connect.Response[service.GetBudgetSnapshotResponse], error)
}

// openLedger returns the ledger to query and a function releasing it.
func openLedger(ctx context.Context) (ledger, func(), error) {
	if flagServer != "" {
		var opts []connect.ClientOption
		if flagToken != "" {
			opts = append(opts, connect.WithInterceptors(bearer(flagToken)))
		}
		return service.NewLedgerServiceClient(http.DefaultClient, flagServer, opts...), func() {}, nil
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	logging.SetupWithLevel(slog.LevelError)

	store, err := app.OpenStore(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	svc := service.NewLedgerService(store, service.WithBaseCurrency(cfg.Ledger.BaseCurrency))
	return svc, func() { store.Close() }, nil
}

// bearer attaches a token to every outgoing request.
func bearer(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}
}
