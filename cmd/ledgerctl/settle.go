package main

import (
	"fmt"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/tripledger/internal/cli"
	"github.com/mmynk/tripledger/internal/service"
)

var settleCmd = &cobra.Command{
	Use:   "settle <tripID>",
	Short: "Show balances and the transfers that settle a trip",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettle,
}

func init() {
	rootCmd.AddCommand(settleCmd)
}

func runSettle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	l, release, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer release()

	trip, err := l.GetTrip(ctx, connect.NewRequest(&service.GetTripRequest{TripID: args[0]}))
	if err != nil {
		return err
	}
	resp, err := l.GetSettlement(ctx, connect.NewRequest(&service.GetSettlementRequest{TripID: args[0]}))
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(cli.RenderSettlement(trip.Msg.Trip.Name, resp.Msg))
	return nil
}
