package main

import (
	"fmt"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/tripledger/internal/cli"
	"github.com/mmynk/tripledger/internal/service"
)

var flagPreview bool

var budgetCmd = &cobra.Command{
	Use:   "budget <tripID>",
	Short: "Show a trip's budget snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudget,
}

func init() {
	budgetCmd.Flags().BoolVarP(&flagPreview, "preview", "p", false, "Simulate the saved forecast on top of current spend")
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, args []string) error {
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
	resp, err := l.GetBudgetSnapshot(ctx, connect.NewRequest(&service.GetBudgetSnapshotRequest{
		TripID:  args[0],
		Preview: flagPreview,
	}))
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(cli.RenderBudget(trip.Msg.Trip.Name, resp.Msg))
	return nil
}
