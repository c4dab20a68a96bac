package main

import (
	"fmt"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/tripledger/internal/cli"
	"github.com/mmynk/tripledger/internal/service"
)

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "List trips",
	Args:  cobra.NoArgs,
	RunE:  runTrips,
}

func init() {
	rootCmd.AddCommand(tripsCmd)
}

func runTrips(cmd *cobra.Command, _ []string) error {
	l, release, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer release()

	resp, err := l.ListTrips(cmd.Context(), connect.NewRequest(&service.ListTripsRequest{}))
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(cli.RenderTrips(resp.Msg.Trips))
	return nil
}
