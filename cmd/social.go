package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var addFriendCmd = &cobra.Command{
	Use:   "add-friend <handle>",
	Short: "Add the owner of a registered handle to the friends list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return report(svc.AddFriend(context.Background(), args[0]))
	},
}

var requestCmd = &cobra.Command{
	Use:   "request <handle> <amount>",
	Short: "Ask the owner of a registered handle for SOL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		return report(svc.RequestPayment(context.Background(), args[0], amount))
	},
}

var acceptRequestCmd = &cobra.Command{
	Use:   "accept-request",
	Short: "Settle the pending payment request against the signing wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return report(svc.AcceptRequest(context.Background()))
	},
}

var declineRequestCmd = &cobra.Command{
	Use:   "decline-request",
	Short: "Close the pending payment request without moving funds",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return report(svc.DeclineRequest(context.Background()))
	},
}

func init() {
	rootCmd.AddCommand(addFriendCmd)
	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(acceptRequestCmd)
	rootCmd.AddCommand(declineRequestCmd)
}
