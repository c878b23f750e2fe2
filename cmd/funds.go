package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/solcash/cashgo/types"
)

var depositCmd = &cobra.Command{
	Use:   "deposit <amount>",
	Short: "Move SOL from the signing wallet into its cash account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		return report(svc.Deposit(context.Background(), amount))
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw <amount>",
	Short: "Move SOL from the cash account back to the signing wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		return report(svc.Withdraw(context.Background(), amount))
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer <handle> <amount>",
	Short: "Send SOL to the cash account of a registered handle",
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
		return report(svc.Transfer(context.Background(), args[0], amount))
	},
}

func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not a number", s)
	}
	return amount, nil
}

// report prints a submission result; a rejected or timed-out submission still
// shows its signature so the caller can inspect it on an explorer.
func report(res types.SubmissionResult, err error) error {
	if !res.Signature.IsZero() {
		fmt.Println("outcome:", res.Outcome, "signature:", res.Signature)
	}
	if res.Reason != "" {
		fmt.Println("chain error:", res.Reason)
	}
	return err
}

func init() {
	rootCmd.AddCommand(depositCmd)
	rootCmd.AddCommand(withdrawCmd)
	rootCmd.AddCommand(transferCmd)
}
