package cmd

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/solcash/cashgo/program"
)

var initAccountCmd = &cobra.Command{
	Use:   "init-account",
	Short: "Create the cash account for the signing wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		res, err := svc.InitializeAccount(context.Background())
		if err != nil {
			return err
		}
		fmt.Println("outcome:", res.Outcome, "signature:", res.Signature)
		return nil
	},
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show the signing wallet's cash account",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		rec, err := svc.Account(context.Background())
		if err != nil {
			return err
		}
		fmt.Println("address:", rec.Address)
		fmt.Println("owner:", rec.Owner)
		fmt.Printf("balance: %d lamports\n", rec.Lamports)
		fmt.Println("pending requests:", rec.PendingRequestCounter)
		for _, f := range rec.Friends {
			fmt.Println("friend:", f)
		}
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show the lamport balance of an address (defaults to the signing wallet's cash account)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		ctx := context.Background()

		var addr solana.PublicKey
		if len(args) == 1 {
			addr, err = program.ParseIdentity(args[0])
		} else {
			addr, err = svc.CashAccountAddress(ctx)
		}
		if err != nil {
			return err
		}

		bal, err := svc.Balance(ctx, addr)
		if err != nil {
			return err
		}
		fmt.Printf("%d lamports\n", bal)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initAccountCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(balanceCmd)
}
