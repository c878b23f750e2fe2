package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/solcash/cashgo/config"
	"github.com/solcash/cashgo/logx"
	"github.com/solcash/cashgo/service"
	"github.com/solcash/cashgo/session"
)

var (
	configPath  string
	tuningPath  string
	keypairPath string
)

var rootCmd = &cobra.Command{
	Use:   "cashgo",
	Short: "Cash account client CLI",
	Long:  "Command line interface for the on-chain cash account program: deposits, withdrawals, transfers and payment requests.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML client config (defaults to devnet)")
	rootCmd.PersistentFlags().StringVar(&tuningPath, "tuning", "", "path to an INI file overriding the [submit] tuning")
	rootCmd.PersistentFlags().StringVar(&keypairPath, "keypair", "", "path to a solana-keygen keypair file used for signing")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}

// newService wires a CashService from the flags shared by every subcommand.
func newService() (*service.CashService, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if tuningPath != "" {
		tuning, err := config.LoadSubmitTuning(tuningPath)
		if err != nil {
			return nil, err
		}
		tuning.Apply(&cfg.Submit)
	}

	var wallet session.Wallet
	if keypairPath != "" {
		w, err := session.LoadLocalWallet(keypairPath)
		if err != nil {
			return nil, err
		}
		wallet = w
	}
	return service.New(cfg, wallet)
}
