package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "eventscope",
		Short:        "Transaction event semantics engine",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify transaction logs into known events",
		RunE:  runClassify,
	}
	addCommonFlags(classifyCmd)
	classifyCmd.Flags().String("out", "", "output JSONL path (stdout when empty)")
	root.AddCommand(classifyCmd)

	receiptCmd := &cobra.Command{
		Use:   "receipt",
		Short: "Render receipt line items for transactions",
		RunE:  runReceipt,
	}
	addCommonFlags(receiptCmd)
	root.AddCommand(receiptCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("in", "", "input transactions JSONL")
	cmd.Flags().String("rpc", "", "RPC URL for live token metadata (optional)")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN for persistence (optional)")
	cmd.Flags().String("token-meta", "", "static token metadata JSON file")
	cmd.Flags().String("role-names", "", "role name table JSON file")
	cmd.Flags().String("fee-manager", "", "fee manager contract address")
	cmd.Flags().String("exchange", "", "exchange contract address")
	cmd.Flags().String("token-factory", "", "token factory contract address")
	cmd.Flags().String("policy-registry", "", "policy registry contract address")
	cmd.Flags().String("nonce-manager", "", "nonce manager contract address")
	cmd.Flags().String("fee-pool", "", "fee liquidity pool address (defaults to fee manager)")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
