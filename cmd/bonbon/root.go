// Command bonbon is the fetch/partition/reassemble CLI of §6.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	sourceConfig string
	sinkConfig   string
	rangeFlag    string
	verbose      bool
)

var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "bonbon",
	Short: "Replay NFT state from a Solana-like ledger",
	Long: `bonbon reconstructs point-in-time NFT state by replaying on-chain
instructions through a partition-then-assemble pipeline.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sinkConfig, "sink-config", "", "connection string for the persistent store")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "dump assembled Bonbons to stderr")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(partitionCmd)
	rootCmd.AddCommand(reassembleCmd)
}
