// Package cmd implements the bid-reconciler command line
package cmd

import (
	"context"
	"fmt"

	"bid-reconciler/internal/config"
	"bid-reconciler/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "bid-reconciler",
		Short:         "Tracks auction bids and reconciles them with the auction sites",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newServeCommand())
	root.AddCommand(newCheckCommand())
	root.AddCommand(newEncryptCommand())
	return root
}

// Execute runs the root command
func Execute() error {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	return newRootCommand().ExecuteContext(context.Background())
}

// loadConfig reads and validates the configuration and applies the log level
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, err
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		return config.Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	return cfg, nil
}
