package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/pickup-planner/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "pickup-planner",
	Short: "Geographic clustering for volunteer pickup teams",
	Long:  "Reads an address roster, geocodes it, partitions the addresses into balanced geographic teams, and reports each team's spread with warnings for suspicious assignments.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
