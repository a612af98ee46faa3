// Package commands implements the taskmgr CLI commands using cobra.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/viant/taskmgr"
	"github.com/viant/taskmgr/model"
)

var rootCmd = &cobra.Command{
	Use:   "taskmgr",
	Short: "Bounded task registry simulator",
	Long: `Taskmgr builds a bounded task registry from a config file, environment
(TM_CAPACITY, TM_MODE, TM_LOG_LEVEL, TM_LOG_FORMAT) and flags, then runs
a scripted sequence of registry operations against it.`,
	Version:       taskmgr.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config URL (file path, file://, mem://, ...)")
	rootCmd.PersistentFlags().Int("capacity", 0, "Registry capacity, overrides config")
	rootCmd.PersistentFlags().StringP("mode", "m", "", "Registry mode: default, fifo, priority")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// loadConfig resolves the effective configuration: config file (or defaults)
// with environment overrides, then flags.
func loadConfig(ctx context.Context, cmd *cobra.Command) (*taskmgr.Config, error) {
	URL, _ := cmd.Flags().GetString("config")
	var cfg *taskmgr.Config
	var err error
	if URL != "" {
		if cfg, err = taskmgr.LoadConfig(ctx, URL); err != nil {
			return nil, err
		}
	} else {
		cfg = taskmgr.DefaultConfig()
		cfg.Logging.Level = "warn"
		if err = taskmgr.ApplyEnv(cfg); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("capacity") {
		cfg.Capacity, _ = cmd.Flags().GetInt("capacity")
	}
	if cmd.Flags().Changed("mode") {
		value, _ := cmd.Flags().GetString("mode")
		if cfg.Mode, err = model.ParseMode(value); err != nil {
			return nil, err
		}
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
