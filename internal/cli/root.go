// Package cli holds the framegrip commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"framegrip/internal/config"
	"framegrip/internal/eventbus"
)

// logFile receives the session log
const logFile = "framegrip.log"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "framegrip",
	Short: "Select, hover, resize and toolbar overlays for HTML documents",
	Long: `framegrip loads an HTML document into a terminal canvas where elements
can be hovered, selected, resized with grips and edited through a floating
toolbar. Sessions can be driven interactively or replayed from a TOML script.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default is the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// newLogger logs to framegrip.log; the terminal belongs to the UI
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{logFile}
	cfg.ErrorOutputPaths = []string{logFile}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	return logger, nil
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

// loadConfig reads --config, or the default config file when the flag is
// unset; only the default file may be missing
func loadConfig(bus eventbus.EventBus) (*config.Config, error) {
	return config.NewConfigServiceWithBus(cfgFile, bus).Load()
}

func openDocument(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return f, nil
}
