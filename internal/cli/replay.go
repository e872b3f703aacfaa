package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"framegrip/internal/coordinator"
	"framegrip/internal/eventbus"
	"framegrip/internal/replay"
)

var (
	replayOut  string
	replayHTML string
)

var replayCmd = &cobra.Command{
	Use:   "replay <file.html> <script.toml>",
	Short: "Run a TOML event script and print a snapshot per step",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		script, err := replay.Load(args[1])
		if err != nil {
			return err
		}

		bus := eventbus.New(logger)
		cfg, err := loadConfig(bus)
		if err != nil {
			return err
		}

		f, err := openDocument(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		c, err := coordinator.NewCoordinator(bus, cfg, f, logger)
		if err != nil {
			return err
		}
		defer c.Close()

		rep, runErr := replay.NewRunner(c, logger).Run(script)
		logger.Info("replay finished", zap.Int("steps", len(rep.Snapshots)), zap.Error(runErr))

		// partial reports are still written
		out := cmd.OutOrStdout()
		if replayOut != "" {
			file, err := os.Create(replayOut)
			if err != nil {
				return fmt.Errorf("failed to create report: %w", err)
			}
			defer file.Close()
			out = file
		}
		if err := rep.Write(out); err != nil {
			return err
		}

		if replayHTML != "" {
			file, err := os.Create(replayHTML)
			if err != nil {
				return fmt.Errorf("failed to create document: %w", err)
			}
			defer file.Close()
			if err := c.Document.Render(file); err != nil {
				return err
			}
		}
		return runErr
	},
}

func init() {
	replayCmd.Flags().StringVarP(&replayOut, "out", "o", "", "write the report to a file instead of stdout")
	replayCmd.Flags().StringVar(&replayHTML, "html", "", "write the resulting document to a file")
	rootCmd.AddCommand(replayCmd)
}
