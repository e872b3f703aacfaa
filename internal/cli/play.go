package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"framegrip/internal/coordinator"
	"framegrip/internal/eventbus"
	"framegrip/internal/ui"
)

var playCmd = &cobra.Command{
	Use:   "play <file.html>",
	Short: "Open a document in the interactive canvas",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

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

		model := ui.NewModel(c, cfg, filepath.Base(args[0]), logger)
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
		model.SetProgram(p)

		if os.Getenv("FRAMEGRIP_E2E_TEST") == "1" {
			fmt.Fprintln(cmd.OutOrStdout(), "__READY__")
		}

		logger.Info("starting UI", zap.String("document", args[0]))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
		logger.Info("UI exited normally")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
