package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mynades/mynades/internal/app"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	runningUnderTest     bool
	disableAutoHotReload bool
	debugLogFile         string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive shortcut manager",
	Long:  `Launch an interactive terminal UI to browse maps and manage their keyboard shortcuts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if debug {
			f, err := tea.LogToFile(debugLogFile, "debug")
			if err != nil {
				fmt.Println("fatal:", err)
				os.Exit(1)
			}
			logrus.SetOutput(f)
			defer f.Close()
		} else {
			// the alt screen owns the terminal, keep logs out of it unless a log file is configured
			logrus.SetLevel(logrus.PanicLevel)
		}

		if runningUnderTest {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		ctx, cancel := context.WithCancelCause(context.Background())
		defer cancel(context.Canceled)

		tuiApp, err := app.NewTUI(ctx, cancel, configPath, Version, disableAutoHotReload)
		if err != nil {
			return fmt.Errorf("cant init tui: %w", err)
		}

		return tuiApp.Run(ctx, cancel)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&runningUnderTest, "running-under-test", false,
		"Use test settings such as no styling etc.")
	tuiCmd.Flags().BoolVar(&disableAutoHotReload, "disable-auto-hot-reload", false,
		"Do not reload the configuration when the file changes")
	tuiCmd.Flags().StringVar(&debugLogFile, "debug-log-file", "debug.log",
		"Where to write logs when --debug is set")
}
