// Package cmd provides the entry point for the mynades application.
// It manages keyboard shortcuts grouped by map, from a terminal UI or from scripts.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/mynades/mynades/internal/errs"
	"github.com/mynades/mynades/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	Version    = "dev"
	Commit     = "none"
	BuildDate  = "unknown"
	BinaryName = "mynades"
)

var (
	debug                bool
	verbose              bool
	enableJSONLogsFormat bool
	configPath           string
	rootCmd              = &cobra.Command{
		Use:              BinaryName,
		Short:            "Manage keyboard shortcuts per map",
		Long:             "mynades keeps a list of keyboard shortcuts for every map. Browse the maps, capture new key combinations and describe them from the terminal.",
		Version:          fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		PersistentPreRun: setupLogger,
		SilenceErrors:    true,
		SilenceUsage:     true,
	}
)

func Execute() {
	cmd, _, err := rootCmd.Find(os.Args[1:])

	if err == nil && cmd.Use == rootCmd.Use && !errors.Is(cmd.Flags().Parse(os.Args[1:]), pflag.ErrHelp) &&
		!slices.Contains(os.Args[1:], "--version") && !slices.Contains(os.Args[1:], "-v") {
		args := append([]string{tuiCmd.Use}, os.Args[1:]...)
		rootCmd.SetArgs(args)
	}

	err = rootCmd.Execute()
	if errors.Is(err, context.Canceled) {
		logrus.WithError(err).Debug("Context cancelled, exiting")
		return
	}
	if errors.Is(err, errs.ErrUnknownCommand) || errors.Is(err, errs.ErrInvalidParams) {
		utils.PrettyPrintError(os.Stderr, err)
		os.Exit(2)
	}
	if err != nil {
		logrus.WithError(err).Fatal("Command failed")
	}
	logrus.Debug("Exiting...")
}

func setupLogger(cmd *cobra.Command, args []string) {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	if verbose {
		logrus.SetReportCaller(true)
	}

	if enableJSONLogsFormat {
		logrus.SetFormatter(&logrus.JSONFormatter{
			DisableTimestamp: false,
			TimestampFormat:  time.RFC3339Nano,
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: false,
			DisableColors:    false,
			TimestampFormat:  time.RFC3339Nano,
			FullTimestamp:    true,
			ForceQuote:       true,
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				fn := filepath.Base(f.Function)
				file := fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
				return fn, file
			},
		})
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(
		&configPath,
		"config",
		"$HOME/.config/mynades/config.toml",
		"Path to configuration file",
	)
	rootCmd.PersistentFlags().BoolVar(&enableJSONLogsFormat, "enable-json-logs-format", false, "Enable structured logging")
}
