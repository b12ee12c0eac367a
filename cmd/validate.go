package cmd

import (
	"os"

	"github.com/mynades/mynades/internal/config"
	"github.com/mynades/mynades/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long:  `Validate the configuration file for syntax errors and logical consistency.`,
	Run: func(cmd *cobra.Command, args []string) {
		logrus.WithField("config_path", configPath).Debug("Validating configuration")

		cfg, err := config.NewConfig(configPath)
		if err != nil {
			utils.PrettyPrintError(os.Stderr, err)
			logrus.Fatal("Configuration validation failed")
			return
		}

		logrus.WithFields(logrus.Fields{
			"maps":     len(cfg.Get().Maps),
			"database": *cfg.Get().General.Database,
		}).Info("Configuration is valid")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
