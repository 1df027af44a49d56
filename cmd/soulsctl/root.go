package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	infraconfig "github.com/sammyhga/SoulsData/infrastructure/config"
	"github.com/sammyhga/SoulsData/infrastructure/logger"
	"github.com/sammyhga/SoulsData/internal/bootstrap"
	"github.com/sammyhga/SoulsData/internal/config"
)

const envPrefix = "SOULSCTL"

// newRootCommand builds the command tree. Every flag can also be set as
// SOULSCTL_<FLAG>, with dashes turned into underscores.
func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "soulsctl",
		Short:         "Inspect and export SoulsData outreach records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("bind flags: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().String("config", infraconfig.GetConfigPath("config.yml"), "path to config.yml")
	root.PersistentFlags().Bool("debug", false, "log at debug level")

	root.AddCommand(
		newReportCommand(v),
		newExportCommand(v),
		newTokenCommand(v),
	)
	return root
}

// loadConfig reads configuration from the --config path.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	return bootstrap.LoadConfigFrom(v.GetString("config"))
}

// newLogger returns a console logger that stays quiet unless --debug is set.
func newLogger(v *viper.Viper) (logger.Logger, error) {
	level := "warn"
	if v.GetBool("debug") {
		level = "debug"
	}
	return logger.New(logger.Config{Level: level, Format: logger.FormatConsole, OutputPaths: []string{"stderr"}})
}
