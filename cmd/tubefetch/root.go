package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tubefetch/tubefetch/internal/config"
)

const defaultConfigPath = "tubefetch.toml"

func newRootCommand() *cobra.Command {
	var configPath string
	var verbose bool

	root := &cobra.Command{
		Use:           "tubefetch",
		Short:         "Telegram bot that downloads YouTube links as video or audio",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(configPath, verbose)
			if err != nil {
				return err
			}
			return runBot(cmd.Context(), cfg, log)
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the TOML configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newBroadcastCommand(&configPath, &verbose))
	return root
}

// setup loads the environment file, the configuration, and builds the logger
// shared by every command.
func setup(configPath string, verbose bool) (*config.Config, *logrus.Logger, error) {
	// A missing .env is fine: the token may come from the real environment.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.RequireToken(); err != nil {
		return nil, nil, err
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return cfg, log, nil
}
