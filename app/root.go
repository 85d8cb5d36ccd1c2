// Package app implements the main application commands.
package app

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/authgw/authgw/internal/config"
	"github.com/authgw/authgw/internal/logger"
)

const (
	configPathKey     = "config_path"
	configPathEnv     = "AUTHGW_CONFIG_PATH"
	defaultConfigPath = "./etc/"
)

var (
	cfg   config.Config
	flags = viper.New()

	rootCmd = &cobra.Command{
		Use:   "authgw",
		Short: "authgw is an authentication gateway for LDAP and Active Directory",
		Long: `authgw sits in front of protected applications. It redirects visitors without a
session to its login page, verifies their credentials against a local user store or an
LDAP / Active Directory server and keeps the local user and its groups in sync.`,
		Args:              cobra.OnlyValidArgs,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "directory holding main.toml (env "+configPathEnv+")")

	_ = flags.BindPFlag(configPathKey, rootCmd.PersistentFlags().Lookup("config"))
	_ = flags.BindEnv(configPathKey, configPathEnv)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads .env, the config file and initializes the global logger.
func loadConfig(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return err
		}
	}

	var err error
	if cfg, err = config.ReadConfig(flags.GetString(configPathKey)); err != nil {
		return err
	}

	if devMode {
		cfg.DevMode = true
	}

	return logger.Init(cfg.Log)
}
