package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"rentledger/internal/config"
	"rentledger/internal/gateway"
	"rentledger/internal/gateway/postgresgw"
	"rentledger/internal/gateway/sqlitegw"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "rentledger",
		Short: "Local record-keeping host for landlord ledgers",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "rentledger.toml", "path to TOML config file")

	rootCmd.AddCommand(
		serveCmd(),
		sweepCmd(),
		exportCmd(),
		importCmd(),
		tokenCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, newLogger(cfg.Logging), nil
}

func newLogger(lc config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if lc.Pretty {
		logger = zerolog.New(zerolog.NewConsoleWriter())
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

func openGateway(cmd *cobra.Command, cfg *config.Config) (gateway.Gateway, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return postgresgw.Open(cmd.Context(), cfg.Database.PostgresDSN)
	default:
		return sqlitegw.Open(cfg.Database.SQLitePath)
	}
}
