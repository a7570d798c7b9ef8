// Package main provides the CLI entrypoint for the tender document filling
// service. It wires subcommands (serve, fill, migrate, jwt), loads
// configuration, and initializes logging.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/internal/config"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
)

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "hsdt",
		Short: "Fills bid dossier templates from tender documents",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	fset := flag.NewFlagSet("hsdt", flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	configPath := fset.String("c", "config.yml", "The config file path")
	_ = fset.Parse(os.Args[1:])

	// a local .env file is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Println("could not load .env file:", err)
	}

	log.Println("loading config ...")
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn(ctx, "keeping default log level", zap.Error(err))
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		migrateCommand(cfg),
		serveCommand(cfg),
		fillCommand(cfg),
		JWTCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

// loadConfig reads the yaml file when it exists and falls back to the
// environment otherwise.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config.LoadEnv()
	}

	return config.Load(path)
}
