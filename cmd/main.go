// Package main provides the CLI entrypoint for the credential checker
// service. It wires subcommands (serve, check), loads configuration, and
// initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"checker/internal/checker"
	"checker/internal/config"
	"checker/pkg/logger"
	"checker/pkg/provider/restapi"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getProviderClient builds the REST client for the identity provider from
// configuration values.
func getProviderClient(cfg *config.Config) *restapi.Client {
	return restapi.New(&http.Client{Timeout: cfg.Provider.RequestTimeout}, restapi.Options{
		UsersURL:     cfg.Provider.UsersURL,
		AuthURL:      cfg.Provider.AuthURL,
		EconomyURL:   cfg.Provider.EconomyURL,
		PremiumURL:   cfg.Provider.PremiumURL,
		FriendsURL:   cfg.Provider.FriendsURL,
		TwoStepURL:   cfg.Provider.TwoStepURL,
		InventoryURL: cfg.Provider.InventoryURL,
	})
}

// getChecker assembles the batch checker on top of the provider client.
func getChecker(cfg *config.Config, stats checker.Stats) checker.Checker {
	return checker.New(getProviderClient(cfg), stats, checker.NewOptions(cfg))
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "checker",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		checkCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
