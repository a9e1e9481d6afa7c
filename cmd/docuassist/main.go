package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ternarybob/docuassist/internal/app"
	"github.com/ternarybob/docuassist/internal/common"
	"github.com/ternarybob/docuassist/internal/server"
)

// configPaths accumulates repeated -config flags
type configPaths []string

func (c *configPaths) String() string {
	return strings.Join(*c, ", ")
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

func main() {
	var configs configPaths
	flag.Var(&configs, "config", "Path to config file (repeatable, later files override earlier)")
	flag.Var(&configs, "c", "Path to config file (shorthand)")
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.IntVar(port, "p", 0, "Server port (shorthand)")
	host := flag.String("host", "", "Server host (overrides config)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(showVersion, "v", false, "Print version and exit (shorthand)")
	flag.Parse()

	if *showVersion {
		fmt.Println(common.GetFullVersion())
		return
	}

	// .env is optional; environment variables win over config files
	_ = godotenv.Load()

	// Auto-discover the default config file when none was given
	if len(configs) == 0 {
		if _, err := os.Stat("docuassist.toml"); err == nil {
			configs = append(configs, "docuassist.toml")
		}
	}

	config, err := common.LoadFromFiles(configs...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	common.ApplyFlagOverrides(config, *port, *host)

	logger := common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	logger.Info().
		Str("version", common.GetVersion()).
		Str("environment", config.Environment).
		Msg("Starting DocuAssist")

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	application.HealthCheck(context.Background())

	srv := server.New(application)

	// Run the server in a goroutine so signals can interrupt
	serverErr := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				serverErr <- fmt.Errorf("server panic: %v", r)
			}
		}()
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}
}
