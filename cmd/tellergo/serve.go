package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hmbarra/tellergo"
)

func newServeCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bank HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

			var cfg tellergo.Config
			cfgfl, err := os.Open(cfgPath)
			if err != nil {
				logger.Fatal().Err(err).Msg("error opening config file")
			}
			if err = yaml.NewDecoder(cfgfl).Decode(&cfg); err != nil {
				logger.Fatal().Err(err).Msg("error decoding config file")
			}
			cfgfl.Close()
			if cfg.ListenAddr == "" {
				cfg.ListenAddr = ":3000"
			}
			acquireTimeout := time.Duration(cfg.Limits.AcquireTimeoutMillis) * time.Millisecond
			if acquireTimeout <= 0 {
				acquireTimeout = 5 * time.Second
			}

			ledger, err := tellergo.NewLedger()
			if err != nil {
				logger.Fatal().Err(err).Msg("error starting ledger")
			}

			var svc tellergo.Service = tellergo.NewService(ledger, &logger)
			svc = tellergo.NewValidationMiddleware(ledger)(svc)
			svc = tellergo.NewLimitMiddleware(tellergo.NewServiceLimits(&cfg), acquireTimeout)(svc)
			svc = tellergo.NewCircuitBreakMiddleware(tellergo.NewServiceBreaker(&cfg))(svc)
			svc = tellergo.NewMetricsMiddleware()(svc)
			hndlr := tellergo.NewHTTPHandler(svc, &logger)

			logger.Info().Str("addr", cfg.ListenAddr).Msg("listening")
			return http.ListenAndServe(cfg.ListenAddr, hndlr)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "config.yml", "path to configuration file")
	return cmd
}
