package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/actionserver"
	httpAdapter "github.com/aretw0/actionserver/pkg/adapters/http"
)

func newRunCmd(flags *serverFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the webhook server",
		Long:  `Loads the actions package and serves /health, /actions, /webhook and /metrics over HTTP(S).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			eng, logger, err := newEngine(cfg)
			if err != nil {
				return err
			}

			runner := actionserver.NewRunner(eng.HTTPHandler(httpAdapter.WithCORS(cfg.CORS...)))
			runner.Logger = logger
			runner.CertFile = cfg.SSLCertificate
			runner.KeyFile = cfg.SSLKeyfile
			runner.KeyPassword = cfg.SSLPassword
			runner.ShutdownTimeout = cfg.ShutdownTimeout

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("Starting action server", "version", actionserver.Version, "port", cfg.Port, "actions", eng.Registry().Len())
			return runner.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Port))
		},
	}
}
