package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"aura-assistant/internal/infra/api"
	"aura-assistant/internal/infra/api/apiv1"
	red "aura-assistant/internal/infra/redis"
)

func newServeCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the chat web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := buildApplication(ctx, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			var limiter api.Limiter
			if app.limiter != nil {
				limiter = app.limiter
			}
			v1 := apiv1.NewServer(app.chat, app.sessions, app.log)
			srv := api.NewServer(app.cfg.HTTP, v1, app.sessions, limiter, red.ClientKey, app.log)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			app.log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				app.log.Error().Err(err).Msg("http shutdown")
			}
			return <-errCh
		},
	}
}
