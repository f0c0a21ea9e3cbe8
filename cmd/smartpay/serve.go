package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"smartpay/backend/api"
	"smartpay/backend/config"
	"smartpay/backend/handlers"
	"smartpay/backend/middleware"
	"smartpay/backend/services"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Start the HTTP API and the static frontend.

Without a reachable database the server still starts: list views are empty and
every write answers 503.`,
		RunE: runServe,
	}
	cmd.Flags().String("port", "", "listen port (overrides server.port)")
	_ = v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a := newApp(cfg, logger)
	defer a.Close()

	rs, err := a.recordStore(ctx)
	if err != nil {
		return err
	}

	tokens := a.tokenIssuer()
	verifier, err := a.verifier(ctx, tokens)
	if err != nil {
		return fmt.Errorf("failed to initialize authentication: %w", err)
	}

	policy, err := services.NewPolicy(cfg.Auth, rs, logger)
	if err != nil {
		return err
	}

	h := handlers.New(handlers.Deps{
		Payments:  services.NewPaymentService(rs, logger),
		Residents: services.NewResidentService(rs, tokens, logger),
		Dues:      services.NewDuesService(rs, logger),
		Filters:   services.NewFilterService(rs, policy),
		Policy:    policy,
		Logger:    logger,
	})

	opts := api.Options{
		Handler:     h,
		Auth:        middleware.NewAuth(verifier, a.devIdentity(), logger),
		Policy:      policy,
		CORSOrigins: cfg.CORS.AllowedOrigins,
		StaticDir:   cfg.Server.StaticDir,
		Logger:      logger,
	}
	if cfg.Storage.Backend == config.StorageLocal {
		opts.ProofDir = cfg.Storage.LocalDir
	}

	srv := &http.Server{
		Handler:      api.NewServer(opts).Handler(),
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("auth", cfg.Auth.Provider))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
