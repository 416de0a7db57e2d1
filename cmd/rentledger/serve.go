package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"rentledger/internal/caching"
	"rentledger/internal/config"
	"rentledger/internal/documents"
	"rentledger/internal/handlers"
	"rentledger/internal/jobs/background"
	"rentledger/internal/metrics"
	"rentledger/internal/middleware"
	"rentledger/internal/store"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the localhost API the UI connects to",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			gw, err := openGateway(cmd, cfg)
			if err != nil {
				return err
			}
			defer gw.Close()

			st := store.New(gw, logger)
			if err := st.Init(cmd.Context()); err != nil {
				return err
			}
			history := store.NewHistory(st, cfg.Server.UndoDepth)

			var cache caching.CacheService
			if cfg.Redis.Addr != "" {
				cache = caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
			} else {
				cache = caching.NewMemoryCacheService()
			}
			metricsSvc := metrics.NewService(st, cache, logger)

			blobs, err := openBlobStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			secret := cfg.Server.JWTSecret
			if secret == "" {
				if secret, err = middleware.NewSecret(); err != nil {
					return err
				}
			}
			token, err := middleware.MintToken(secret, time.Duration(cfg.Server.TokenTTLHours)*time.Hour)
			if err != nil {
				return err
			}
			if cfg.Server.TokenFile != "" {
				if err := os.WriteFile(cfg.Server.TokenFile, []byte(token), 0o600); err != nil {
					return err
				}
				logger.Info().Str("path", cfg.Server.TokenFile).Msg("api token written")
			} else {
				logger.Info().Str("token", token).Msg("api token")
			}

			if cfg.Sweep.RunOnStartup {
				if _, err := st.RunMonthlySweep(cmd.Context(), time.Now()); err != nil {
					logger.Error().Err(err).Msg("startup sweep failed")
				}
			}

			scheduler, err := background.NewJobScheduler(st, metricsSvc, time.Duration(cfg.Sweep.IntervalMinutes)*time.Minute, logger)
			if err != nil {
				return err
			}
			scheduler.Start()
			defer scheduler.Stop()

			e := echo.New()
			e.HideBanner = true
			e.Use(echoMiddleware.Recover())
			e.Use(echoMiddleware.RequestID())
			handlers.Register(e, handlers.Deps{
				Store:       st,
				History:     history,
				Metrics:     metricsSvc,
				Blobs:       blobs,
				Logger:      logger,
				TokenSecret: secret,
			})

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", cfg.Server.Addr).Msg("listening")
				errCh <- e.Start(cfg.Server.Addr)
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-stop:
				logger.Info().Msg("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := e.Shutdown(shutdownCtx); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func openBlobStore(ctx context.Context, cfg *config.Config) (documents.BlobStore, error) {
	if cfg.Documents.MinioEndpoint != "" {
		blobs, err := documents.NewMinioBlobStore(
			cfg.Documents.MinioEndpoint,
			cfg.Documents.MinioAccess,
			cfg.Documents.MinioSecret,
			cfg.Documents.MinioBucket,
			cfg.Documents.MinioUseSSL,
		)
		if err != nil {
			return nil, err
		}
		if err := blobs.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return blobs, nil
	}
	return documents.NewFSBlobStore(cfg.Documents.Dir)
}
