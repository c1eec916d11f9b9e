package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"tapebot/internal/config"
	"tapebot/internal/constants"
	fxmodules "tapebot/internal/fx"
	"tapebot/internal/middleware"
	"tapebot/internal/server"
	"tapebot/internal/service"
)

func main() {
	root := &cobra.Command{
		Use:   "tapebot",
		Short: "Daily fighter scraper and game state API",
	}

	root.AddCommand(&cobra.Command{
		Use:   "scrape",
		Short: "Run the scrape pipeline once: refresh rankings, rotate the daily fighter, save",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape()
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the game state and run history over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runScrape executes one pipeline pass and exits. Per-item scrape
// failures never fail the command; the pipeline absorbs them and saves
// whatever state it reached.
func runScrape() error {
	app := fx.New(
		fxmodules.Module,
		fx.Invoke(func(lc fx.Lifecycle, pipeline *service.Pipeline, db *sql.DB, shutdowner fx.Shutdowner, logger zerolog.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					go func() {
						if err := pipeline.Run(context.Background()); err != nil {
							logger.Error().Err(err).Msg("scrape run finished with errors")
						}
						if err := shutdowner.Shutdown(); err != nil {
							logger.Warn().Err(err).Msg("shutdown failed")
						}
					}()
					return nil
				},
				OnStop: func(ctx context.Context) error {
					return db.Close()
				},
			})
		}),
	)

	app.Run()
	return nil
}

func runServe() error {
	app := fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	)
	app.Run()
	return nil
}

func runServer(
	lc fx.Lifecycle,
	gameServer *server.GameServer,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	mux := http.NewServeMux()
	gameServer.Register(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	handler := middleware.RequestID(logger)(c.Handler(mux))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: handler,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
