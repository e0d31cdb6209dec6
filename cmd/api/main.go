package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "vetclinic-admin/internal/adapters/storage/postgres"
	"vetclinic-admin/internal/config"
	"vetclinic-admin/internal/platform/logger"
	"vetclinic-admin/internal/platform/token"
	"vetclinic-admin/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.NewFromEnv()
		l.Fatal().Err(err).Msg("configuración inválida")
	}

	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		App:    cfg.Log.App,
	})

	opts := router.Options{
		Auth:   cfg.Auth,
		Logger: log,
	}

	if cfg.DB.DSN != "" {
		db, err := pg.Open(cfg.DB.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("no se pudo conectar a postgres")
		}
		defer db.Close()
		opts.DB = db
		log.Info().Msg("storage: postgres")
	} else {
		log.Warn().Msg("DB_DSN vacío, storage in-memory (solo dev)")
	}

	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	opts.Tokens = tokens
	opts.AuthVerifier = tokens

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("servidor escuchando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("el servidor se detuvo con error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("apagando el servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado forzado")
	}
}
