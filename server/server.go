package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chinook/cache"
	"chinook/config"
	"chinook/db"
	"chinook/logger"
	"chinook/metrics"
	"chinook/repository"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// NewRouter wires every API route to h. Request ids, access logging and CORS
// wrap the router itself so unmatched requests get them too; mux middleware
// only runs for matched routes.
func NewRouter(h *APIHandler) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = metrics.InstrumentHandler(http.HandlerFunc(notFoundHandler))
	router.MethodNotAllowedHandler = metrics.InstrumentHandler(http.HandlerFunc(methodNotAllowedHandler))

	router.Use(metrics.InstrumentHandler)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/genres", h.GetGenresHandler).Methods(http.MethodGet)
	api.HandleFunc("/genres", h.CreateGenreHandler).Methods(http.MethodPost)
	api.HandleFunc("/genres/{id:[0-9]+}", h.GetGenreHandler).Methods(http.MethodGet)
	api.HandleFunc("/genres/{id:[0-9]+}", h.UpdateGenreHandler).Methods(http.MethodPatch)

	api.HandleFunc("/artists/{id:[0-9]+}", h.GetArtistHandler).Methods(http.MethodGet)
	api.HandleFunc("/albums/{id:[0-9]+}", h.GetAlbumHandler).Methods(http.MethodGet)
	api.HandleFunc("/tracks/{id:[0-9]+}", h.GetTrackHandler).Methods(http.MethodGet)

	api.HandleFunc("/playlists", h.GetPlaylistsHandler).Methods(http.MethodGet)
	api.HandleFunc("/playlists/{id:[0-9]+}", h.GetPlaylistHandler).Methods(http.MethodGet)
	api.HandleFunc("/playlists/{id:[0-9]+}", h.DeletePlaylistHandler).Methods(http.MethodDelete)
	api.HandleFunc("/playlists/{id:[0-9]+}/tracks", h.AddPlaylistTrackHandler).Methods(http.MethodPost)
	api.HandleFunc("/playlists/{id:[0-9]+}/tracks/{trackId:[0-9]+}", h.RemovePlaylistTrackHandler).Methods(http.MethodDelete)

	router.HandleFunc("/healthz", h.HealthHandler).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return requestIDMiddleware(accessLogMiddleware(corsMiddleware(router)))
}

// NewAPIHandlerFromDB builds the gorm repositories over gdb. A non-nil
// genre cache store puts the read-through cache in front of genres.
func NewAPIHandlerFromDB(gdb *gorm.DB, genreStore cache.Store, cacheTTL time.Duration) *APIHandler {
	var genreRepo repository.GenreRepository = repository.NewGormGenreRepository(gdb)
	if genreStore != nil {
		genreRepo = cache.NewGenreRepository(genreRepo, genreStore, cacheTTL)
	}

	return NewAPIHandler(
		genreRepo,
		repository.NewGormArtistRepository(gdb),
		repository.NewGormAlbumRepository(gdb),
		repository.NewGormPlaylistRepository(gdb),
		repository.NewGormTrackRepository(gdb),
		func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	)
}

// Start connects to the configured stores, serves the API and blocks until
// SIGINT or SIGTERM, then shuts down gracefully.
func Start(cfg *config.Config) error {
	gdb, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Warn("Failed to close database", logger.ErrorField(err))
		}
	}()

	if cfg.DBAutoMigrate {
		if err := db.AutoMigrate(gdb); err != nil {
			return err
		}
	}

	var genreStore cache.Store
	if cfg.RedisEnabled {
		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		genreStore = cache.NewRedisStore(client)
		logger.Info("Genre cache enabled",
			logger.String("redis", client.Options().Addr),
			logger.Duration("ttl", cfg.CacheTTL))
	}

	handler := NewAPIHandlerFromDB(gdb, genreStore, cfg.CacheTTL)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      NewRouter(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		err := config.WatchEnvFile(ctx, cfg.EnvFile, func(level string) {
			if level == logger.Level() {
				return
			}
			if logger.SetLevel(level) {
				logger.Info("Log level changed", logger.String("level", level))
			} else {
				logger.Warn("Ignoring unknown log level", logger.String("level", level))
			}
		})
		if err != nil {
			logger.Warn("Env file watcher stopped", logger.ErrorField(err))
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
