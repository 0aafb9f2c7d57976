package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/happychat/chat-service/internal/auth"
	"github.com/happychat/chat-service/internal/config"
	"github.com/happychat/chat-service/internal/db"
	chatHttp "github.com/happychat/chat-service/internal/handler/http"
	"github.com/happychat/chat-service/internal/user"
	"github.com/happychat/chat-service/internal/ws"
)

func main() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	log.Info().Msg("Starting chat-service...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	pg, err := db.New(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := pg.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	userRepository := user.NewRepository(pg.Pool)
	hasher := auth.NewHasher(config.BcryptCost)
	tokenIssuer := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	userService := user.NewService(userRepository, hasher)
	authService := auth.NewService(userRepository, hasher, tokenIssuer)

	userHandler := chatHttp.NewUserHandler(userService)
	authHandler := chatHttp.NewAuthHandler(authService)

	hub := ws.NewHub()
	go hub.Run()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	router.Route("/api/v1", func(r chi.Router) {
		userHandler.RegisterRoutes(r)
		authHandler.RegisterRoutes(r)
	})
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("port", cfg.App.Port).Msg("Could not listen")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	pg.Close()

	log.Info().Msg("Chat-service stopped gracefully.")
}
