package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frontend_go/internal/api"
	"frontend_go/internal/config"
	"frontend_go/internal/httpserver"
	"frontend_go/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Backend API client
	backend := api.New(cfg.APIBaseURL, time.Duration(cfg.RequestTimeoutSeconds)*time.Second)

	// Session: persisted token store plus the process-wide manager
	store, err := session.NewTokenStore(cfg.TokenFile, cfg.SessionKey)
	if err != nil {
		log.Fatalf("failed to open token store: %v", err)
	}
	sessions := session.NewManager(store, backend)

	// Resolve any persisted session in the background; the route guard shows
	// a holding page until this settles.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		sessions.Start(ctx)
	}()

	// Build HTTP router
	router, err := httpserver.NewRouter(cfg, backend, sessions)
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("Starting %s on http://%s (backend %s)\n", cfg.AppName, cfg.HTTPAddr(), cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
