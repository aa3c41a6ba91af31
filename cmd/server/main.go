// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medolina/medolina-backend/internal/catalog"
	"github.com/medolina/medolina-backend/internal/config"
	"github.com/medolina/medolina-backend/internal/i18n"
	"github.com/medolina/medolina-backend/internal/router"
	"github.com/medolina/medolina-backend/internal/store"
	"github.com/medolina/medolina-backend/internal/userstore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Load the product catalog
	repo, err := catalog.NewRepositoryFromFile(cfg.Catalog.Path)
	if err != nil {
		log.Fatal("Failed to load catalog:", err)
	}

	// Open the flat-file account store
	users, err := userstore.Open(cfg.Users.FilePath)
	if err != nil {
		log.Fatal("Failed to open user store:", err)
	}

	// Cart/favorites persistence backend
	var storage store.Storage
	if cfg.Store.DataDir != "" {
		storage, err = store.NewFileStorage(cfg.Store.DataDir)
		if err != nil {
			log.Fatal("Failed to initialize store backend:", err)
		}
	} else {
		storage = store.NewMemoryStorage()
	}

	// Initialize i18n
	if err := i18n.Initialize(); err != nil {
		log.Fatal("Failed to initialize i18n:", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(router.Deps{Repo: repo, Users: users, Storage: storage}, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
