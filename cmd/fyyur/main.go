package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/catalog"
	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
	"github.com/JonasLeetTheWay/fyyur-go/internal/flash"
	"github.com/JonasLeetTheWay/fyyur-go/internal/redis"
	"github.com/JonasLeetTheWay/fyyur-go/internal/render"
	"github.com/JonasLeetTheWay/fyyur-go/internal/services/web"
	assets "github.com/JonasLeetTheWay/fyyur-go/web"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Mirror logs to LOG_FILE when set
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal("Failed to open log file:", err)
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
		gin.DefaultWriter = io.MultiWriter(os.Stdout, f)
		gin.DefaultErrorWriter = io.MultiWriter(os.Stderr, f)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// The forms offer the reference states and genres
	if err := database.SeedReferenceData(db); err != nil {
		log.Fatal("Failed to seed reference data:", err)
	}

	// Pick the flash backend
	var flashes flash.Store = flash.NewCookieStore(cfg.FlashTTL)
	if cfg.RedisEnabled() {
		redisClient := redis.NewClient(cfg)
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		flashes = flash.NewRedisStore(redisClient, cfg.FlashTTL)
		log.Printf("Flash notices stored in Redis at %s", cfg.RedisAddr())
	}

	templates, err := render.New(assets.Templates())
	if err != nil {
		log.Fatal("Failed to load templates:", err)
	}

	// Create service
	webService := web.NewService(catalog.NewService(db), flashes, assets.Static())

	// Setup Gin router
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger(), web.RequestID(), webService.Recovery())
	r.HTMLRender = templates

	// Setup routes
	webService.SetupRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Fyyur starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Fatal("Failed to start Fyyur:", err)
	case <-stop:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
