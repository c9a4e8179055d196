package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seller-service/internal/api/router"
	"seller-service/internal/config"
	"seller-service/internal/infrastructure/cache"
	"seller-service/internal/infrastructure/database"
	"seller-service/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	port string
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long: `Start the seller service HTTP API with the configured routes
and middleware. The server connects to PostgreSQL and Redis on startup
and shuts down gracefully on SIGINT/SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Flags for server command
	serverCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port for the server to listen on")
}

func startServer() {
	cfg := config.Get()

	// Override port if flag is provided
	if port != "8080" {
		cfg.Server.Port = port
	}

	db, err := database.NewConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.Username,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	cacheService := cache.NewRedisCache(
		fmt.Sprintf("%s:%d", cfg.Cache.Host, cfg.Cache.Port),
		cfg.Cache.Password,
		cfg.Cache.DB,
	)
	defer cacheService.Close()

	// Create router
	r := router.NewRouter(db, cacheService, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.Server.Port,
		Handler:        r,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Give server 5 seconds to finish current requests
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
