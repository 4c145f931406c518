package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"vulnguard/config"
	"vulnguard/database"
	"vulnguard/engine"
	"vulnguard/router"
	"vulnguard/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get executable directory for config path
	execPath, err := os.Executable()
	if err != nil {
		log.Fatalf("Failed to get executable path: %v", err)
	}
	execDir := filepath.Dir(execPath)

	// Load configuration
	configPath := filepath.Join(execDir, "..", "config", "config.yaml")
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	// If config not found, try current directory
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = "config/config.yaml"
	}
	cfg := config.LoadConfig(configPath)

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize MongoDB
	database.InitMongoDB(&cfg.MongoDB)
	defer database.CloseMongoDB()

	// Initialize Redis
	database.InitRedis(&cfg.Redis)
	defer database.CloseRedis()

	// Initialize default admin user
	userService := service.NewUserService()
	if err := userService.InitAdmin(); err != nil {
		log.Printf("Warning: Failed to initialize admin user: %v", err)
	}

	// Load reference data: compliance catalogs, mapping tables and
	// scoring weights. An empty directory setting means built-in
	// defaults; a broken file in the directory is fatal at startup
	// (reloads at runtime are non-fatal and keep the old snapshot).
	refData := engine.DefaultRefData()
	if cfg.RefData.Dir != "" {
		loaded, err := engine.LoadRefDataDir(cfg.RefData.Dir)
		if err != nil {
			log.Fatalf("Failed to load reference data from %s: %v", cfg.RefData.Dir, err)
		}
		refData = loaded
		log.Printf("Reference data loaded from %s", cfg.RefData.Dir)
	}
	eng := engine.New(refData)

	// Setup router
	r := router.SetupRouter(eng)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)

	go func() {
		if err := r.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
