package main

import (
	"log"
	"os"

	"github.com/peoplehq/orgdir/db"
	"github.com/peoplehq/orgdir/internal/config"
	"github.com/peoplehq/orgdir/router"
)

func main() {
	log.Println("Starting orgdir API server...")

	// Load Config
	configPath := os.Getenv("ORGDIR_CONFIG_PATH")

	if err := config.LoadConfig(configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if config.App.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable (or config) is required")
	}
	if config.App.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable (or config) is required")
	}

	pg, err := db.ConnectPostgres(config.App.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pg.Close()
	log.Println("Connected to database successfully")

	rdb := db.ConnectRedis(config.App.RedisURL)
	if rdb != nil {
		defer rdb.Close()
		log.Println("Redis cache enabled")
	}

	r := router.NewGinRouter(pg, rdb)

	addr := ":" + config.App.Port
	log.Printf("Listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
