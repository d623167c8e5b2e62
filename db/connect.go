package db

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
)

// ConnectPostgres opens and pings a Postgres connection.
func ConnectPostgres(databaseURL string) (*sql.DB, error) {
	pg, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := pg.Ping(); err != nil {
		pg.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set timezone to UTC for consistent time handling
	if _, err := pg.Exec("SET TIME ZONE 'UTC'"); err != nil {
		log.Printf("Failed to set timezone to UTC: %v", err)
	}

	return pg, nil
}

// ConnectRedis returns a Redis client, or nil when no URL is configured.
// Services treat a nil client as "cache disabled".
func ConnectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Warning: invalid REDIS_URL, running without cache: %v", err)
		return nil
	}

	return redis.NewClient(opts)
}
