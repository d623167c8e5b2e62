package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL string `mapstructure:"database_url"`
	RedisURL    string `mapstructure:"redis_url"`
	Port        string `mapstructure:"port"`

	// Access tokens
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`

	// When true, only existing members of an organisation may add
	// new members to it. Off by default; recommended on.
	RequireMemberToAdd bool `mapstructure:"require_member_to_add"`

	// User record cache TTL (requires redis_url)
	UserCacheTTL time.Duration `mapstructure:"user_cache_ttl"`
}

// App holds the global config instance
var App Config

// LoadConfig loads configuration from file and environment variables
func LoadConfig(path string) error {
	// Auto-load .env file if present so 'go run' works without
	// manually exporting env vars. Missing .env is fine.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	v := viper.New()

	// Set default values
	v.SetDefault("port", "8080")
	v.SetDefault("token_expiry", 24*time.Hour)
	v.SetDefault("user_cache_ttl", 5*time.Minute)
	v.SetDefault("require_member_to_add", false)

	// Config file settings
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.SetConfigName("dev.config")
		v.SetConfigType("yaml")
	}

	// Environment variable settings
	v.SetEnvPrefix("ORGDIR")

	// Bind standard environment variables (Docker/deploy compatibility)
	// so deployments can use DATABASE_URL instead of ORGDIR_DATABASE_URL.
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_url", "REDIS_URL")
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("token_expiry", "TOKEN_EXPIRY")
	_ = v.BindEnv("require_member_to_add", "REQUIRE_MEMBER_TO_ADD")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found, using defaults and environment variables")
		} else {
			return err
		}
	} else {
		log.Printf("Loaded config from: %s", v.ConfigFileUsed())
	}

	return v.Unmarshal(&App)
}
