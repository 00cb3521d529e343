package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Recommend  RecommendConfig
	Scoring    ScoringConfig
	Gemini     GeminiConfig
	Mapbox     MapboxConfig
	Auth       AuthConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes precedence
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// RecommendConfig holds recommendation pipeline limits
type RecommendConfig struct {
	PerCategoryLimit int // venues fetched per place-type category
	MaxResults       int // ranked venues returned to the client
}

// ScoringConfig is the weight table for the final score. The defaults
// sum to 1.0 in the best case; they are deliberate design constants,
// not learned values.
type ScoringConfig struct {
	WeightRating         float64
	WeightTravel         float64
	WeightAffinity       float64
	WeightCrowd          float64
	MaxAcceptableMinutes int
}

// GeminiConfig holds the text-completion service configuration
type GeminiConfig struct {
	APIKey          string
	APIBase         string
	Model           string
	Temperature     float64
	TopP            float64
	MaxOutputTokens int
	Timeout         int // seconds
	Enabled         bool
}

// MapboxConfig holds the venue-source configuration
type MapboxConfig struct {
	Token      string
	SearchBase string
	RoutesBase string
	Timeout    int // seconds
	Enabled    bool
}

// AuthConfig holds JWT settings
type AuthConfig struct {
	JWTSecret    string
	TokenTTLMins int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "placepilot"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Recommend: RecommendConfig{
			PerCategoryLimit: getEnvAsInt("RECOMMEND_PER_CATEGORY_LIMIT", 10),
			MaxResults:       getEnvAsInt("RECOMMEND_MAX_RESULTS", 10),
		},
		Scoring: ScoringConfig{
			WeightRating:         getEnvAsFloat("SCORE_WEIGHT_RATING", 0.4),
			WeightTravel:         getEnvAsFloat("SCORE_WEIGHT_TRAVEL", 0.3),
			WeightAffinity:       getEnvAsFloat("SCORE_WEIGHT_AFFINITY", 0.1),
			WeightCrowd:          getEnvAsFloat("SCORE_WEIGHT_CROWD", 0.2),
			MaxAcceptableMinutes: getEnvAsInt("SCORE_MAX_ACCEPTABLE_MINUTES", 30),
		},
		Gemini: GeminiConfig{
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			APIBase:         getEnv("GEMINI_API_BASE", "https://generativelanguage.googleapis.com/v1beta"),
			Model:           getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature:     getEnvAsFloat("GEMINI_TEMPERATURE", 0.2),
			TopP:            getEnvAsFloat("GEMINI_TOP_P", 0.9),
			MaxOutputTokens: getEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", 512),
			Timeout:         getEnvAsInt("GEMINI_TIMEOUT", 30),
			Enabled:         getEnv("GEMINI_API_KEY", "") != "",
		},
		Mapbox: MapboxConfig{
			Token:      getEnv("MAPBOX_TOKEN", ""),
			SearchBase: getEnv("MAPBOX_SEARCH_BASE", "https://api.mapbox.com/search/v1"),
			RoutesBase: getEnv("MAPBOX_ROUTES_BASE", "https://api.mapbox.com/directions/v5/mapbox/driving-traffic"),
			Timeout:    getEnvAsInt("MAPBOX_TIMEOUT", 5),
			Enabled:    getEnv("MAPBOX_TOKEN", "") != "",
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", "change-me-in-production"),
			TokenTTLMins: getEnvAsInt("JWT_TTL_MINUTES", 30),
		},
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
