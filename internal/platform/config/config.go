package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	RedisURL     string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Cache freshness window for aggregated balance maps. List views
	// refresh only through invalidation, so this is the worst-case
	// staleness after a missed push event.
	BalanceCacheTTL time.Duration

	// Push channel reconnect policy.
	PushReconnectDelay time.Duration
	PushMaxReconnects  int

	// Per-IP request budget for the /api group. Login carries its own,
	// much tighter fixed limit.
	APIRatePerMinute int64

	// Optional PostHog project key; telemetry is disabled when empty.
	PosthogAPIKey  string
	PosthogHost    string
	FrontendOrigin string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "rodmar-backend")
	viper.SetDefault("BALANCE_CACHE_TTL", "5m")
	viper.SetDefault("PUSH_RECONNECT_DELAY", "3s")
	viper.SetDefault("PUSH_MAX_RECONNECTS", 10)
	viper.SetDefault("API_RATE_PER_MINUTE", 300)
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_HOST", "https://us.i.posthog.com")
	viper.SetDefault("FRONTEND_ORIGIN", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Falling back to in-process cache; push events disabled.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	balanceTTLStr := viper.GetString("BALANCE_CACHE_TTL")
	balanceTTL, err := time.ParseDuration(balanceTTLStr)
	if err != nil {
		balanceTTL = 5 * time.Minute
		log.Printf("Warning: Invalid value for BALANCE_CACHE_TTL ('%s'). Defaulting to %s.\n", balanceTTLStr, balanceTTL)
	}
	cfg.BalanceCacheTTL = balanceTTL

	reconnectStr := viper.GetString("PUSH_RECONNECT_DELAY")
	reconnectDelay, err := time.ParseDuration(reconnectStr)
	if err != nil {
		reconnectDelay = 3 * time.Second
		log.Printf("Warning: Invalid value for PUSH_RECONNECT_DELAY ('%s'). Defaulting to %s.\n", reconnectStr, reconnectDelay)
	}
	cfg.PushReconnectDelay = reconnectDelay
	cfg.PushMaxReconnects = viper.GetInt("PUSH_MAX_RECONNECTS")

	cfg.APIRatePerMinute = viper.GetInt64("API_RATE_PER_MINUTE")
	if cfg.APIRatePerMinute <= 0 {
		log.Println("Warning: Invalid value for API_RATE_PER_MINUTE. Defaulting to 300.")
		cfg.APIRatePerMinute = 300
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogHost = viper.GetString("POSTHOG_HOST")
	cfg.FrontendOrigin = viper.GetString("FRONTEND_ORIGIN")

	return cfg, nil
}
