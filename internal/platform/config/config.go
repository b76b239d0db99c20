package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	// DefaultActor is the operator name recorded in audit entries when the
	// presentation layer does not supply one.
	DefaultActor string
	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit       string
	TrustedProxies  []string
	FrontendBaseURL string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DEFAULT_ACTOR", "Operador")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("TRUSTED_PROXIES", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.DefaultActor = viper.GetString("DEFAULT_ACTOR")
	if cfg.DefaultActor == "" {
		cfg.DefaultActor = "Operador"
		log.Println("Warning: DEFAULT_ACTOR environment variable not set. Using the default operator name.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	if proxies := viper.GetString("TRUSTED_PROXIES"); proxies != "" {
		cfg.TrustedProxies = viper.GetStringSlice("TRUSTED_PROXIES")
	}

	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	return cfg, nil
}
