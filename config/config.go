package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Public base URL of this server, used to build payment return URLs.
	SiteBaseURL string `mapstructure:"SITE_BASE_URL"`

	// Remote capability API (edge functions).
	BackendURL     string `mapstructure:"BACKEND_URL"`
	BackendAnonKey string `mapstructure:"BACKEND_ANON_KEY"`

	// Payment behaviour.
	DefaultConsultationFee int  `mapstructure:"DEFAULT_CONSULTATION_FEE"`
	PaymentDemoMode        bool `mapstructure:"PAYMENT_DEMO_MODE"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisChatDB   int    `mapstructure:"REDIS_CHAT_DB"`

	// Gemini API key for the chat assistant.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Sentry DSN; error tracking is disabled when empty.
	SentryDSN string `mapstructure:"SENTRY_DSN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("SITE_BASE_URL", "http://localhost:8080")
	viper.SetDefault("BACKEND_URL", "http://localhost:54321/functions/v1")
	viper.SetDefault("BACKEND_ANON_KEY", "")
	viper.SetDefault("DEFAULT_CONSULTATION_FEE", 2000)
	viper.SetDefault("PAYMENT_DEMO_MODE", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_CHAT_DB", 2)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("SENTRY_DSN", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// DemoPaymentsAllowed reports whether the simulated payment path may be used.
// The demo path is never reachable in production regardless of configuration.
func DemoPaymentsAllowed() bool {
	return AppConfig.PaymentDemoMode && !IsProduction()
}
