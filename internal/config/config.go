package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Pipeline ingestion
	PipelineAPIKey string

	// Sync
	SMSSender        string
	SMSSource        string
	SMSPath          string
	SyncFetchTimeout time.Duration
	SyncInterval     time.Duration
	Location         *time.Location

	// AMQP alert publishing; disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

var appConfig *Config

func defaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("env", "development")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "momopress.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "momopress")
	v.SetDefault("db.password", "momopress")
	v.SetDefault("db.name", "momopress")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("jwt.secret", "fallback-secret-key-for-dev-only")
	v.SetDefault("jwt.expiry", "24h")

	v.SetDefault("pipeline.api_key", "")

	v.SetDefault("sms.sender", "M-Money")
	v.SetDefault("sms.source", "inbox")
	v.SetDefault("sms.path", "")
	v.SetDefault("sync.fetch_timeout", "30s")
	v.SetDefault("sync.interval", "0s")
	v.SetDefault("timezone", "Africa/Kigali")

	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "momopress")
	v.SetDefault("amqp.queue", "budget_alerts")
}

// Load loads configuration from .env, an optional momopress.toml and the environment.
// Environment keys are the config keys upper-cased with dots replaced by
// underscores, e.g. SYNC_FETCH_TIMEOUT.
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	v := viper.New()
	defaults(v)

	v.SetConfigName("momopress")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// the config file is optional
	_ = v.ReadInConfig()

	config := &Config{
		Port: v.GetString("server.port"),
		Env:  v.GetString("env"),

		DBDriver:   v.GetString("db.driver"),
		DBPath:     v.GetString("db.path"),
		DBHost:     v.GetString("db.host"),
		DBPort:     v.GetString("db.port"),
		DBUser:     v.GetString("db.user"),
		DBPassword: v.GetString("db.password"),
		DBName:     v.GetString("db.name"),
		DBSSLMode:  v.GetString("db.sslmode"),

		JWTSecret:      v.GetString("jwt.secret"),
		PipelineAPIKey: v.GetString("pipeline.api_key"),
		SMSSender:      v.GetString("sms.sender"),
		SMSSource:      v.GetString("sms.source"),
		SMSPath:        v.GetString("sms.path"),

		AMQPURL:      v.GetString("amqp.url"),
		AMQPExchange: v.GetString("amqp.exchange"),
		AMQPQueue:    v.GetString("amqp.queue"),
	}

	config.JWTExpirationDur = parseDuration(v, "jwt.expiry", 24*time.Hour)
	config.SyncFetchTimeout = parseDuration(v, "sync.fetch_timeout", 30*time.Second)
	config.SyncInterval = parseDuration(v, "sync.interval", 0)

	tz := v.GetString("timezone")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: invalid TIMEZONE value '%s', falling back to UTC\n", tz)
		loc = time.UTC
	}
	config.Location = loc

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// parseDuration reads a duration key, falling back when the value does not parse.
func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, fallback)
		return fallback
	}
	return d
}
