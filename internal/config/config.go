package config

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	LogLevel  string
	SentryDSN string

	// Remote storage (S3-compatible). Presence of S3AccessKey selects the remote backend.
	S3Provider   string // "s3" (aws-sdk) or "minio"
	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3Endpoint   string // Optional for AWS, required for MinIO
	S3UseSSL     bool
	S3PublicURL  string // Optional: CDN or bucket URL used for file URLs
	S3PresignTTL time.Duration

	// Local storage (used when no remote credential is configured)
	LocalStoragePath string

	// Weather widget
	WeatherAPIKey   string
	WeatherAPIURL   string
	WeatherCacheTTL time.Duration

	// Cache (optional, in-process cache when empty)
	RedisURL string

	// Set when JWT_SECRET was missing and a random one was generated
	jwtSecretGenerated bool
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Deskboard"),
		AppEnv:  envString("APP_ENV", "development"),
		AppURL:  envString("APP_URL", "http://localhost:8090"),
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/deskboard.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envString("JWT_SECRET", ""),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		// Email (RESEND_API_KEY optional, emails are logged when missing)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		LogLevel:  envString("LOG_LEVEL", ""),
		SentryDSN: envString("SENTRY_DSN", ""),

		// Remote storage
		S3Provider:   envString("S3_PROVIDER", "s3"),
		S3Region:     envString("S3_REGION", "us-east-1"),
		S3Bucket:     envString("S3_BUCKET", "deskboard"),
		S3AccessKey:  envString("S3_ACCESS_KEY", ""),
		S3SecretKey:  envString("S3_SECRET_KEY", ""),
		S3Endpoint:   envString("S3_ENDPOINT", ""),
		S3UseSSL:     envBool("S3_USE_SSL", true),
		S3PublicURL:  envString("S3_PUBLIC_URL", ""),
		S3PresignTTL: envDuration("S3_PRESIGN_TTL", 1*time.Hour),

		// Local storage
		LocalStoragePath: envString("LOCAL_STORAGE_PATH", "./data/uploads"),

		// Weather
		WeatherAPIKey:   envString("WEATHER_API_KEY", ""),
		WeatherAPIURL:   envString("WEATHER_API_URL", "https://api.openweathermap.org"),
		WeatherCacheTTL: envDuration("WEATHER_CACHE_TTL", 300*time.Second),

		// Cache
		RedisURL: envString("REDIS_URL", ""),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = randomSecret()
		cfg.jwtSecretGenerated = true
		slog.Warn("JWT_SECRET not set, generated a random secret (sessions reset on restart)")
	}

	return cfg
}

// validateProduction ensures secrets that cannot be generated are configured for production.
func validateProduction(cfg *Config) {
	if cfg.JWTSecret == "" {
		slog.Error("production deployment requires JWT_SECRET",
			"hint", "set APP_ENV=development for local testing with a generated secret")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func randomSecret() string {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic("failed to generate jwt secret: " + err.Error())
	}
	return hex.EncodeToString(b)
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// HasRemoteStorage reports whether a remote storage credential is configured.
func (c *Config) HasRemoteStorage() bool {
	return c.S3AccessKey != ""
}

// HasSessionSecret reports whether JWT_SECRET came from the environment.
func (c *Config) HasSessionSecret() bool {
	return c.JWTSecret != "" && !c.jwtSecretGenerated
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets, credentials, and sensitive data are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:    c.AppName,
		AppEnv:     c.AppEnv,
		AppURL:     c.AppURL,
		Port:       c.Port,
		DBDriver:   c.DBDriver,
		EmailFrom:  c.EmailFrom,
		S3Provider: c.S3Provider,
		S3Bucket:   c.S3Bucket,
		S3Endpoint: c.S3Endpoint,
	}
}
