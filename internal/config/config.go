package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	Extract ExtractConfig
	Ingest  IngestConfig
	GST     GSTConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for uploaded invoice files.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExtractProviderConfig holds settings for a single extraction provider.
type ExtractProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ExtractConfig holds invoice extraction settings with primary/secondary
// provider support.
type ExtractConfig struct {
	Primary   ExtractProviderConfig `mapstructure:"primary"`
	Secondary ExtractProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (e *ExtractConfig) SecondaryConfig() *ExtractProviderConfig {
	if e.Secondary.Provider != "" {
		return &e.Secondary
	}
	return nil
}

// IngestConfig holds batch extraction settings.
type IngestConfig struct {
	MaxAttempts   int `mapstructure:"max_attempts"`
	BaseDelayMS   int `mapstructure:"base_delay_ms"`
	MaxFilesBatch int `mapstructure:"max_files_batch"`
}

// GSTConfig holds tax computation settings.
type GSTConfig struct {
	FallbackRatePercent float64 `mapstructure:"fallback_rate_percent"`
}

// Load reads configuration from environment variables with the LEKHA_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LEKHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	})

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "lekha")
	v.SetDefault("db.password", "lekha_secret")
	v.SetDefault("db.name", "lekha_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "lekha")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "lekha-invoices")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Extraction provider defaults
	v.SetDefault("extract.primary.provider", "claude")
	v.SetDefault("extract.primary.api_key", "")
	v.SetDefault("extract.primary.default_model", "claude-sonnet-4-20250514")
	v.SetDefault("extract.primary.timeout_secs", 120)
	v.SetDefault("extract.secondary.provider", "")
	v.SetDefault("extract.secondary.api_key", "")
	v.SetDefault("extract.secondary.default_model", "")
	v.SetDefault("extract.secondary.timeout_secs", 120)

	// Ingest defaults
	v.SetDefault("ingest.max_attempts", 3)
	v.SetDefault("ingest.base_delay_ms", 1000)
	v.SetDefault("ingest.max_files_batch", 20)

	// GST defaults
	v.SetDefault("gst.fallback_rate_percent", 18)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "LEKHA_SERVER_PORT",
		"server.read_timeout":            "LEKHA_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "LEKHA_SERVER_WRITE_TIMEOUT",
		"server.environment":             "LEKHA_SERVER_ENVIRONMENT",
		"server.allowed_origins":         "LEKHA_SERVER_ALLOWED_ORIGINS",
		"db.host":                        "LEKHA_DB_HOST",
		"db.port":                        "LEKHA_DB_PORT",
		"db.user":                        "LEKHA_DB_USER",
		"db.password":                    "LEKHA_DB_PASSWORD",
		"db.name":                        "LEKHA_DB_NAME",
		"db.sslmode":                     "LEKHA_DB_SSLMODE",
		"db.max_open":                    "LEKHA_DB_MAX_OPEN",
		"db.max_idle":                    "LEKHA_DB_MAX_IDLE",
		"jwt.secret":                     "LEKHA_JWT_SECRET",
		"jwt.access_expiry":              "LEKHA_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":             "LEKHA_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                     "LEKHA_JWT_ISSUER",
		"s3.region":                      "LEKHA_S3_REGION",
		"s3.bucket":                      "LEKHA_S3_BUCKET",
		"s3.endpoint":                    "LEKHA_S3_ENDPOINT",
		"s3.access_key":                  "LEKHA_S3_ACCESS_KEY",
		"s3.secret_key":                  "LEKHA_S3_SECRET_KEY",
		"s3.max_file_size_mb":            "LEKHA_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":              "LEKHA_S3_PRESIGN_EXPIRY",
		"log.level":                      "LEKHA_LOG_LEVEL",
		"log.format":                     "LEKHA_LOG_FORMAT",
		"extract.primary.provider":       "LEKHA_EXTRACT_PRIMARY_PROVIDER",
		"extract.primary.api_key":        "LEKHA_EXTRACT_PRIMARY_API_KEY",
		"extract.primary.default_model":  "LEKHA_EXTRACT_PRIMARY_DEFAULT_MODEL",
		"extract.primary.timeout_secs":   "LEKHA_EXTRACT_PRIMARY_TIMEOUT_SECS",
		"extract.secondary.provider":     "LEKHA_EXTRACT_SECONDARY_PROVIDER",
		"extract.secondary.api_key":      "LEKHA_EXTRACT_SECONDARY_API_KEY",
		"extract.secondary.default_model": "LEKHA_EXTRACT_SECONDARY_DEFAULT_MODEL",
		"extract.secondary.timeout_secs": "LEKHA_EXTRACT_SECONDARY_TIMEOUT_SECS",
		"ingest.max_attempts":            "LEKHA_INGEST_MAX_ATTEMPTS",
		"ingest.base_delay_ms":           "LEKHA_INGEST_BASE_DELAY_MS",
		"ingest.max_files_batch":         "LEKHA_INGEST_MAX_FILES_BATCH",
		"gst.fallback_rate_percent":      "LEKHA_GST_FALLBACK_RATE_PERCENT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if LEKHA_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LEKHA_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Extract = ExtractConfig{
		Primary: ExtractProviderConfig{
			Provider:     v.GetString("extract.primary.provider"),
			APIKey:       v.GetString("extract.primary.api_key"),
			DefaultModel: v.GetString("extract.primary.default_model"),
			TimeoutSecs:  v.GetInt("extract.primary.timeout_secs"),
		},
		Secondary: ExtractProviderConfig{
			Provider:     v.GetString("extract.secondary.provider"),
			APIKey:       v.GetString("extract.secondary.api_key"),
			DefaultModel: v.GetString("extract.secondary.default_model"),
			TimeoutSecs:  v.GetInt("extract.secondary.timeout_secs"),
		},
	}
	cfg.Ingest = IngestConfig{
		MaxAttempts:   v.GetInt("ingest.max_attempts"),
		BaseDelayMS:   v.GetInt("ingest.base_delay_ms"),
		MaxFilesBatch: v.GetInt("ingest.max_files_batch"),
	}
	cfg.GST = GSTConfig{
		FallbackRatePercent: v.GetFloat64("gst.fallback_rate_percent"),
	}

	return cfg, nil
}
