package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port, LogLevel string }

// APICfg points at the event backend. Timeout of zero leaves the transport default in place.
type APICfg struct {
	BaseURL string
	Timeout time.Duration
}

// BlobCfg is the public base of the blob store that serves finalized media.
type BlobCfg struct{ BaseURL string }

type RedisCfg struct {
	Addr     string
	ViewTTL  time.Duration
	Password string
}

// DBCfg enables the upload journal when DSN is set. Uploads left unconfirmed for
// StaleAfter are marked abandoned.
type DBCfg struct {
	DSN        string
	StaleAfter time.Duration
}

type SecurityCfg struct {
	AdminToken string // guards every console route except /health
}

type Cfg struct {
	App   AppCfg
	API   APICfg
	Blob  BlobCfg
	Redis RedisCfg
	DB    DBCfg
	Sec   SecurityCfg
}

// Load reads .env (if present) and the process environment.
// Missing required settings are fatal.
func Load() Cfg {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not parse .env")
	}

	cfg, missing := fromViper(viper.New())
	for _, key := range missing {
		log.Fatal().Str("key", key).Msg("required setting is missing")
	}
	return cfg
}

// fromViper builds the config from an env-bound viper instance and reports required keys that are empty.
func fromViper(v *viper.Viper) (Cfg, []string) {
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_TIMEOUT_SEC", 0)
	v.SetDefault("VIEW_CACHE_TTL_SEC", 60)
	v.SetDefault("ADMIN_TOKEN", "")
	v.SetDefault("UPLOAD_STALE_AFTER_MIN", 60)

	cfg := Cfg{
		App: AppCfg{
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		API: APICfg{
			BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			Timeout: time.Duration(v.GetInt("API_TIMEOUT_SEC")) * time.Second,
		},
		Blob: BlobCfg{BaseURL: strings.TrimRight(v.GetString("BLOB_STORAGE_BASE_URL"), "/")},
		Redis: RedisCfg{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			ViewTTL:  time.Duration(v.GetInt("VIEW_CACHE_TTL_SEC")) * time.Second,
		},
		DB: DBCfg{
			DSN:        v.GetString("DB_DSN"),
			StaleAfter: time.Duration(v.GetInt("UPLOAD_STALE_AFTER_MIN")) * time.Minute,
		},
		Sec: SecurityCfg{AdminToken: strings.TrimSpace(v.GetString("ADMIN_TOKEN"))},
	}

	var missing []string
	if cfg.API.BaseURL == "" {
		missing = append(missing, "API_BASE_URL")
	}
	if cfg.Blob.BaseURL == "" {
		missing = append(missing, "BLOB_STORAGE_BASE_URL")
	}
	return cfg, missing
}

// SetupLogging configures the global zerolog logger for the environment.
func SetupLogging(app AppCfg) {
	level, err := zerolog.ParseLevel(strings.ToLower(app.LogLevel))
	if err != nil || app.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if app.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
