// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes bot credentials,
// MongoDB settings, required/archive/notify channels, the admin allow-list,
// logging, the keep-alive HTTP server, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tbourn/go-fileshare-bot/internal/sysutil"
)

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-fileshare-bot")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// TelegramConfig holds everything needed to talk to the Bot API and the
// channels the bot operates on.
type TelegramConfig struct {
	Token            string   // BOT_TOKEN
	ArchiveChannelID int64    // ARCHIVE_CHANNEL_ID; private channel holding uploads
	NotifyChannelID  int64    // NOTIFY_CHANNEL_ID; admin notification channel
	MainChannel      string   // MAIN_CHANNEL; public channel handle shown in the menu
	DeveloperHandle  string   // DEVELOPER_HANDLE; contact handle shown in the menu
	RequiredChannels []string // REQUIRED_CHANNELS (CSV of public handles)
	AdminIDs         []int64  // ADMIN_IDS (CSV of Telegram user ids)
	UpdateTimeout    int      // UPDATE_TIMEOUT; long-poll timeout in seconds
}

// MongoConfig holds connection settings for the persistent store.
type MongoConfig struct {
	URI            string        // MONGO_URI
	Database       string        // MONGO_DB
	ConnectTimeout time.Duration // MONGO_CONNECT_TIMEOUT
}

// Config holds all configuration values for the application.
type Config struct {
	Telegram TelegramConfig
	Mongo    MongoConfig

	// Keep-alive HTTP server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	GinMode           string        // debug|release|test

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	// Broadcast pacing (messages per second, bucket size)
	BroadcastRPS   float64 // BROADCAST_RPS
	BroadcastBurst int     // BROADCAST_BURST

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		Telegram: TelegramConfig{
			Token:            getenv("BOT_TOKEN", ""),
			ArchiveChannelID: getint64("ARCHIVE_CHANNEL_ID", 0),
			NotifyChannelID:  getint64("NOTIFY_CHANNEL_ID", 0),
			MainChannel:      strings.TrimPrefix(getenv("MAIN_CHANNEL", ""), "@"),
			DeveloperHandle:  strings.TrimPrefix(getenv("DEVELOPER_HANDLE", ""), "@"),
			RequiredChannels: splitCSV(getenv("REQUIRED_CHANNELS", "")),
			AdminIDs:         sysutil.ParseIDList(getenv("ADMIN_IDS", "")),
			UpdateTimeout:    getint("UPDATE_TIMEOUT", 60),
		},
		Mongo: MongoConfig{
			URI:            getenv("MONGO_URI", ""),
			Database:       getenv("MONGO_DB", "uploaderfiles"),
			ConnectTimeout: getdur("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},

		// Keep-alive server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging
		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		// Broadcast pacing
		BroadcastRPS:   getfloat("BROADCAST_RPS", 20.0),
		BroadcastBurst: getint("BROADCAST_BURST", 1),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-fileshare-bot"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	for i, ch := range cfg.Telegram.RequiredChannels {
		cfg.Telegram.RequiredChannels[i] = strings.TrimPrefix(ch, "@")
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		return cfg, errors.New("BOT_TOKEN must not be empty")
	}
	if cfg.Telegram.ArchiveChannelID == 0 {
		return cfg, errors.New("ARCHIVE_CHANNEL_ID must be set")
	}
	if cfg.Telegram.NotifyChannelID == 0 {
		return cfg, errors.New("NOTIFY_CHANNEL_ID must be set")
	}
	if cfg.Telegram.UpdateTimeout <= 0 {
		return cfg, errors.New("UPDATE_TIMEOUT must be > 0")
	}
	if strings.TrimSpace(cfg.Mongo.URI) == "" {
		return cfg, errors.New("MONGO_URI must not be empty")
	}
	if strings.TrimSpace(cfg.Mongo.Database) == "" {
		return cfg, errors.New("MONGO_DB must not be empty")
	}
	if cfg.Mongo.ConnectTimeout <= 0 {
		return cfg, errors.New("MONGO_CONNECT_TIMEOUT must be > 0")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.BroadcastRPS <= 0 {
		return cfg, errors.New("BROADCAST_RPS must be > 0")
	}
	if cfg.BroadcastBurst < 1 {
		return cfg, errors.New("BROADCAST_BURST must be >= 1")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// IsAdmin reports whether id is on the static admin allow-list.
func (c Config) IsAdmin(id int64) bool {
	for _, a := range c.Telegram.AdminIDs {
		if a == id {
			return true
		}
	}
	return false
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getint64(k string, def int64) int64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
