// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database connection, rate limiting, and
// observability.
//
// Values are resolved in this order: process environment, then the optional
// YAML file named by CONFIG_FILE (a flat map of the same KEY names), then the
// built-in default.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
	CSP        string // Content-Security-Policy for HTML views; empty disables
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "game-loans")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// DBConfig selects and tunes the persistence backend.
type DBConfig struct {
	Driver       string   // sqlite|postgres
	Path         string   // SQLite file path
	URL          string   // Postgres DSN (DATABASE_URL)
	ReplicaURLs  []string // Postgres read replicas
	MaxOpenConns int
	MaxIdleConns int
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	ShutdownTimeout   time.Duration // graceful drain window
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for JSON routes

	// Storage
	DB DBConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

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

// Load reads configuration from environment variables (and CONFIG_FILE, when
// set), applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	e := env{}
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		file, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		e.file = file
	}

	cfg := Config{
		// Server
		Port:              e.getenv("PORT", "3000"),
		ReadTimeout:       e.getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: e.getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      e.getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       e.getdur("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   e.getdur("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxHeaderBytes:    e.getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(e.getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(e.getenv("LOG_LEVEL", "info")),
		LogPretty:      e.getbool("LOG_PRETTY", false),
		SwaggerEnabled: e.getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(e.getenv("API_BASE_PATH", "/api")),

		// Storage
		DB: DBConfig{
			Driver:       strings.ToLower(e.getenv("DB_DRIVER", "sqlite")),
			Path:         e.getenv("DB_PATH", "app.db"),
			URL:          e.getenv("DATABASE_URL", ""),
			ReplicaURLs:  splitCSV(e.getenv("DB_REPLICA_URLS", "")),
			MaxOpenConns: e.getint("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: e.getint("DB_MAX_IDLE_CONNS", 10),
		},

		// Rate limiting
		RateRPS:   e.getfloat("RATE_RPS", 20.0),
		RateBurst: e.getint("RATE_BURST", 40),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(e.getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: e.getbool("ENABLE_HSTS", false),
			HSTSMaxAge: e.getdur("HSTS_MAX_AGE", 180*24*time.Hour),
			CSP:        e.getenv("CONTENT_SECURITY_POLICY", "default-src 'self'"),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     e.getbool("OTEL_ENABLED", false),
			Endpoint:    e.getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    e.getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: e.getenv("OTEL_SERVICE_NAME", "game-loans"),
			SampleRatio: e.getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
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
	if cfg.DB.Driver == "postgresql" {
		cfg.DB.Driver = "postgres"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.ShutdownTimeout <= 0 {
		return cfg, errors.New("SHUTDOWN_TIMEOUT must be > 0")
	}
	if cfg.APIBasePath == "/" {
		return cfg, errors.New("API_BASE_PATH must not be the root path (HTML views live there)")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	switch cfg.DB.Driver {
	case "sqlite":
		if strings.TrimSpace(cfg.DB.Path) == "" {
			return cfg, errors.New("DB_PATH must not be empty")
		}
	case "postgres":
		if strings.TrimSpace(cfg.DB.URL) == "" {
			return cfg, errors.New("DATABASE_URL must not be empty when DB_DRIVER=postgres")
		}
	default:
		return cfg, errors.New("DB_DRIVER must be one of: sqlite, postgres")
	}
	if len(cfg.DB.ReplicaURLs) > 0 && cfg.DB.Driver != "postgres" {
		return cfg, errors.New("DB_REPLICA_URLS requires DB_DRIVER=postgres")
	}
	if cfg.DB.MaxOpenConns < 1 || cfg.DB.MaxIdleConns < 0 {
		return cfg, errors.New("DB_MAX_OPEN_CONNS must be >= 1 and DB_MAX_IDLE_CONNS >= 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// readFile parses a flat YAML map of KEY: value pairs.
func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read CONFIG_FILE: %w", err)
	}
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse CONFIG_FILE: %w", err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		out[strings.ToUpper(strings.TrimSpace(k))] = fmt.Sprint(v)
	}
	return out, nil
}

// ---- helpers ----

// env resolves keys from the process environment first, then the file map.
type env struct {
	file map[string]string
}

func (e env) lookup(k string) (string, bool) {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v, true
	}
	if v, ok := e.file[k]; ok && v != "" {
		return v, true
	}
	return "", false
}

func (e env) getenv(k, def string) string {
	if v, ok := e.lookup(k); ok {
		return v
	}
	return def
}

func (e env) getfloat(k string, def float64) float64 {
	if v, ok := e.lookup(k); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func (e env) getint(k string, def int) int {
	if v, ok := e.lookup(k); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func (e env) getbool(k string, def bool) bool {
	if v, ok := e.lookup(k); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func (e env) getdur(k string, def time.Duration) time.Duration {
	if v, ok := e.lookup(k); ok {
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

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
