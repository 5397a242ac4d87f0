package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Inference backend (consumed, not owned)
	BackendURL     string        // base URL of the classification service (required)
	ProbeTimeout   time.Duration // health probe timeout (default: 5s)
	AnalyzeTimeout time.Duration // classification request timeout (default: 30s)
	RetryCount     int           // extra attempts on transport failure (default: 0)
	WatchInterval  time.Duration // background reachability check interval (default: 30s)

	CatalogFile    string // optional YAML file overriding/extending the advisory catalog
	MaxUploadBytes int64  // multipart upload cap for /analyze (default: 10 MiB)

	// Redis (optional, empty addr = diagnosis stats disabled)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() *Config {
	// Best effort: a local .env is a dev convenience, real deployments set
	// the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LEAFSCAN_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LEAFSCAN_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LEAFSCAN_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LEAFSCAN_PRETTY_LOG", true),

		// Inference backend
		BackendURL:     requireEnv("LEAFSCAN_BACKEND_URL"),
		ProbeTimeout:   mustDuration("LEAFSCAN_PROBE_TIMEOUT", 5*time.Second),
		AnalyzeTimeout: mustDuration("LEAFSCAN_ANALYZE_TIMEOUT", 30*time.Second),
		RetryCount:     getenvInt("LEAFSCAN_RETRY_COUNT", 0),
		WatchInterval:  mustDuration("LEAFSCAN_WATCH_INTERVAL", 30*time.Second),

		CatalogFile:    getenv("LEAFSCAN_CATALOG_FILE", ""), // optional, empty = built-in catalog only
		MaxUploadBytes: getenvInt64("LEAFSCAN_MAX_UPLOAD_BYTES", 10<<20),

		// Redis settings
		RedisAddr:           getenv("LEAFSCAN_REDIS_ADDR", ""), // optional, empty = stats disabled
		RedisUser:           getenv("LEAFSCAN_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("LEAFSCAN_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("LEAFSCAN_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("LEAFSCAN_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("LEAFSCAN_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("LEAFSCAN_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("LEAFSCAN_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("LEAFSCAN_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("LEAFSCAN_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("LEAFSCAN_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("LEAFSCAN_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("LEAFSCAN_REDIS_WARN_THRESHOLD", 3),
	}

	if cfg.RetryCount < 0 {
		panic(fmt.Sprintf("❌ FATAL: LEAFSCAN_RETRY_COUNT must be >= 0, got %d", cfg.RetryCount))
	}
	if cfg.MaxUploadBytes <= 0 {
		panic(fmt.Sprintf("❌ FATAL: LEAFSCAN_MAX_UPLOAD_BYTES must be > 0, got %d", cfg.MaxUploadBytes))
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
