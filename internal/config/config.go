package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the catalog service.
type Config struct {
	DB        DBConfig
	Redis     RedisConfig
	TMDB      TMDBConfig
	Cache     CacheConfig
	Browse    BrowseConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Port      string
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLRootCert string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TMDBConfig holds TMDB API configuration.
type TMDBConfig struct {
	APIKey          string
	ReadAccessToken string
	BaseURL         string
	Language        string
	Region          string
	RequestsPerSec  float64
	Burst           int
	Timeout         time.Duration
}

// CacheConfig holds TTLs for cached TMDB responses.
type CacheConfig struct {
	ListTTL   time.Duration
	DetailTTL time.Duration
	GenreTTL  time.Duration
}

// BrowseConfig holds screen bookkeeping settings.
type BrowseConfig struct {
	BackdropDelay   time.Duration
	ScreenTTL       time.Duration
	MaxScreens      int
	FavoritePageLen int
	FanOut          int
}

// RateLimitConfig holds the per-client request limit.
type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	p := parser{}
	cfg := &Config{
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        p.intVal("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "bestv"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       p.intVal("REDIS_DB", 0),
		},
		TMDB: TMDBConfig{
			APIKey:          getEnv("TMDB_API_KEY", ""),
			ReadAccessToken: getEnv("TMDB_READ_ACCESS_TOKEN", ""),
			BaseURL:         getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			Language:        getEnv("TMDB_LANGUAGE", "en-US"),
			Region:          getEnv("TMDB_REGION", "US"),
			RequestsPerSec:  p.floatVal("TMDB_RPS", 20),
			Burst:           p.intVal("TMDB_BURST", 10),
			Timeout:         p.durationVal("TMDB_TIMEOUT", 15*time.Second),
		},
		Cache: CacheConfig{
			ListTTL:   p.durationVal("CACHE_LIST_TTL", 5*time.Minute),
			DetailTTL: p.durationVal("CACHE_DETAIL_TTL", 30*time.Minute),
			GenreTTL:  p.durationVal("CACHE_GENRE_TTL", 24*time.Hour),
		},
		Browse: BrowseConfig{
			BackdropDelay:   p.durationVal("BACKDROP_DELAY", 300*time.Millisecond),
			ScreenTTL:       p.durationVal("SCREEN_TTL", 30*time.Minute),
			MaxScreens:      p.intVal("SCREEN_MAX", 1024),
			FavoritePageLen: p.intVal("FAVORITES_PAGE_SIZE", 20),
			FanOut:          p.intVal("FAN_OUT", 4),
		},
		RateLimit: RateLimitConfig{
			Max:    p.intVal("RATE_LIMIT_MAX", 300),
			Window: p.durationVal("RATE_LIMIT_WINDOW", time.Minute),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  p.intVal("LOG_MAX_SIZE_MB", 50),
			MaxBackups: p.intVal("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: p.intVal("LOG_MAX_AGE_DAYS", 14),
		},
		Port: getEnv("SERVER_PORT", "8080"),
	}

	if p.err != nil {
		return nil, p.err
	}
	if cfg.TMDB.APIKey == "" && cfg.TMDB.ReadAccessToken == "" {
		return nil, fmt.Errorf("TMDB_API_KEY or TMDB_READ_ACCESS_TOKEN must be set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parser keeps the first conversion error so Load can report it once.
type parser struct {
	err error
}

func (p *parser) intVal(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return n
}

func (p *parser) floatVal(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return f
}

func (p *parser) durationVal(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return d
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}
