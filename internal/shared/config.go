package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"prod"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":3000"`
	MetricsAddr string `env:"METRICS_ADDR"`

	UsersAPI  string `env:"USERS_API_URL" envDefault:"http://localhost:8080"`
	HotelsAPI string `env:"HOTELS_API_URL" envDefault:"http://localhost:8081"`
	SearchAPI string `env:"SEARCH_API_URL" envDefault:"http://localhost:8082"`

	// empty RedisAddr keeps sessions and the hotel cache in process memory
	RedisAddr string `env:"REDIS_ADDR"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HotelCacheTTL time.Duration `env:"HOTEL_CACHE_TTL" envDefault:"30s"`

	GatewayTimeout time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"10s"`
	GatewayRPS     int           `env:"GATEWAY_RPS" envDefault:"20"`
	GatewayRetries int           `env:"GATEWAY_RETRIES" envDefault:"0"`

	LookupConcurrency int `env:"LOOKUP_CONCURRENCY" envDefault:"8"`
	SeedWorkers       int `env:"SEED_WORKERS" envDefault:"4"`
	// token used by cmd/seeder for admin calls against the hotel service
	SeedToken string `env:"SEED_TOKEN"`
}

// Load reads an optional .env file and then the process environment. A value
// that does not parse falls back to its default; the other keys are kept.
// The returned problems are meant to be logged once the logger is set up.
func Load() (Config, []error) {
	var problems []error
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		problems = append(problems, fmt.Errorf(".env: %w", err))
	}

	vars := environ()
	c, err := parseFrom(vars)
	if err != nil {
		keys := make([]string, 0, len(vars))
		for k := range vars {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, err := parseFrom(map[string]string{k: vars[k]}); err != nil {
				problems = append(problems, fmt.Errorf("%s ignored, using default: %w", k, err))
				delete(vars, k)
			}
		}
		if c, err = parseFrom(vars); err != nil {
			problems = append(problems, fmt.Errorf("environment ignored, using defaults: %w", err))
			c = Defaults()
		}
	}

	if c.SessionTTL <= 0 {
		c.SessionTTL = 24 * time.Hour
	}
	if c.LookupConcurrency <= 0 {
		c.LookupConcurrency = 8
	}
	if c.GatewayRetries < 0 {
		c.GatewayRetries = 0
	}
	return c, problems
}

func environ() map[string]string {
	out := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}

func parseFrom(vars map[string]string) (Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, env.Options{Environment: vars}); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Parse reads the environment without touching .env.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Defaults returns the configuration with every default applied.
func Defaults() Config {
	c, _ := parseFrom(map[string]string{})
	return c
}
