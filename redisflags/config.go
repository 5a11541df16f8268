package redisflags

import "time"

// Config describes the Redis connection and lookup behaviour. Fields can be
// populated from environment variables via github.com/caarlos0/env.
type Config struct {
	ConnectionURL  string        `env:"FEATURE_REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // format "redis://:password@localhost:6379/0"
	RetryAttempts  int           `env:"FEATURE_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"FEATURE_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"FEATURE_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	KeyPrefix      string        `env:"FEATURE_REDIS_KEY_PREFIX" envDefault:"feature:"`  // prepended to every feature name
	CacheTTL       time.Duration `env:"FEATURE_REDIS_CACHE_TTL" envDefault:"5s"`        // how long answers are served from memory; 0 disables caching
	LookupTimeout  time.Duration `env:"FEATURE_REDIS_LOOKUP_TIMEOUT" envDefault:"250ms"` // upper bound on a single GET
}
