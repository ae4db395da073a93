package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	DB          DBConfig          `mapstructure:"db"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Cron        CronConfig        `mapstructure:"cron"`
	ContentFeed ContentFeedConfig `mapstructure:"content_feed"`
	ContentSync ContentSyncConfig `mapstructure:"content_sync"`
	Resolver    ResolverConfig    `mapstructure:"resolver"`
	Apod        ApodConfig        `mapstructure:"apod"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CacheConfig struct {
	// Backend is "redis" or "memory". Memory is for dev/tests only; it does
	// not survive restarts. Entry lifetimes are the resolver's concern; see
	// ResolverConfig.CacheTTL.
	Backend  string `mapstructure:"backend"`
	RedisURL string `mapstructure:"redis_url"`
}

type CronConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ContentSync string `mapstructure:"content_sync"`
	ApodRefresh string `mapstructure:"apod_refresh"`
}

type ContentFeedConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ContentSyncConfig struct {
	Hemispheres   []string `mapstructure:"hemispheres"`
	LookaheadDays int      `mapstructure:"lookahead_days"`
}

type ResolverConfig struct {
	// DefaultTimezone is the IANA zone used for the user-local anchor when a
	// request carries no zone of its own. Empty means UTC.
	DefaultTimezone string        `mapstructure:"default_timezone"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	CacheEnabled    bool          `mapstructure:"cache_enabled"`
}

type ApodConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// APIKey empty means the picture-of-the-day feature is disabled.
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ASTRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.content_sync", "@every 1h")
	v.SetDefault("cron.apod_refresh", "@every 6h")
	v.SetDefault("content_feed.base_url", "")
	v.SetDefault("content_feed.api_key", "")
	v.SetDefault("content_feed.timeout", "15s")
	v.SetDefault("content_sync.hemispheres", []string{"Northern", "Southern"})
	v.SetDefault("content_sync.lookahead_days", 1)
	v.SetDefault("resolver.default_timezone", "")
	v.SetDefault("resolver.cache_ttl", "48h")
	v.SetDefault("resolver.cache_enabled", true)
	v.SetDefault("apod.base_url", "https://api.nasa.gov/planetary/apod")
	v.SetDefault("apod.api_key", "")
	v.SetDefault("apod.timeout", "15s")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
