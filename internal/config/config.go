// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTIssuer   string `mapstructure:"JWT_ISSUER"`
	JWTAudience string `mapstructure:"JWT_AUDIENCE"`
	JWTTTLHours int    `mapstructure:"JWT_TTL_HOURS"`
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"APP_ENV"`

	DBHost                   string `mapstructure:"DB_HOST"`
	DBPort                   string `mapstructure:"DB_PORT"`
	DBUser                   string `mapstructure:"DB_USER"`
	DBPassword               string `mapstructure:"DB_PASSWORD"`
	DBName                   string `mapstructure:"DB_NAME"`
	DBSSLMode                string `mapstructure:"DB_SSLMODE"`
	DBReadHost               string `mapstructure:"DB_READ_HOST"`
	DBReadPort               string `mapstructure:"DB_READ_PORT"`
	DBReadUser               string `mapstructure:"DB_READ_USER"`
	DBReadPassword           string `mapstructure:"DB_READ_PASSWORD"`
	DBMaxOpenConns           int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes int    `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBSchemaMode             string `mapstructure:"DB_SCHEMA_MODE"`

	DBAutoMigrateAllowDestructive bool `mapstructure:"DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE"`

	RedisURL           string `mapstructure:"REDIS_URL"`
	AllowedOrigins     string `mapstructure:"ALLOWED_ORIGINS"`
	FeatureFlags       string `mapstructure:"FEATURE_FLAGS"`
	FeedCacheTTLSecond int    `mapstructure:"FEED_CACHE_TTL_SECONDS"`

	PageSizeFeed         int `mapstructure:"PAGE_SIZE_FEED"`
	PageSizeTrending     int `mapstructure:"PAGE_SIZE_TRENDING"`
	PageSizeAuthorPosts  int `mapstructure:"PAGE_SIZE_AUTHOR_POSTS"`
	PageSizeFollowers    int `mapstructure:"PAGE_SIZE_FOLLOWERS"`
	PageSizeFollowing    int `mapstructure:"PAGE_SIZE_FOLLOWING"`
	PageSizeSearchPosts  int `mapstructure:"PAGE_SIZE_SEARCH_POSTS"`
	PageSizeSearchPeople int `mapstructure:"PAGE_SIZE_SEARCH_PEOPLE"`

	AnalyticsBackend string `mapstructure:"ANALYTICS_BACKEND"`
	AnalyticsStream  string `mapstructure:"ANALYTICS_STREAM"`
	NATSURL          string `mapstructure:"NATS_URL"`

	TracingEnabled     bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter    string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint       string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSampleRatio float64 `mapstructure:"TRACING_SAMPLE_RATIO"`

	DevBootstrapRoot bool   `mapstructure:"DEV_BOOTSTRAP_ROOT"`
	DevRootName      string `mapstructure:"DEV_ROOT_NAME"`
	DevRootEmail     string `mapstructure:"DEV_ROOT_EMAIL"`
	DevRootPassword  string `mapstructure:"DEV_ROOT_PASSWORD"`
}

// PageSizes are the fixed page sizes per resource kind. They are never taken from a request.
type PageSizes struct {
	Feed         int
	Trending     int
	AuthorPosts  int
	Followers    int
	Following    int
	SearchPosts  int
	SearchPeople int
}

// DefaultPageSizes mirrors the defaults set in LoadConfig.
func DefaultPageSizes() PageSizes {
	return PageSizes{
		Feed:         10,
		Trending:     6,
		AuthorPosts:  10,
		Followers:    10,
		Following:    10,
		SearchPosts:  10,
		SearchPeople: 10,
	}
}

// PageSizes returns the configured page sizes.
func (c *Config) PageSizes() PageSizes {
	return PageSizes{
		Feed:         c.PageSizeFeed,
		Trending:     c.PageSizeTrending,
		AuthorPosts:  c.PageSizeAuthorPosts,
		Followers:    c.PageSizeFollowers,
		Following:    c.PageSizeFollowing,
		SearchPosts:  c.PageSizeSearchPosts,
		SearchPeople: c.PageSizeSearchPeople,
	}
}

// FeedCacheTTL is zero when the anonymous feed cache is disabled.
func (c *Config) FeedCacheTTL() time.Duration {
	if c.FeedCacheTTLSecond <= 0 {
		return 0
	}
	return time.Duration(c.FeedCacheTTLSecond) * time.Second
}

// TokenTTL is the lifetime of issued access tokens.
func (c *Config) TokenTTL() time.Duration {
	if c.JWTTTLHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.JWTTTLHours) * time.Hour
}

// IsProduction reports whether strict production rules apply.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base file is optional.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.DBSSLMode = strings.ToLower(strings.TrimSpace(config.DBSSLMode))
	config.AnalyticsBackend = strings.ToLower(strings.TrimSpace(config.AnalyticsBackend))

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	sizes := DefaultPageSizes()

	viper.SetDefault("PORT", "8375")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "marketplace")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_READ_HOST", "")
	viper.SetDefault("DB_READ_PORT", "5432")
	viper.SetDefault("DB_READ_USER", "user")
	viper.SetDefault("DB_READ_PASSWORD", "password")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)
	viper.SetDefault("DB_SCHEMA_MODE", "hybrid")
	viper.SetDefault("DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE", false)
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	viper.SetDefault("JWT_ISSUER", "marketplace-api")
	viper.SetDefault("JWT_AUDIENCE", "marketplace-client")
	viper.SetDefault("JWT_TTL_HOURS", 24*7)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173")
	viper.SetDefault("FEATURE_FLAGS", "")
	viper.SetDefault("FEED_CACHE_TTL_SECONDS", 0)
	viper.SetDefault("PAGE_SIZE_FEED", sizes.Feed)
	viper.SetDefault("PAGE_SIZE_TRENDING", sizes.Trending)
	viper.SetDefault("PAGE_SIZE_AUTHOR_POSTS", sizes.AuthorPosts)
	viper.SetDefault("PAGE_SIZE_FOLLOWERS", sizes.Followers)
	viper.SetDefault("PAGE_SIZE_FOLLOWING", sizes.Following)
	viper.SetDefault("PAGE_SIZE_SEARCH_POSTS", sizes.SearchPosts)
	viper.SetDefault("PAGE_SIZE_SEARCH_PEOPLE", sizes.SearchPeople)
	viper.SetDefault("ANALYTICS_BACKEND", "redis")
	viper.SetDefault("ANALYTICS_STREAM", "marketplace.post_views")
	viper.SetDefault("NATS_URL", "nats://127.0.0.1:4222")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLE_RATIO", 1.0)
	viper.SetDefault("DEV_BOOTSTRAP_ROOT", false)
	viper.SetDefault("DEV_ROOT_NAME", "Marketplace Root")
	viper.SetDefault("DEV_ROOT_EMAIL", "root@marketplace.local")
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	for name, size := range map[string]int{
		"PAGE_SIZE_FEED":          c.PageSizeFeed,
		"PAGE_SIZE_TRENDING":      c.PageSizeTrending,
		"PAGE_SIZE_AUTHOR_POSTS":  c.PageSizeAuthorPosts,
		"PAGE_SIZE_FOLLOWERS":     c.PageSizeFollowers,
		"PAGE_SIZE_FOLLOWING":     c.PageSizeFollowing,
		"PAGE_SIZE_SEARCH_POSTS":  c.PageSizeSearchPosts,
		"PAGE_SIZE_SEARCH_PEOPLE": c.PageSizeSearchPeople,
	} {
		if size < 1 || size > 100 {
			return fmt.Errorf("%s must be between 1 and 100, got %d", name, size)
		}
	}

	switch c.AnalyticsBackend {
	case "", "none", "redis", "nats":
	default:
		return fmt.Errorf("unsupported ANALYTICS_BACKEND %q", c.AnalyticsBackend)
	}

	// Strict checks for production
	if c.IsProduction() {
		if c.JWTSecret == "your-secret-key-change-in-production" {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			return errors.New("DB_SSLMODE must enable TLS in production")
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	} else if len(c.JWTSecret) < 32 {
		log.Println("WARNING: JWT_SECRET is shorter than 32 characters. Consider using a stronger secret for production.")
	}

	return nil
}
