package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	sizes := DefaultPageSizes()
	return &Config{
		Env:                      "development",
		DBSSLMode:                "disable",
		JWTSecret:                "secure-secret-at-least-32-chars-long",
		DBPassword:               "secure-password",
		Port:                     "8080",
		DBConnMaxLifetimeMinutes: 1,
		RedisURL:                 "redis://localhost:6379",
		PageSizeFeed:             sizes.Feed,
		PageSizeTrending:         sizes.Trending,
		PageSizeAuthorPosts:      sizes.AuthorPosts,
		PageSizeFollowers:        sizes.Followers,
		PageSizeFollowing:        sizes.Following,
		PageSizeSearchPosts:      sizes.SearchPosts,
		PageSizeSearchPeople:     sizes.SearchPeople,
		AnalyticsBackend:         "redis",
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with empty SSL mode", "prod", "", true},
		{"Prod with disable SSL mode", "prod", "disable", true},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidatePageSizes(t *testing.T) {
	c := validConfig()
	assert.NoError(t, c.Validate())

	c.PageSizeTrending = 0
	assert.ErrorContains(t, c.Validate(), "PAGE_SIZE_TRENDING")

	c = validConfig()
	c.PageSizeSearchPeople = 500
	assert.ErrorContains(t, c.Validate(), "PAGE_SIZE_SEARCH_PEOPLE")
}

func TestConfig_ValidateAnalyticsBackend(t *testing.T) {
	for _, backend := range []string{"", "none", "redis", "nats"} {
		c := validConfig()
		c.AnalyticsBackend = backend
		assert.NoError(t, c.Validate(), backend)
	}

	c := validConfig()
	c.AnalyticsBackend = "kafka"
	assert.Error(t, c.Validate())
}

func TestConfig_ProductionRejectsDefaultSecret(t *testing.T) {
	c := validConfig()
	c.Env = "production"
	c.DBSSLMode = "require"
	c.JWTSecret = "your-secret-key-change-in-production"
	assert.Error(t, c.Validate())
}

func TestConfig_Durations(t *testing.T) {
	c := validConfig()
	assert.Equal(t, time.Duration(0), c.FeedCacheTTL())
	c.FeedCacheTTLSecond = 30
	assert.Equal(t, 30*time.Second, c.FeedCacheTTL())

	assert.Equal(t, 7*24*time.Hour, c.TokenTTL())
	c.JWTTTLHours = 2
	assert.Equal(t, 2*time.Hour, c.TokenTTL())
}

func TestConfig_PageSizes(t *testing.T) {
	c := validConfig()
	assert.Equal(t, DefaultPageSizes(), c.PageSizes())
	assert.Equal(t, 6, c.PageSizes().Trending)
	assert.Equal(t, 10, c.PageSizes().Feed)
}

func TestLoadConfig_Normalization(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_SSLMODE")
	defer os.Unsetenv("ANALYTICS_BACKEND")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")
	os.Setenv("ANALYTICS_BACKEND", " NATS ")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "nats", c.AnalyticsBackend)
	assert.Equal(t, DefaultPageSizes(), c.PageSizes())
}
