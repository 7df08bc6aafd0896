// Package bootstrap connects the runtime dependencies shared by the server and tools.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"marketplace/internal/cache"
	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/seed"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultRootName  = "Marketplace Root"
	defaultRootEmail = "root@marketplace.local"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedPreset names a built-in seed preset applied after connecting; empty skips seeding.
	SeedPreset string
}

// InitRuntime connects to the database and Redis, ensures the development root
// account and optionally seeds demo data. The Redis client is nil when Redis is unreachable.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	rdb := cache.GetClient()

	if _, err := ensureDevRootAccount(ctx, cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development root account: %w", err)
	}

	if opts.SeedPreset != "" {
		preset, ok := seed.BuiltinPresets()[opts.SeedPreset]
		if !ok {
			return nil, nil, fmt.Errorf("unknown seed preset %q", opts.SeedPreset)
		}
		if _, err := seed.NewSeeder(db, seed.Options{}).Run(ctx, preset); err != nil {
			return nil, nil, fmt.Errorf("seed preset %q: %w", opts.SeedPreset, err)
		}
	}

	return db, rdb, nil
}

// ensureDevRootAccount creates a known login in development when DEV_BOOTSTRAP_ROOT is set.
// An existing account with the root email gets its password reset. It returns the root hash.
func ensureDevRootAccount(ctx context.Context, cfg *config.Config, db *gorm.DB) (string, error) {
	if cfg == nil || db == nil {
		return "", nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapRoot {
		return "", nil
	}

	name := strings.TrimSpace(cfg.DevRootName)
	if name == "" {
		name = defaultRootName
	}
	email := strings.TrimSpace(strings.ToLower(cfg.DevRootEmail))
	if email == "" {
		email = defaultRootEmail
	}
	if cfg.DevRootPassword == "" {
		return "", errors.New("DEV_ROOT_PASSWORD must be set when DEV_BOOTSTRAP_ROOT is enabled")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.DevRootPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash root password: %w", err)
	}

	var root models.Account
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("email = ?", email).First(&root).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			root = models.Account{
				Hash:     models.NewHash(),
				Name:     name,
				Email:    email,
				Password: string(hashed),
				Verified: true,
			}
			return tx.Create(&root).Error
		case findErr != nil:
			return findErr
		default:
			return tx.Model(&models.Account{}).
				Where("hash = ?", root.Hash).
				Updates(map[string]interface{}{"password": string(hashed), "verified": true}).Error
		}
	})
	if err != nil {
		return "", err
	}

	middleware.Logger.InfoContext(ctx, "development root account ensured",
		slog.String("hash", root.Hash),
		slog.String("email", email),
	)
	return root.Hash, nil
}
