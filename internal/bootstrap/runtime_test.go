package bootstrap

import (
	"context"
	"testing"

	"marketplace/internal/config"
	"marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}))
	return db
}

func TestEnsureDevRootAccount_Skipped(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, cfg := range []*config.Config{
		{Env: "production", DevBootstrapRoot: true, DevRootPassword: "secret1"},
		{Env: "development", DevBootstrapRoot: false, DevRootPassword: "secret1"},
	} {
		hash, err := ensureDevRootAccount(ctx, cfg, db)
		require.NoError(t, err)
		assert.Empty(t, hash)
	}

	var count int64
	require.NoError(t, db.Model(&models.Account{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEnsureDevRootAccount_RequiresPassword(t *testing.T) {
	_, err := ensureDevRootAccount(context.Background(),
		&config.Config{Env: "development", DevBootstrapRoot: true}, openTestDB(t))
	assert.Error(t, err)
}

func TestEnsureDevRootAccount_CreatesThenResets(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	cfg := &config.Config{Env: "development", DevBootstrapRoot: true, DevRootEmail: " Root@Example.com ", DevRootPassword: "first-pass"}

	hash, err := ensureDevRootAccount(ctx, cfg, db)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	var root models.Account
	require.NoError(t, db.Where("hash = ?", hash).First(&root).Error)
	assert.Equal(t, "root@example.com", root.Email)
	assert.Equal(t, defaultRootName, root.Name)
	assert.True(t, root.Verified)

	cfg.DevRootPassword = "second-pass"
	again, err := ensureDevRootAccount(ctx, cfg, db)
	require.NoError(t, err)
	assert.Equal(t, hash, again)

	require.NoError(t, db.Where("hash = ?", hash).First(&root).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(root.Password), []byte("second-pass")))

	var count int64
	require.NoError(t, db.Model(&models.Account{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
