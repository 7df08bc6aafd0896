package repository

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/models"
	"marketplace/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConnectionRepository persists follow edges and the counters they drive.
type ConnectionRepository interface {
	Toggle(ctx context.Context, from, to string) (*models.ToggleResult, error)
	IsFollowing(ctx context.Context, from, to string) (bool, error)
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

// Toggle creates the edge from -> to if absent, deletes it if present, and moves
// both counters in the same transaction. Any failure rolls back edge and counters together.
func (r *connectionRepository) Toggle(ctx context.Context, from, to string) (*models.ToggleResult, error) {
	defer observability.TrackQuery("toggle", "connections")()
	result := &models.ToggleResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.Account
		if err := tx.Select("id", "hash").Where("hash = ?", to).First(&target).Error; err != nil {
			return storeError(err, "Account", to)
		}

		var edge models.Connection
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("from_hash = ? AND to_hash = ?", from, to).
			First(&edge).Error

		var delta int64
		switch {
		case err == nil:
			if err := tx.Delete(&edge).Error; err != nil {
				return err
			}
			delta = -1
		case errors.Is(err, gorm.ErrRecordNotFound):
			edge = models.Connection{From: from, To: to}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
			delta = 1
			result.NowFollowing = true
		default:
			return err
		}

		if err := adjustCounts(tx, from, to, delta); err != nil {
			return err
		}

		var followers []int64
		if err := tx.Model(&models.Account{}).
			Where("hash = ?", to).
			Pluck("followers", &followers).Error; err != nil {
			return err
		}
		if len(followers) > 0 {
			result.Followers = followers[0]
		}
		return nil
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, models.NewInternalError(fmt.Errorf("concurrent follow of %s, retry: %w", to, err))
		}
		return nil, storeError(err, "Account", to)
	}
	return result, nil
}

type counterUpdate struct {
	hash   string
	column string
}

// adjustCounts moves both counters, locking account rows in hash order so
// opposite toggles between the same pair cannot deadlock.
func adjustCounts(tx *gorm.DB, from, to string, delta int64) error {
	updates := []counterUpdate{{hash: from, column: "following"}, {hash: to, column: "followers"}}
	if to < from {
		updates[0], updates[1] = updates[1], updates[0]
	}
	for _, u := range updates {
		err := tx.Model(&models.Account{}).
			Where("hash = ?", u.hash).
			UpdateColumn(u.column, gorm.Expr("GREATEST(0, "+u.column+" + ?)", delta)).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *connectionRepository) IsFollowing(ctx context.Context, from, to string) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Connection{}).
		Where("from_hash = ? AND to_hash = ?", from, to).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
