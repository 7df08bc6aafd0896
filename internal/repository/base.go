// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"strings"

	"marketplace/internal/database"
	"marketplace/internal/feed"
	"marketplace/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

func readDB(primary *gorm.DB) *gorm.DB {
	if db := database.GetReadDB(); db != nil {
		return db
	}
	return primary
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, uniqueViolation)
}

// storeError maps gorm errors to AppErrors; AppErrors pass through unchanged.
func storeError(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}

// followingColumn selects is_following for the row's account, relative to the viewer.
// Anonymous viewers never emit the EXISTS subselect.
func followingColumn(v feed.Viewer, accountHashColumn string) (string, []interface{}) {
	if v.IsAnonymous() {
		return "false AS is_following", nil
	}
	return "EXISTS(SELECT 1 FROM connections c WHERE c.to_hash = " + accountHashColumn +
		" AND c.from_hash = ?) AS is_following", []interface{}{v.CallerHash()}
}

// selectColumns joins select expressions and their bound arguments in order.
type selectColumns struct {
	exprs []string
	args  []interface{}
}

func (s *selectColumns) add(expr string, args ...interface{}) *selectColumns {
	s.exprs = append(s.exprs, expr)
	s.args = append(s.args, args...)
	return s
}

func (s *selectColumns) apply(db *gorm.DB) *gorm.DB {
	return db.Select(strings.Join(s.exprs, ", "), s.args...)
}

// accountSelect is accounts.* plus the viewer-relative is_following flag.
func accountSelect(v feed.Viewer) *selectColumns {
	cols := &selectColumns{}
	cols.add("accounts.*")
	expr, args := followingColumn(v, "accounts.hash")
	return cols.add(expr, args...)
}

// withPostAuthor preloads post_author with is_following bound to the viewer.
func withPostAuthor(v feed.Viewer) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload("PostAuthor", func(tx *gorm.DB) *gorm.DB {
			return accountSelect(v).apply(tx)
		})
	}
}

// paginate applies the page window.
func paginate(p feed.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(p.Limit).Offset(p.Offset())
	}
}

// visiblePosts restricts to published posts unless the viewer is the author being listed.
func visiblePosts(v feed.Viewer) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if v.IsSelf() {
			return db
		}
		return db.Where("posts.published = ?", true)
	}
}
