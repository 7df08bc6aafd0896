package repository

import (
	"context"
	"strings"

	"marketplace/internal/feed"
	"marketplace/internal/models"
	"marketplace/internal/observability"

	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByHash(ctx context.Context, hash string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Profile(ctx context.Context, v feed.Viewer, hash string) (*models.Account, error)
	Exists(ctx context.Context, hash string) (bool, error)
	Trending(ctx context.Context, v feed.Viewer, page feed.Page) ([]*models.Account, error)
	Followers(ctx context.Context, v feed.Viewer, subject string, page feed.Page) ([]*models.Account, error)
	Following(ctx context.Context, v feed.Viewer, subject string, page feed.Page) ([]*models.Account, error)
	Search(ctx context.Context, v feed.Viewer, tsquery string, page feed.Page) ([]*models.Account, error)
	UpdateFields(ctx context.Context, hash string, fields map[string]interface{}) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository returns a new AccountRepository implementation.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	defer observability.TrackQuery("create", "accounts")()
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("An account with this email already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *accountRepository) GetByHash(ctx context.Context, hash string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("hash = ?", hash).First(&account).Error; err != nil {
		return nil, storeError(err, "Account", hash)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	email = strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, storeError(err, "Account", email)
	}
	return &account, nil
}

// Profile loads one account with is_following relative to the viewer.
func (r *accountRepository) Profile(ctx context.Context, v feed.Viewer, hash string) (*models.Account, error) {
	defer observability.TrackQuery("profile", "accounts")()
	var account models.Account
	err := accountSelect(v).apply(readDB(r.db).WithContext(ctx)).
		Where("accounts.hash = ?", hash).
		First(&account).Error
	if err != nil {
		return nil, storeError(err, "Account", hash)
	}
	return &account, nil
}

func (r *accountRepository) Exists(ctx context.Context, hash string) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Account{}).
		Where("hash = ?", hash).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Trending orders by follower count with hash as the deterministic tiebreak.
// An authenticated caller never appears in their own list.
func (r *accountRepository) Trending(ctx context.Context, v feed.Viewer, page feed.Page) ([]*models.Account, error) {
	defer observability.TrackQuery("trending", "accounts")()
	var accounts []*models.Account
	q := accountSelect(v).apply(readDB(r.db).WithContext(ctx))
	if !v.IsAnonymous() {
		q = q.Where("accounts.hash <> ?", v.CallerHash())
	}
	err := q.Scopes(paginate(page)).
		Order("accounts.followers DESC, accounts.hash ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return accounts, nil
}

// Followers lists accounts with an edge pointing at subject, newest edge first.
func (r *accountRepository) Followers(ctx context.Context, v feed.Viewer, subject string, page feed.Page) ([]*models.Account, error) {
	return r.connected(ctx, v, page, "connections.from_hash", "connections.to_hash", subject)
}

// Following lists accounts subject has an edge to, newest edge first.
func (r *accountRepository) Following(ctx context.Context, v feed.Viewer, subject string, page feed.Page) ([]*models.Account, error) {
	return r.connected(ctx, v, page, "connections.to_hash", "connections.from_hash", subject)
}

func (r *accountRepository) connected(ctx context.Context, v feed.Viewer, page feed.Page, joinColumn, subjectColumn, subject string) ([]*models.Account, error) {
	defer observability.TrackQuery("connections", "accounts")()
	var accounts []*models.Account
	cols := accountSelect(v).add("connections.created_at AS connected_at")
	err := cols.apply(readDB(r.db).WithContext(ctx)).
		Joins("JOIN connections ON "+joinColumn+" = accounts.hash").
		Where(subjectColumn+" = ?", subject).
		Scopes(paginate(page)).
		Order("connections.created_at DESC, accounts.hash ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return accounts, nil
}

// Search ranks accounts by ts_rank_cd, then followers, then hash.
func (r *accountRepository) Search(ctx context.Context, v feed.Viewer, tsquery string, page feed.Page) ([]*models.Account, error) {
	defer observability.TrackQuery("search", "accounts")()
	ctx, span := observability.TraceRepositoryMethod(ctx, "search", "accounts")
	defer span.End()
	var accounts []*models.Account
	cols := accountSelect(v).add("ts_rank_cd(accounts.search, to_tsquery('english', ?)) AS rank", tsquery)
	err := cols.apply(readDB(r.db).WithContext(ctx)).
		Where("accounts.search @@ to_tsquery('english', ?)", tsquery).
		Scopes(paginate(page)).
		Order("rank DESC, accounts.followers DESC, accounts.hash ASC").
		Find(&accounts).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, models.NewInternalError(err)
	}
	return accounts, nil
}

func (r *accountRepository) UpdateFields(ctx context.Context, hash string, fields map[string]interface{}) error {
	defer observability.TrackQuery("update", "accounts")()
	res := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("hash = ?", hash).
		Updates(fields)
	if res.Error != nil {
		if isUniqueConstraintError(res.Error) {
			return models.NewConflictError("An account with this email already exists")
		}
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Account", hash)
	}
	return nil
}
