package service

import (
	"context"
	"errors"
	"testing"

	"marketplace/internal/feed"
	"marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByHashFn      func(context.Context, feed.Viewer, string) (*models.Post, error)
	feedFn           func(context.Context, feed.Viewer, feed.Page) ([]*models.Post, error)
	byAuthorFn       func(context.Context, feed.Viewer, string, feed.Page) ([]*models.Post, error)
	searchFn         func(context.Context, feed.Viewer, string, feed.Page) ([]*models.Post, error)
	incrementViewsFn func(context.Context, string) error
	updateFieldsFn   func(context.Context, string, string, map[string]interface{}) error
	deleteFn         func(context.Context, string, string) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByHash(ctx context.Context, v feed.Viewer, hash string) (*models.Post, error) {
	return s.getByHashFn(ctx, v, hash)
}
func (s *postRepoStub) Feed(ctx context.Context, v feed.Viewer, page feed.Page) ([]*models.Post, error) {
	return s.feedFn(ctx, v, page)
}
func (s *postRepoStub) ByAuthor(ctx context.Context, v feed.Viewer, author string, page feed.Page) ([]*models.Post, error) {
	return s.byAuthorFn(ctx, v, author, page)
}
func (s *postRepoStub) Search(ctx context.Context, v feed.Viewer, tsquery string, page feed.Page) ([]*models.Post, error) {
	return s.searchFn(ctx, v, tsquery, page)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, hash string) error {
	return s.incrementViewsFn(ctx, hash)
}
func (s *postRepoStub) UpdateFields(ctx context.Context, author, hash string, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, author, hash, fields)
}
func (s *postRepoStub) Delete(ctx context.Context, author, hash string) error {
	return s.deleteFn(ctx, author, hash)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error {
			return nil
		},
		getByHashFn: func(_ context.Context, _ feed.Viewer, h string) (*models.Post, error) {
			return &models.Post{Hash: h}, nil
		},
		feedFn: func(_ context.Context, _ feed.Viewer, _ feed.Page) ([]*models.Post, error) {
			return nil, nil
		},
		byAuthorFn: func(_ context.Context, _ feed.Viewer, _ string, _ feed.Page) ([]*models.Post, error) {
			return nil, nil
		},
		searchFn: func(_ context.Context, _ feed.Viewer, _ string, _ feed.Page) ([]*models.Post, error) {
			return nil, nil
		},
		incrementViewsFn: func(_ context.Context, _ string) error {
			return nil
		},
		updateFieldsFn: func(_ context.Context, _, _ string, _ map[string]interface{}) error {
			return nil
		},
		deleteFn: func(_ context.Context, _, _ string) error {
			return nil
		},
	}
}

// accountRepoStub is a stub for repository.AccountRepository.
type accountRepoStub struct {
	createFn       func(context.Context, *models.Account) error
	getByHashFn    func(context.Context, string) (*models.Account, error)
	getByEmailFn   func(context.Context, string) (*models.Account, error)
	profileFn      func(context.Context, feed.Viewer, string) (*models.Account, error)
	existsFn       func(context.Context, string) (bool, error)
	trendingFn     func(context.Context, feed.Viewer, feed.Page) ([]*models.Account, error)
	followersFn    func(context.Context, feed.Viewer, string, feed.Page) ([]*models.Account, error)
	followingFn    func(context.Context, feed.Viewer, string, feed.Page) ([]*models.Account, error)
	searchFn       func(context.Context, feed.Viewer, string, feed.Page) ([]*models.Account, error)
	updateFieldsFn func(context.Context, string, map[string]interface{}) error
}

func (s *accountRepoStub) Create(ctx context.Context, a *models.Account) error {
	return s.createFn(ctx, a)
}
func (s *accountRepoStub) GetByHash(ctx context.Context, hash string) (*models.Account, error) {
	return s.getByHashFn(ctx, hash)
}
func (s *accountRepoStub) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *accountRepoStub) Profile(ctx context.Context, v feed.Viewer, hash string) (*models.Account, error) {
	return s.profileFn(ctx, v, hash)
}
func (s *accountRepoStub) Exists(ctx context.Context, hash string) (bool, error) {
	return s.existsFn(ctx, hash)
}
func (s *accountRepoStub) Trending(ctx context.Context, v feed.Viewer, page feed.Page) ([]*models.Account, error) {
	return s.trendingFn(ctx, v, page)
}
func (s *accountRepoStub) Followers(ctx context.Context, v feed.Viewer, subject string, page feed.Page) ([]*models.Account, error) {
	return s.followersFn(ctx, v, subject, page)
}
func (s *accountRepoStub) Following(ctx context.Context, v feed.Viewer, subject string, page feed.Page) ([]*models.Account, error) {
	return s.followingFn(ctx, v, subject, page)
}
func (s *accountRepoStub) Search(ctx context.Context, v feed.Viewer, tsquery string, page feed.Page) ([]*models.Account, error) {
	return s.searchFn(ctx, v, tsquery, page)
}
func (s *accountRepoStub) UpdateFields(ctx context.Context, hash string, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, hash, fields)
}

func noopAccountRepo() *accountRepoStub {
	return &accountRepoStub{
		createFn: func(_ context.Context, _ *models.Account) error {
			return nil
		},
		getByHashFn: func(_ context.Context, h string) (*models.Account, error) {
			return nil, models.NewNotFoundError("Account", h)
		},
		getByEmailFn: func(_ context.Context, e string) (*models.Account, error) {
			return nil, models.NewNotFoundError("Account", e)
		},
		profileFn: func(_ context.Context, _ feed.Viewer, h string) (*models.Account, error) {
			return &models.Account{Hash: h}, nil
		},
		existsFn: func(_ context.Context, _ string) (bool, error) {
			return true, nil
		},
		trendingFn: func(_ context.Context, _ feed.Viewer, _ feed.Page) ([]*models.Account, error) {
			return nil, nil
		},
		followersFn: func(_ context.Context, _ feed.Viewer, _ string, _ feed.Page) ([]*models.Account, error) {
			return nil, nil
		},
		followingFn: func(_ context.Context, _ feed.Viewer, _ string, _ feed.Page) ([]*models.Account, error) {
			return nil, nil
		},
		searchFn: func(_ context.Context, _ feed.Viewer, _ string, _ feed.Page) ([]*models.Account, error) {
			return nil, nil
		},
		updateFieldsFn: func(_ context.Context, _ string, _ map[string]interface{}) error {
			return nil
		},
	}
}

// connectionRepoStub is a stub for repository.ConnectionRepository.
type connectionRepoStub struct {
	toggleFn      func(context.Context, string, string) (*models.ToggleResult, error)
	isFollowingFn func(context.Context, string, string) (bool, error)
}

func (s *connectionRepoStub) Toggle(ctx context.Context, from, to string) (*models.ToggleResult, error) {
	return s.toggleFn(ctx, from, to)
}
func (s *connectionRepoStub) IsFollowing(ctx context.Context, from, to string) (bool, error) {
	return s.isFollowingFn(ctx, from, to)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// windowed serves the slice the way LIMIT/OFFSET would.
func windowed[T any](all []T, page feed.Page) []T {
	start := page.Offset()
	if start >= len(all) {
		return nil
	}
	end := start + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
