package server

import (
	"context"

	"marketplace/internal/feed"
	"marketplace/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByHash(ctx context.Context, v feed.Viewer, hash string) (*models.Post, error) {
	args := m.Called(ctx, v, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Feed(ctx context.Context, v feed.Viewer, page feed.Page) ([]*models.Post, error) {
	args := m.Called(ctx, v, page)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) ByAuthor(ctx context.Context, v feed.Viewer, author string, page feed.Page) ([]*models.Post, error) {
	args := m.Called(ctx, v, author, page)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Search(ctx context.Context, v feed.Viewer, tsquery string, page feed.Page) ([]*models.Post, error) {
	args := m.Called(ctx, v, tsquery, page)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) IncrementViews(ctx context.Context, hash string) error {
	args := m.Called(ctx, hash)
	return args.Error(0)
}

func (m *MockPostRepository) UpdateFields(ctx context.Context, author, hash string, fields map[string]interface{}) error {
	args := m.Called(ctx, author, hash, fields)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, author, hash string) error {
	args := m.Called(ctx, author, hash)
	return args.Error(0)
}

// MockAccountRepository is a mock of the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByHash(ctx context.Context, hash string) (*models.Account, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Profile(ctx context.Context, v feed.Viewer, hash string) (*models.Account, error) {
	args := m.Called(ctx, v, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Exists(ctx context.Context, hash string) (bool, error) {
	args := m.Called(ctx, hash)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Trending(ctx context.Context, v feed.Viewer, page feed.Page) ([]*models.Account, error) {
	args := m.Called(ctx, v, page)
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Followers(ctx context.Context, v feed.Viewer, subject string, page feed.Page) ([]*models.Account, error) {
	args := m.Called(ctx, v, subject, page)
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Following(ctx context.Context, v feed.Viewer, subject string, page feed.Page) ([]*models.Account, error) {
	args := m.Called(ctx, v, subject, page)
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Search(ctx context.Context, v feed.Viewer, tsquery string, page feed.Page) ([]*models.Account, error) {
	args := m.Called(ctx, v, tsquery, page)
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateFields(ctx context.Context, hash string, fields map[string]interface{}) error {
	args := m.Called(ctx, hash, fields)
	return args.Error(0)
}

// MockConnectionRepository is a mock of the ConnectionRepository interface
type MockConnectionRepository struct {
	mock.Mock
}

func (m *MockConnectionRepository) Toggle(ctx context.Context, from, to string) (*models.ToggleResult, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ToggleResult), args.Error(1)
}

func (m *MockConnectionRepository) IsFollowing(ctx context.Context, from, to string) (bool, error) {
	args := m.Called(ctx, from, to)
	return args.Bool(0), args.Error(1)
}
