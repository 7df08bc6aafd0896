package service

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/feed"
	"marketplace/internal/middleware"
	"marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func stubIssuer(hash string) (string, middleware.Claims, error) {
	return "token-" + hash, middleware.Claims{Account: hash, JTI: "j1", ExpiresAt: time.Unix(1900000000, 0)}, nil
}

func newTestAccountService(repo *accountRepoStub) *AccountService {
	svc := NewAccountService(repo, stubIssuer)
	svc.bcryptCost = bcrypt.MinCost
	return svc
}

func hashedPassword(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAccountService_Register(t *testing.T) {
	t.Parallel()

	var created *models.Account
	repo := noopAccountRepo()
	repo.createFn = func(_ context.Context, a *models.Account) error {
		created = a
		return nil
	}
	svc := newTestAccountService(repo)

	res, err := svc.Register(context.Background(), RegisterInput{Name: " Ann ", Email: "Ann@Example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Ann", created.Name)
	assert.Equal(t, "ann@example.com", created.Email)
	assert.NotEqual(t, "secret1", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret1")))
	assert.NotEmpty(t, created.Hash)
	assert.Equal(t, "token-"+created.Hash, res.Token)
	assert.True(t, res.Account.You)
}

func TestAccountService_RegisterValidation(t *testing.T) {
	t.Parallel()

	svc := newTestAccountService(noopAccountRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"short name", RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"}},
		{"bad email", RegisterInput{Name: "Ann", Email: "nope", Password: "secret1"}},
		{"short password", RegisterInput{Name: "Ann", Email: "a@example.com", Password: "123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.input)
			assertAppErrorCode(t, err, models.CodeValidation)
		})
	}
}

func TestAccountService_RegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := noopAccountRepo()
	repo.createFn = func(_ context.Context, _ *models.Account) error {
		return models.NewConflictError("An account with this email already exists")
	}
	svc := newTestAccountService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ann", Email: "a@example.com", Password: "secret1"})
	assertAppErrorCode(t, err, models.CodeConflict)
}

func TestAccountService_Login(t *testing.T) {
	t.Parallel()

	stored := &models.Account{Hash: "h1", Email: "ann@example.com", Password: hashedPassword(t, "secret1")}
	repo := noopAccountRepo()
	repo.getByEmailFn = func(_ context.Context, email string) (*models.Account, error) {
		if email == stored.Email {
			return stored, nil
		}
		return nil, models.NewNotFoundError("Account", email)
	}
	repo.getByHashFn = func(_ context.Context, hash string) (*models.Account, error) {
		if hash == stored.Hash {
			return stored, nil
		}
		return nil, models.NewNotFoundError("Account", hash)
	}
	svc := newTestAccountService(repo)
	ctx := context.Background()

	res, err := svc.Login(ctx, LoginInput{Identifier: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "token-h1", res.Token)
	assert.Equal(t, time.Unix(1900000000, 0), res.ExpiresAt)

	_, err = svc.Login(ctx, LoginInput{Identifier: "h1", Password: "secret1"})
	require.NoError(t, err)

	_, wrongPw := svc.Login(ctx, LoginInput{Identifier: "ann@example.com", Password: "nope-nope"})
	_, unknown := svc.Login(ctx, LoginInput{Identifier: "zed@example.com", Password: "secret1"})
	assertAppErrorCode(t, wrongPw, models.CodeUnauthorized)
	assertAppErrorCode(t, unknown, models.CodeUnauthorized)
	assert.Equal(t, wrongPw.Error(), unknown.Error())

	_, err = svc.Login(ctx, LoginInput{})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestAccountService_GetProfile(t *testing.T) {
	t.Parallel()

	repo := noopAccountRepo()
	repo.profileFn = func(_ context.Context, v feed.Viewer, hash string) (*models.Account, error) {
		return &models.Account{
			Hash:        hash,
			Email:       hash + "@example.com",
			Contact:     &models.Contact{Phone: "555"},
			IsFollowing: v.Kind() == feed.Other,
		}, nil
	}
	svc := newTestAccountService(repo)
	ctx := context.Background()

	self, err := svc.GetProfile(ctx, "ann", "ann")
	require.NoError(t, err)
	assert.True(t, self.You)
	assert.False(t, self.IsFollowing)
	assert.Equal(t, "ann@example.com", self.Email)
	assert.NotNil(t, self.Contact)

	other, err := svc.GetProfile(ctx, "bob", "ann")
	require.NoError(t, err)
	assert.False(t, other.You)
	assert.True(t, other.IsFollowing)
	assert.Empty(t, other.Email)
	assert.Nil(t, other.Contact)

	anon, err := svc.GetProfile(ctx, "", "ann")
	require.NoError(t, err)
	assert.False(t, anon.You)
	assert.False(t, anon.IsFollowing)
	assert.Empty(t, anon.Email)

	_, err = svc.GetMe(ctx, "")
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}

func TestAccountService_Edits(t *testing.T) {
	t.Parallel()

	var updates []map[string]interface{}
	repo := noopAccountRepo()
	repo.updateFieldsFn = func(_ context.Context, hash string, fields map[string]interface{}) error {
		assert.Equal(t, "ann", hash)
		updates = append(updates, fields)
		return nil
	}
	svc := newTestAccountService(repo)
	ctx := context.Background()

	me, err := svc.EditName(ctx, "ann", "  Ann Lee ")
	require.NoError(t, err)
	assert.True(t, me.You)

	_, err = svc.EditEmail(ctx, "ann", "NEW@example.com")
	require.NoError(t, err)
	_, err = svc.EditBio(ctx, "ann", "Selling bikes")
	require.NoError(t, err)
	_, err = svc.EditPicture(ctx, "ann", "https://cdn.example.com/me.png")
	require.NoError(t, err)
	_, err = svc.EditContact(ctx, "ann", models.Contact{Website: "https://ann.example.com"})
	require.NoError(t, err)

	require.Len(t, updates, 5)
	assert.Equal(t, "Ann Lee", updates[0]["name"])
	assert.Equal(t, "new@example.com", updates[1]["email"])

	_, err = svc.EditPicture(ctx, "ann", "not a url")
	assertAppErrorCode(t, err, models.CodeValidation)
	_, err = svc.EditName(ctx, "", "Ann")
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}

func TestAccountService_EditPassword(t *testing.T) {
	t.Parallel()

	var newHash string
	repo := noopAccountRepo()
	repo.getByHashFn = func(_ context.Context, hash string) (*models.Account, error) {
		return &models.Account{Hash: hash, Password: hashedPassword(t, "secret1")}, nil
	}
	repo.updateFieldsFn = func(_ context.Context, _ string, fields map[string]interface{}) error {
		newHash = fields["password"].(string)
		return nil
	}
	svc := newTestAccountService(repo)
	ctx := context.Background()

	err := svc.EditPassword(ctx, "ann", "wrong", "secret2")
	assertAppErrorCode(t, err, models.CodeUnauthorized)

	err = svc.EditPassword(ctx, "ann", "secret1", "123")
	assertAppErrorCode(t, err, models.CodeValidation)

	require.NoError(t, svc.EditPassword(ctx, "ann", "secret1", "secret2"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("secret2")))
}
