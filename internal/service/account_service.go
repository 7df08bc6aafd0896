package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"marketplace/internal/feed"
	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/repository"
	"marketplace/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs an access token for an account hash.
type TokenIssuer func(accountHash string) (string, middleware.Claims, error)

// AccountService handles registration, login, profiles and profile edits.
type AccountService struct {
	accounts   repository.AccountRepository
	issue      TokenIssuer
	bcryptCost int
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput identifies the account by email or by hash.
type LoginInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Account   *models.Account `json:"account"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func NewAccountService(accounts repository.AccountRepository, issue TokenIssuer) *AccountService {
	return &AccountService{accounts: accounts, issue: issue, bcryptCost: bcrypt.DefaultCost}
}

var errInvalidCredentials = models.NewUnauthorizedError("Invalid credentials")

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := validation.NormalizeEmail(in.Email)
	if err := validation.ValidateName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	account := &models.Account{
		Hash:     models.NewHash(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return s.authenticated(account)
}

// Login answers unknown accounts and wrong passwords with the same error.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	identifier := strings.TrimSpace(in.Identifier)
	if identifier == "" || in.Password == "" {
		return nil, models.NewValidationError("Identifier and password are required")
	}

	var (
		account *models.Account
		err     error
	)
	if strings.Contains(identifier, "@") {
		account, err = s.accounts.GetByEmail(ctx, identifier)
	} else {
		account, err = s.accounts.GetByHash(ctx, identifier)
	}
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(in.Password)) != nil {
		return nil, errInvalidCredentials
	}
	return s.authenticated(account)
}

func (s *AccountService) authenticated(account *models.Account) (*AuthResult, error) {
	token, claims, err := s.issue(account.Hash)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	account.You = true
	return &AuthResult{Account: account, Token: token, ExpiresAt: claims.ExpiresAt}, nil
}

// GetProfile loads subjectHash as seen by callerHash. Only the owner sees email and contact.
func (s *AccountService) GetProfile(ctx context.Context, callerHash, subjectHash string) (*models.Account, error) {
	if strings.TrimSpace(subjectHash) == "" {
		return nil, models.NewValidationError("Account hash is required")
	}
	v := feed.ResolveViewer(callerHash, subjectHash)
	account, err := s.accounts.Profile(ctx, v, subjectHash)
	if err != nil {
		return nil, err
	}
	feed.AnnotateAccounts(v, []*models.Account{account})
	return account, nil
}

func (s *AccountService) GetMe(ctx context.Context, callerHash string) (*models.Account, error) {
	if callerHash == "" {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.GetProfile(ctx, callerHash, callerHash)
}

func (s *AccountService) EditName(ctx context.Context, callerHash, name string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.update(ctx, callerHash, map[string]interface{}{"name": name})
}

func (s *AccountService) EditBio(ctx context.Context, callerHash, bio string) (*models.Account, error) {
	bio = strings.TrimSpace(bio)
	if err := validation.ValidateBio(bio); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.update(ctx, callerHash, map[string]interface{}{"bio": bio})
}

func (s *AccountService) EditPicture(ctx context.Context, callerHash, picture string) (*models.Account, error) {
	picture = strings.TrimSpace(picture)
	if err := validation.ValidatePictureURL(picture); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.update(ctx, callerHash, map[string]interface{}{"picture": picture})
}

// EditEmail changes the login email; another account holding it is a conflict.
func (s *AccountService) EditEmail(ctx context.Context, callerHash, email string) (*models.Account, error) {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.update(ctx, callerHash, map[string]interface{}{"email": email, "verified": false})
}

func (s *AccountService) EditContact(ctx context.Context, callerHash string, contact models.Contact) (*models.Account, error) {
	if err := validation.ValidateContact(contact); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.update(ctx, callerHash, map[string]interface{}{"contact": contact})
}

// EditPassword requires the current password.
func (s *AccountService) EditPassword(ctx context.Context, callerHash, current, next string) error {
	if callerHash == "" {
		return models.NewUnauthorizedError("Authentication required")
	}
	account, err := s.accounts.GetByHash(ctx, callerHash)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(current)) != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}
	if err := validation.ValidatePassword(next); err != nil {
		return models.NewValidationError(err.Error())
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), s.bcryptCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.accounts.UpdateFields(ctx, callerHash, map[string]interface{}{"password": string(hashed)})
}

func (s *AccountService) update(ctx context.Context, callerHash string, fields map[string]interface{}) (*models.Account, error) {
	if callerHash == "" {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if err := s.accounts.UpdateFields(ctx, callerHash, fields); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}
	return s.GetMe(ctx, callerHash)
}
