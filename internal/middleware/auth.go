// Package middleware provides authentication, logging, rate limiting and tracing middleware for the API.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// ErrNoToken is returned by TokenFromHeader when no Authorization header is sent.
var ErrNoToken = errors.New("no bearer token")

// Claims is the parsed, validated content of an access token.
type Claims struct {
	Account   string
	JTI       string
	ExpiresAt time.Time
}

// RevokedKey is the redis key marking a token id as logged out.
func RevokedKey(jti string) string {
	return "blacklist:" + jti
}

// IssueToken signs an HS256 access token for the account hash.
func IssueToken(accountHash string) (string, Claims, error) {
	if cfg == nil {
		return "", Claims{}, errors.New("middleware not initialized")
	}
	now := time.Now()
	exp := now.Add(cfg.TokenTTL())
	jti := fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8])

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": accountHash,
		"iss": cfg.JWTIssuer,
		"aud": cfg.JWTAudience,
		"exp": exp.Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": jti,
	})
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, Claims{Account: accountHash, JTI: jti, ExpiresAt: exp}, nil
}

// ParseToken validates signature, time claims, issuer and audience.
func ParseToken(tokenString string) (Claims, error) {
	if cfg == nil {
		return Claims{}, errors.New("middleware not initialized")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.JWTIssuer))
	}
	if cfg.JWTAudience != "" {
		opts = append(opts, jwt.WithAudience(cfg.JWTAudience))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid token claims")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Claims{}, errors.New("token missing subject")
	}

	out := Claims{Account: sub}
	if jti, ok := claims["jti"].(string); ok {
		out.JTI = jti
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// TokenFromHeader extracts the bearer token. It returns ErrNoToken when the header is absent.
func TokenFromHeader(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrNoToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}

func isRevoked(ctx context.Context, rdb *redis.Client, jti string) bool {
	if rdb == nil || jti == "" {
		return false
	}
	n, err := rdb.Exists(ctx, RevokedKey(jti)).Result()
	return err == nil && n > 0
}

// authenticate resolves the caller. A missing header yields ok=false with no error.
func authenticate(c *fiber.Ctx, rdb *redis.Client) (Claims, bool, error) {
	raw, err := TokenFromHeader(c)
	if errors.Is(err, ErrNoToken) {
		return Claims{}, false, nil
	}
	if err != nil {
		return Claims{}, false, err
	}
	claims, err := ParseToken(raw)
	if err != nil {
		return Claims{}, false, err
	}
	if isRevoked(c.UserContext(), rdb, claims.JTI) {
		return Claims{}, false, errors.New("token revoked")
	}
	return claims, true, nil
}

func bindIdentity(c *fiber.Ctx, claims Claims) {
	c.Locals(LocalAccount, claims.Account)
	c.Locals("jti", claims.JTI)
	c.Locals("tokenExp", claims.ExpiresAt)
	c.SetUserContext(context.WithValue(c.UserContext(), AccountKey, claims.Account))
}

// AuthRequired rejects requests without a valid, unrevoked bearer token.
func AuthRequired(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok, err := authenticate(c, rdb)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError("Invalid or expired token"))
		}
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError("Authorization header required"))
		}
		bindIdentity(c, claims)
		return c.Next()
	}
}

// OptionalIdentity lets anonymous requests through but still rejects a token that is present and invalid.
func OptionalIdentity(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok, err := authenticate(c, rdb)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError("Invalid or expired token"))
		}
		if ok {
			bindIdentity(c, claims)
		}
		return c.Next()
	}
}

// CallerHash returns the authenticated account hash, or "" for anonymous requests.
func CallerHash(c *fiber.Ctx) string {
	hash, _ := c.Locals(LocalAccount).(string)
	return hash
}
