// Package auth implements the single-admin login flow: a bcrypt-checked
// password exchanged for a short-lived HS256 JWT.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaadly/vaadly/internal/config"
	"github.com/vaadly/vaadly/internal/domain"
)

const issuer = "vaadly"

// Claims is the JWT payload for an admin session.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Service issues and verifies admin tokens.
type Service struct {
	secret    string
	adminHash string
	accessTTL time.Duration
}

func NewService(cfg config.AuthConfig) *Service {
	return &Service{
		secret:    cfg.JWTSecret,
		adminHash: cfg.AdminPasswordHash,
		accessTTL: cfg.AccessTTL,
	}
}

// Login checks the admin password against the configured bcrypt hash and
// returns a signed access token with its expiry.
func (s *Service) Login(password string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminHash), []byte(password)); err != nil {
		return "", time.Time{}, fmt.Errorf("auth.Login: %w", domain.ErrUnauthorized)
	}

	now := time.Now()
	expiresAt := now.Add(s.accessTTL)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    issuer,
		},
		Role: "admin",
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth.Login: sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates an access token.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(s.secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithIssuer(issuer))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("auth.Verify: %w", domain.ErrUnauthorized)
	}
	return claims, nil
}
