package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipebox/backend/internal/types"
)

// TokenTTL is how long an admin token stays valid.
const TokenTTL = 24 * time.Hour

// AuthService checks the shared API key and issues admin tokens.
type AuthService struct {
	jwtSecret  []byte
	apiKeyHash []byte
	now        func() time.Time
}

// NewAuthService creates an AuthService. An empty apiKey leaves write
// endpoints open.
func NewAuthService(jwtSecret, apiKey string) (*AuthService, error) {
	if jwtSecret == "" {
		return nil, errors.New("JWT secret is required")
	}
	s := &AuthService{jwtSecret: []byte(jwtSecret), now: time.Now}
	if apiKey != "" {
		hash, err := bcrypt.GenerateFromPassword(keyDigest(apiKey), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash API key: %w", err)
		}
		s.apiKeyHash = hash
	}
	return s, nil
}

// RequiresAPIKey reports whether an API key is configured.
func (s *AuthService) RequiresAPIKey() bool {
	return len(s.apiKeyHash) > 0
}

// VerifyAPIKey returns ErrInvalidAPIKey unless key matches the configured
// key. Any key passes when none is configured.
func (s *AuthService) VerifyAPIKey(key string) error {
	if !s.RequiresAPIKey() {
		return nil
	}
	if key == "" || bcrypt.CompareHashAndPassword(s.apiKeyHash, keyDigest(key)) != nil {
		return ErrInvalidAPIKey
	}
	return nil
}

// IssueToken exchanges a valid API key for an admin token.
func (s *AuthService) IssueToken(apiKey string) (*types.TokenResponse, error) {
	if err := s.VerifyAPIKey(apiKey); err != nil {
		return nil, err
	}

	now := s.now()
	expires := now.Add(TokenTTL)
	token, err := s.GenerateToken(&types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Role: types.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}
	return &types.TokenResponse{Token: token, ExpiresAt: expires}, nil
}

// GenerateToken signs claims with HS256.
func (s *AuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses an admin token and checks its signature, expiry and
// role.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Role != types.RoleAdmin {
		return nil, errors.New("insufficient role")
	}
	return claims, nil
}

// keyDigest shortens keys to fit bcrypt's 72 byte input limit.
func keyDigest(key string) []byte {
	sum := sha256.Sum256([]byte(key))
	return []byte(hex.EncodeToString(sum[:]))
}
