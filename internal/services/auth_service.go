package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"velodrive/internal/caching"
	"velodrive/internal/common"
	"velodrive/internal/models"
	"velodrive/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer       = "velodrive-auth"
	revokedKeyPrefix  = "velodrive:revoked:"
	invalidCredsError = "Invalid login or password"
)

// AuthService handles login and JWT access tokens
type AuthService interface {
	Login(ctx context.Context, login, password string) (*models.AuthResult, error)
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
	Logout(ctx context.Context, claims *TokenClaims) error
	CurrentUser(ctx context.Context, userID int64) (*models.User, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	cacheSvc  caching.CacheService
	jwtSecret []byte
	tokenTTL  int // Access token TTL in seconds
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new authentication service. cacheSvc may be nil;
// logout then cannot revoke tokens before they expire.
func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTLSeconds int) AuthService {
	return &authService{
		userRepo:  userRepo,
		cacheSvc:  cacheSvc,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTLSeconds,
	}
}

// Login checks the credentials and issues an access token.
func (s *authService) Login(ctx context.Context, login, password string) (*models.AuthResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, common.NewValidationError("login", "Login and password are required")
	}

	user, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewUnauthorizedError(invalidCredsError)
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(user.PasswordPlain), []byte(password)) != 1 {
		log.Printf("AUTH_SERVICE: failed login for %s", login)
		return nil, common.NewUnauthorizedError(invalidCredsError)
	}

	return s.issueToken(user)
}

func (s *authService) issueToken(user *models.User) (*models.AuthResult, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	claims := TokenClaims{
		UserID: user.ID,
		Role:   user.Role().Code(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	return &models.AuthResult{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   s.tokenTTL,
		TokenID:     tokenID,
		IssuedAt:    now,
		User:        user,
	}, nil
}

// ValidateToken parses an HS256 access token and rejects revoked ones.
func (s *authService) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return nil, common.NewUnauthorizedError("Invalid or expired token")
	}
	if s.isRevoked(ctx, claims.ID) {
		return nil, common.NewUnauthorizedError("Token has been revoked")
	}
	return claims, nil
}

// Logout revokes the token until its natural expiry.
func (s *authService) Logout(ctx context.Context, claims *TokenClaims) error {
	if claims == nil || claims.ID == "" {
		return common.ErrUnauthorized
	}
	if s.cacheSvc == nil {
		return nil
	}

	ttl := time.Duration(s.tokenTTL) * time.Second
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.cacheSvc.SetString(ctx, revokedKeyPrefix+claims.ID, "1", ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// isRevoked reports whether the token id was logged out. Cache failures
// count as not revoked.
func (s *authService) isRevoked(ctx context.Context, tokenID string) bool {
	if s.cacheSvc == nil || tokenID == "" {
		return false
	}
	val, err := s.cacheSvc.GetString(ctx, revokedKeyPrefix+tokenID)
	if err != nil {
		log.Printf("AUTH_SERVICE: revocation lookup failed: %v", err)
		return false
	}
	return val != ""
}

func (s *authService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	if userID <= 0 {
		return nil, common.ErrUnauthorized
	}
	return s.userRepo.GetByID(ctx, userID)
}
