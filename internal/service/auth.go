package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/college-order-service/config"
	"github.com/guttosm/college-order-service/internal/domain/dto"
)

// AdminRole is the only role an issued token carries.
const AdminRole = "admin"

const tokenIssuer = "college-order-service"

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken is returned when token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrAdminDisabled is returned when no administrator is configured.
	ErrAdminDisabled = errors.New("admin login is not configured")
)

// ClaimsWithJWT extends dto.Claims with JWT RegisteredClaims for token generation.
type ClaimsWithJWT struct {
	dto.Claims
	jwt.RegisteredClaims
}

// AuthService authenticates the store administrator.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*dto.LoginResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
}

// AuthServiceImpl implements AuthService against a single configured
// administrator whose password is stored as a bcrypt hash.
type AuthServiceImpl struct {
	username     string
	passwordHash []byte
	secretKey    []byte
	tokenTTL     time.Duration
	now          func() time.Time
}

// NewAuthService creates an admin authentication service.
func NewAuthService(cfg config.AuthConfig) *AuthServiceImpl {
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &AuthServiceImpl{
		username:     cfg.AdminUsername,
		passwordHash: []byte(cfg.AdminPasswordHash),
		secretKey:    []byte(cfg.JWTSecretKey),
		tokenTTL:     ttl,
		now:          time.Now,
	}
}

// Login checks the credentials and returns a signed access token.
func (s *AuthServiceImpl) Login(_ context.Context, username, password string) (*dto.LoginResponse, error) {
	if s.username == "" || len(s.passwordHash) == 0 {
		return nil, ErrAdminDisabled
	}

	// The hash is compared even for a wrong username so both paths cost the same.
	hashErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) != 1 || hashErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
		Subject:   username,
	}, nil
}

// ValidateToken validates an access token and returns its claims.
func (s *AuthServiceImpl) ValidateToken(_ context.Context, tokenString string) (*dto.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ClaimsWithJWT{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*ClaimsWithJWT)
	if !ok || !token.Valid || claims.Role != AdminRole {
		return nil, ErrInvalidToken
	}
	return &claims.Claims, nil
}

func (s *AuthServiceImpl) generateToken(username string) (string, error) {
	now := s.now()
	claims := ClaimsWithJWT{
		Claims: dto.Claims{
			Username: username,
			Role:     AdminRole,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}
