package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"guidehub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

// Domain errors for auth flows.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrMissingField    = errors.New("name and password are required")
	ErrDuplicateName   = errors.New("name already exists")
)

// AuthService handles admin registration and session tokens.
type AuthService struct {
	adminRepo repository.Admins
	secret    []byte
	tokenTTL  time.Duration
}

func NewAuthService(repo repository.Admins, cfg AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		adminRepo: repo,
		secret:    []byte(cfg.Secret),
		tokenTTL:  ttl,
	}
}

// Register hashes the password and creates a new admin. Returns
// ErrMissingField on blank input and ErrDuplicateName if the name is taken.
func (s *AuthService) Register(ctx context.Context, name, password string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(password) == "" {
		return 0, ErrMissingField
	}

	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.adminRepo.Create(ctx, name, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return 0, ErrDuplicateName
		}
		return 0, err
	}
	return id, nil
}

// Claims defines the session token payload.
type Claims struct {
	jwt.RegisteredClaims
	AdminID int    `json:"admin_id"`
	Name    string `json:"name"`
}

// Login validates credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, name, password string) (string, error) {
	a, err := s.adminRepo.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	if a == nil {
		return "", ErrUserNotFound
	}

	if err := verifyPassword(a.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}

	return s.issueToken(a.ID, a.Name)
}

// ParseToken verifies a session token and returns the embedded identity.
func (s *AuthService) ParseToken(accessToken string) (Identity, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	return Identity{ID: claims.AdminID, Name: claims.Name}, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed session token for an admin
func (s *AuthService) issueToken(adminID int, name string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		AdminID: adminID,
		Name:    name,
	})
	return token.SignedString(s.secret)
}
