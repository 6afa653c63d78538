// Package auth issues and verifies the admin credentials used by the API.
// Passwords are stored as bcrypt hashes; sessions are stateless HS256 JWTs.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"hotel-occupancy-backend/internal/model"
	"hotel-occupancy-backend/internal/store"
)

// ErrInvalidCredentials is returned when the email/password pair does not
// match. It deliberately does not distinguish an unknown email from a wrong
// password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service handles admin accounts and token issuance.
type Service struct {
	store      store.Store
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewService builds the auth service.
func NewService(s store.Store, secret string, tokenTTL time.Duration, bcryptCost int) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		store:      s,
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new admin account.
func (s *Service) Register(ctx context.Context, email, password, name string) (*model.Admin, error) {
	switch {
	case email == "":
		return nil, fmt.Errorf("email is required: %w", store.ErrInvalidInput)
	case name == "":
		return nil, fmt.Errorf("name is required: %w", store.ErrInvalidInput)
	case len(password) < 8:
		return nil, fmt.Errorf("password must have at least 8 characters: %w", store.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.Admin{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Login verifies the credentials and returns the admin with a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Admin, string, error) {
	admin, err := s.store.AdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(admin.ID)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// Admin returns the account behind an authenticated token subject.
func (s *Service) Admin(ctx context.Context, id int64) (*model.Admin, error) {
	return s.store.AdminByID(ctx, id)
}

// GenerateToken signs an HS256 JWT for the given admin.
func (s *Service) GenerateToken(adminID int64) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", adminID),
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken parses and validates a token, returning the admin ID it was
// issued for.
func (s *Service) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("invalid token subject: %w", err)
	}
	var id int64
	if _, err := fmt.Sscanf(sub, "%d", &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid token subject %q", sub)
	}
	return id, nil
}
