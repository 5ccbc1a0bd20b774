package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"kuisioner/internal/config"
	"kuisioner/internal/model"
	"kuisioner/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles creator authentication. Respondents never log in;
// they are identified by the email they submit with.
type AuthService struct {
	adminEmail    string
	adminPassword string
	jwtSecret     []byte
	users         repository.UserRepo
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config, users repository.UserRepo) *AuthService {
	return &AuthService{
		adminEmail:    cfg.AdminEmail,
		adminPassword: cfg.AdminPassword,
		jwtSecret:     []byte(cfg.JWTSecret),
		users:         users,
	}
}

// Login validates admin credentials and returns a signed creator token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	if email != s.adminEmail || password != s.adminPassword {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetOrCreate(ctx, email, "Administrator", model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	claims := &model.CreatorClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:  tokenString,
		UserID: user.ID,
		Role:   user.Role,
	}, nil
}

// ValidateToken validates a creator JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.CreatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.CreatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.CreatorClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
