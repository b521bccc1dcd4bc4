package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"askstack/internal/auth"
	apperrors "askstack/internal/errors"
	"askstack/internal/model"
	"askstack/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, req *model.SignupRequest) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	revoked    auth.RevocationStore
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, revoked auth.RevocationStore) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		revoked:    revoked,
	}
}

// Register creates a user with a salted password hash and issues a session.
// The raw password is never persisted.
func (s *authService) Register(ctx context.Context, req *model.SignupRequest) (*model.User, string, error) {
	existing, err := s.userRepo.FindByUsernameOrEmail(ctx, req.Username, req.Email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrUserExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.IssueSession(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and issues a session token. An unknown
// username and a wrong password fail differently on purpose: the original
// API distinguishes 404 from 401 here.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.IssueSession(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}

	return user, token, nil
}

// Logout revokes the session token for its remaining lifetime. A missing or
// invalid token means the caller was never logged in.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.VerifySession(token)
	if err != nil {
		return apperrors.ErrNotLoggedIn
	}

	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.revoked.Revoke(ctx, claims.ID, ttl)
}
