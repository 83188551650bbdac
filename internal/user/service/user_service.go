package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ridloal/cart-approval-api/internal/platform/logger"
	"github.com/ridloal/cart-approval-api/internal/user/domain"
	"github.com/ridloal/cart-approval-api/internal/user/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserAlreadyExists  = errors.New("user with this username or email already exists")
	ErrInvalidUsername    = errors.New("username can only contain letters, numbers, and underscores")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserInactive       = errors.New("user account is deactivated")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type UserService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
	// Authenticate resolves a bearer token to its active user. It fails for
	// missing, malformed or expired tokens and for deactivated users.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type userService struct {
	repo      repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUserService(repo repository.UserRepository, jwtSecret string, tokenTTL time.Duration) UserService {
	if jwtSecret == "" {
		logger.Warn("JWT_SECRET_KEY not set, using default insecure key")
		jwtSecret = "your-very-secret-key-for-jwt" // fallback
	}
	return &userService{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if !usernamePattern.MatchString(req.Username) {
		return nil, ErrInvalidUsername
	}

	role := req.Role
	if role == "" {
		role = domain.RoleCustomer
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Register: failed to hash password", err)
		return nil, fmt.Errorf("could not process registration: %w", err)
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		IsActive:     true,
	}

	err = s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserConflict) {
			return nil, ErrUserAlreadyExists
		}
		logger.Error("Register: failed to create user in repo", err)
		return nil, fmt.Errorf("could not save user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &domain.AuthResponse{User: *user, Token: token}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		logger.Error("Login: failed to get user by email", err)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &domain.AuthResponse{User: *user, Token: token}, nil
}

func (s *userService) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		logger.Error("Authenticate: failed to load user", err)
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) issueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		logger.Error("issueToken: failed to sign token", err)
		return "", fmt.Errorf("could not generate token: %w", err)
	}
	return signed, nil
}
