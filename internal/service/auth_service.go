package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"hospital/internal/auth"
	apperrors "hospital/internal/errors"
	"hospital/internal/model"
	"hospital/internal/repository"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(subject, email string) (string, error)
}

// RegisterInput is a validated self-registration.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Session is the result of a successful registration or login.
type Session struct {
	Token string
	User  *model.User
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
}

type authService struct {
	users  repository.UserRepository
	tokens TokenIssuer
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a user with the default role and signs it in.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "check email")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := &model.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, errors.Wrap(err, "create user")
	}

	return s.session(user)
}

// Login checks credentials and issues a token.
func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.session(user)
}

func (s *authService) session(user *model.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "issue token")
	}
	return &Session{Token: token, User: user}, nil
}
