package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/acadsharsh/mockera12/internal/errs"
	"github.com/acadsharsh/mockera12/internal/models"
	"github.com/acadsharsh/mockera12/internal/repository"
	"github.com/acadsharsh/mockera12/pkg/auth"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, email, password, role string) (*RegisterResult, error)
}

type LoginResult struct {
	Token string
	Role  string
	Name  string
}

type RegisterResult struct {
	ID    uint64
	Email string
}

type authService struct {
	userRepo repository.UserRepository
	issuer   auth.TokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, issuer auth.TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, errs.ErrUserNotFound
	}

	// Stored credential is a bcrypt hash; comparison is constant time.
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errs.ErrInvalidPassword
	}

	token, err := s.issuer.IssueToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{
		Token: token,
		Role:  user.Role,
		Name:  user.DisplayName(),
	}, nil
}

func (s *authService) Register(ctx context.Context, email, password, role string) (*RegisterResult, error) {
	if !models.ValidRole(role) {
		return nil, errs.ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &RegisterResult{ID: user.ID, Email: user.Email}, nil
}
