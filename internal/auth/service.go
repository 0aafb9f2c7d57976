package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/happychat/chat-service/internal/apperror"
	"github.com/happychat/chat-service/internal/user"
	"github.com/happychat/chat-service/internal/validation"
)

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserGetter is the slice of the user repository the login flow needs.
type UserGetter interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Verifier checks a plaintext password against a stored hash.
type Verifier interface {
	Verify(plaintext, hashed string) bool
}

// Issuer signs a bearer token for an authenticated email.
type Issuer interface {
	Issue(email string) (string, error)
}

type Service interface {
	Login(ctx context.Context, input LoginInput) (string, error)
}

type service struct {
	users    UserGetter
	verifier Verifier
	issuer   Issuer
	validate *validator.Validate
}

func NewService(users UserGetter, verifier Verifier, issuer Issuer) Service {
	return &service{
		users:    users,
		verifier: verifier,
		issuer:   issuer,
		validate: validation.New(),
	}
}

// Login authenticates the credentials and returns a signed token.
// Unknown email and wrong password fail with different messages but
// the same failure class; neither branch reveals which check tripped
// at the status level.
func (s *service) Login(ctx context.Context, input LoginInput) (string, error) {
	if err := validation.Check(s.validate, input); err != nil {
		return "", err
	}

	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", &apperror.Authentication{Reason: "User does not exist."}
		}
		return "", fmt.Errorf("failed to look up user by email: %w", err)
	}

	if !s.verifier.Verify(input.Password, existing.PasswordHash) {
		return "", &apperror.Authentication{Reason: "Password is incorrect."}
	}

	token, err := s.issuer.Issue(existing.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}
