package user

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/happychat/chat-service/internal/validation"
)

// CreateUserInput is the registration payload. Unknown JSON fields are
// dropped during decoding; only the whitelisted fields below exist.
type CreateUserInput struct {
	Name     string `json:"name" validate:"required"`
	LastName string `json:"lastName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

// Hasher turns a plaintext password into its stored form.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

type Service interface {
	Register(ctx context.Context, input CreateUserInput) (*User, error)
}

type service struct {
	repo     Repository
	hasher   Hasher
	validate *validator.Validate
}

func NewService(repo Repository, hasher Hasher) Service {
	return &service{
		repo:     repo,
		hasher:   hasher,
		validate: validation.New(),
	}
}

// Register validates the payload, hashes the password and persists the
// user. Validation runs strictly first: a rejected payload touches
// neither the hasher nor the database.
func (s *service) Register(ctx context.Context, input CreateUserInput) (*User, error) {
	if err := validation.Check(s.validate, input); err != nil {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role := Role(input.Role)
	if input.Role == "" {
		role = RoleUser
	}

	u := &User{
		Name:         input.Name,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if _, err := s.repo.Create(ctx, u); err != nil {
		log.Warn().Err(err).Str("email", input.Email).Msg("Failed to create user in repository")
		return nil, err
	}

	return u, nil
}
