package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happychat/chat-service/internal/apperror"
	"github.com/happychat/chat-service/internal/validation"
)

type samplePayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

func TestCheck_ReportsJSONFieldNames(t *testing.T) {
	v := validation.New()

	err := validation.Check(v, samplePayload{})
	require.Error(t, err)

	var validationErr *apperror.RequestValidation
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Messages, "email should not be empty")
	assert.Contains(t, validationErr.Messages, "password should not be empty")
}

func TestCheck_MessagePerRule(t *testing.T) {
	tests := []struct {
		name    string
		payload samplePayload
		want    string
	}{
		{
			name:    "email format",
			payload: samplePayload{Email: "nope", Password: "password123"},
			want:    "email must be an email",
		},
		{
			name:    "password length",
			payload: samplePayload{Email: "a@b.co", Password: "123"},
			want:    "password must be longer than or equal to 6 characters",
		},
		{
			name:    "role enum",
			payload: samplePayload{Email: "a@b.co", Password: "password123", Role: "ROOT"},
			want:    "Role must be either ADMIN or USER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Check(validation.New(), tt.payload)
			require.Error(t, err)

			var validationErr *apperror.RequestValidation
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, []string{tt.want}, validationErr.Messages)
		})
	}
}

func TestCheck_ValidPayload(t *testing.T) {
	err := validation.Check(validation.New(), samplePayload{
		Email:    "a@b.co",
		Password: "password123",
		Role:     "ADMIN",
	})
	require.NoError(t, err)
}
