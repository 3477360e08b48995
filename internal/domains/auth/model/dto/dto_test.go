package dto_test

import (
	"garagebook/infras/jwt"
	"garagebook/internal/domains/auth/model/dto"
	"garagebook/shared/constant"
	"garagebook/shared/validator"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		expected string
	}{
		{name: "defaults to customer", role: "", expected: constant.RoleCustomer},
		{name: "garage kept", role: constant.RoleGarage, expected: constant.RoleGarage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.RegisterRequest{Name: "Ada", Email: "ada@mobile.test", Password: "spanner-2026", Role: tt.role}

			user := req.ToUserModel("hashed")

			_, err := uuid.Parse(user.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, user.Role)
			assert.Equal(t, "hashed", user.Password)
			assert.Equal(t, "ada@mobile.test", user.CreatedBy)
			assert.False(t, user.CreatedAt.IsZero())
		})
	}
}

func TestRegisterRequest_RejectsAdmin(t *testing.T) {
	req := dto.RegisterRequest{Name: "Mallory", Email: "mallory@mobile.test", Password: "spanner-2026", Role: constant.RoleAdmin}

	assert.Error(t, validator.ValidateStruct(&req))
}

func TestChangePasswordRequest_MustDiffer(t *testing.T) {
	req := dto.ChangePasswordRequest{CurrentPassword: "spanner-2026", NewPassword: "spanner-2026"}

	assert.Error(t, validator.ValidateStruct(&req))

	req.NewPassword = "wrench-2027"
	assert.NoError(t, validator.ValidateStruct(&req))
}

func TestFromTokenPair(t *testing.T) {
	pair := &jwt.TokenPair{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900}

	var login dto.LoginResponse
	login.FromTokenPair(pair)

	var refresh dto.RefreshTokenResponse
	refresh.FromTokenPair(pair)

	assert.Equal(t, dto.RefreshTokenResponse{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900}, refresh)
	assert.Equal(t, "a", login.AccessToken)
	assert.Equal(t, int64(900), login.ExpiresIn)
}
