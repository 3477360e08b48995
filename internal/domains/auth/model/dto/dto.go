package dto

import (
	"garagebook/infras/jwt"
	userModel "garagebook/internal/domains/user/model"
	userDto "garagebook/internal/domains/user/model/dto"
	"garagebook/shared/constant"
	gModel "garagebook/shared/model"
	"garagebook/shared/timezone"

	"github.com/google/uuid"
)

// RegisterRequest creates a customer account unless garage is requested. Admins are provisioned out of band.
type RegisterRequest struct {
	Name     string `json:"name"           validate:"required,min=1,max=100"`
	Email    string `json:"email"          validate:"required,email"`
	Password string `json:"password"       validate:"required,min=8,max=72"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=customer garage"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	role := r.Role
	if role == "" {
		role = constant.RoleCustomer
	}

	now := timezone.Now()

	return userModel.User{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Email:    r.Email,
		Password: hashedPassword,
		Role:     role,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  r.Email,
			ModifiedBy: r.Email,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	TokenType    string               `json:"token_type"`
	ExpiresIn    int64                `json:"expires_in"`
	User         userDto.UserResponse `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type UpdatePassword struct {
	Password string `db:"password"`
}
