package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest creates an account and opens a session for it.
type RegisterRequest struct {
	Name     string `json:"name" validate:"notblank,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest overwrites the editable profile fields. The password is kept.
type UpdateProfileRequest struct {
	Name      string `json:"name" validate:"notblank,max=120"`
	Email     string `json:"email" validate:"required,email"`
	CRMV      string `json:"crmv" validate:"max=40"`
	Phone     string `json:"phone" validate:"max=40"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

// AuthResponse returns the issued access token and the session user.
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	User        UserInfo  `json:"user"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}
