package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:50"` // Ensure username is unique across all users
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  string    `json:"-"` // Store hashed password, ignore for JSON serialization
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	Private   bool      `json:"private" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest defines the request body for account registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for logging in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Bio      string `json:"bio" validate:"max=500"`
	Private  bool   `json:"private"`
}

// ChangePasswordRequest defines the request body for password changes
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// DeleteAccountRequest defines the request body for account deletion
type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// UserProfile is a user joined with aggregate counts and, when viewed by
// another account, the viewer's relationship to it.
type UserProfile struct {
	ID                uint      `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email,omitempty"`
	Bio               string    `json:"bio"`
	AvatarURL         string    `json:"avatar_url"`
	Private           bool      `json:"private"`
	CreatedAt         time.Time `json:"created_at"`
	PostCount         int64     `json:"post_count"`
	FollowerCount     int64     `json:"follower_count"`
	FollowingCount    int64     `json:"following_count"`
	IsFollowing       bool      `json:"is_following"`
	HasPendingRequest bool      `json:"has_pending_request"`
}

// UserSearchResult is the compact shape returned by user search
type UserSearchResult struct {
	ID            uint   `json:"id"`
	Username      string `json:"username"`
	AvatarURL     string `json:"avatar_url"`
	Bio           string `json:"bio"`
	FollowerCount int64  `json:"follower_count"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
