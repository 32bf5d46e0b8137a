package models

import "time"

// Post represents a feed post. LikesCount is denormalized from the likes
// table and recomputed transactionally on every like/unlike.
type Post struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"image_url"`
	VideoURL   string    `json:"video_url"`
	Type       string    `json:"type" gorm:"size:20;default:'text'"`
	LikesCount int64     `json:"likes_count" gorm:"default:0"`
	CreatedAt  time.Time `json:"timestamp" gorm:"index"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=1000"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	VideoURL string `json:"video_url" validate:"omitempty,url"`
	Type     string `json:"type" validate:"omitempty,oneof=text image video"`
}

// FeedPost is a post joined with its author and the viewer's like state.
type FeedPost struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	Username      string    `json:"username"`
	AvatarURL     string    `json:"avatar_url"`
	Content       string    `json:"content"`
	ImageURL      string    `json:"image_url"`
	VideoURL      string    `json:"video_url"`
	Type          string    `json:"type"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
	UserHasLiked  bool      `json:"user_has_liked"`
	CreatedAt     time.Time `json:"timestamp"`
}
