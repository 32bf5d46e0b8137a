package models

import "time"

// Notification types emitted by the relationship ledger and content actions.
const (
	NotificationFollowRequest  = "follow_request"
	NotificationFollowAccepted = "follow_accepted"
	NotificationLike           = "like"
	NotificationComment        = "comment"
)

// Notification represents a user notification. Rows are append-only: the
// only mutation ever applied is flipping Read to true. FromUserID and PostID
// are weak references (no foreign key) so a notification survives its
// originator or post being deleted.
type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index"` // recipient
	FromUserID uint      `json:"from_user_id" gorm:"index"`
	Type       string    `json:"type" gorm:"size:30;index"` // follow_request, follow_accepted, like, comment
	PostID     *uint     `json:"post_id,omitempty"`
	Read       bool      `json:"read" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// NotificationView is a notification joined with its originator's username
// and, when the notification references a post, that post's content.
type NotificationView struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	FromUserID   uint      `json:"from_user_id"`
	FromUsername string    `json:"from_username"`
	Type         string    `json:"type"`
	PostID       *uint     `json:"post_id,omitempty"`
	PostContent  *string   `json:"post_content,omitempty"`
	Read         bool      `json:"read"`
	CreatedAt    time.Time `json:"created_at"`
}
