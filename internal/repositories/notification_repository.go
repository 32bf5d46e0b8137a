package repositories

import (
	"github.com/muntanyers/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	ListForUser(userID uint) ([]models.NotificationView, error)
	MarkAllRead(userID uint) error
	GetUnreadCount(userID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository backed by gorm
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// ListForUser returns the user's 50 most recent notifications joined with the
// originator's username and the referenced post's content. Newest first;
// rows created in the same instant come back in insertion order. The joins
// are outer so a notification survives its originator or post being deleted.
func (r *notificationRepository) ListForUser(userID uint) ([]models.NotificationView, error) {
	var notifications []models.NotificationView
	err := r.db.Model(&models.Notification{}).
		Select(`notifications.id, notifications.user_id, notifications.from_user_id,
			users.username AS from_username, notifications.type, notifications.post_id,
			posts.content AS post_content, notifications.read, notifications.created_at`).
		Joins("LEFT JOIN users ON users.id = notifications.from_user_id").
		Joins("LEFT JOIN posts ON posts.id = notifications.post_id").
		Where("notifications.user_id = ?", userID).
		Order("notifications.created_at DESC, notifications.id ASC").
		Limit(50).
		Scan(&notifications).Error
	return notifications, err
}

// MarkAllRead flips every unread notification to read. Idempotent: running it
// with nothing unread succeeds and changes nothing.
func (r *notificationRepository) MarkAllRead(userID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (r *notificationRepository) GetUnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}
