package repositories

import (
	"testing"

	"github.com/muntanyers/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory database and migrates all models.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, private bool) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Private:  private,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, owner *models.User, content string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: owner.ID, Content: content, Type: "text"}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

// notificationsFor returns all notifications addressed to a user, optionally
// filtered by type.
func notificationsFor(t *testing.T, db *gorm.DB, userID uint, notifType string) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	q := db.Where("user_id = ?", userID)
	if notifType != "" {
		q = q.Where("type = ?", notifType)
	}
	if err := q.Find(&notifications).Error; err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	return notifications
}
