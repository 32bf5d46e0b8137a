package repositories

import (
	"testing"
	"time"

	"github.com/muntanyers/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListForUserJoinsAndOrders(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)

	bob := createTestUser(t, db, "bob", false)
	alice := createTestUser(t, db, "alice", false)
	post := createTestPost(t, db, bob, "cim del Pedraforca")

	earlier := time.Now().Add(-time.Hour)
	require.NoError(t, repo.CreateNotification(&models.Notification{
		UserID:     bob.ID,
		FromUserID: alice.ID,
		Type:       models.NotificationFollowRequest,
		CreatedAt:  earlier,
	}))
	postID := post.ID
	require.NoError(t, repo.CreateNotification(&models.Notification{
		UserID:     bob.ID,
		FromUserID: alice.ID,
		Type:       models.NotificationLike,
		PostID:     &postID,
	}))

	notifications, err := repo.ListForUser(bob.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	// Newest first.
	assert.Equal(t, models.NotificationLike, notifications[0].Type)
	assert.Equal(t, "alice", notifications[0].FromUsername)
	require.NotNil(t, notifications[0].PostContent)
	assert.Equal(t, "cim del Pedraforca", *notifications[0].PostContent)

	assert.Equal(t, models.NotificationFollowRequest, notifications[1].Type)
	assert.Nil(t, notifications[1].PostContent)
}

func TestListForUserScopedToRecipient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)

	bob := createTestUser(t, db, "bob", false)
	alice := createTestUser(t, db, "alice", false)

	require.NoError(t, repo.CreateNotification(&models.Notification{
		UserID:     bob.ID,
		FromUserID: alice.ID,
		Type:       models.NotificationFollowRequest,
	}))

	notifications, err := repo.ListForUser(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestListForUserSurvivesDeletedOriginator(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)

	bob := createTestUser(t, db, "bob", false)
	alice := createTestUser(t, db, "alice", false)

	require.NoError(t, repo.CreateNotification(&models.Notification{
		UserID:     bob.ID,
		FromUserID: alice.ID,
		Type:       models.NotificationFollowRequest,
	}))
	require.NoError(t, db.Delete(&models.User{}, alice.ID).Error)

	notifications, err := repo.ListForUser(bob.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Empty(t, notifications[0].FromUsername)
}

func TestListForUserLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)

	bob := createTestUser(t, db, "bob", false)
	alice := createTestUser(t, db, "alice", false)

	for i := 0; i < 60; i++ {
		require.NoError(t, repo.CreateNotification(&models.Notification{
			UserID:     bob.ID,
			FromUserID: alice.ID,
			Type:       models.NotificationFollowRequest,
		}))
	}

	notifications, err := repo.ListForUser(bob.ID)
	require.NoError(t, err)
	assert.Len(t, notifications, 50)
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)

	bob := createTestUser(t, db, "bob", false)
	alice := createTestUser(t, db, "alice", false)

	require.NoError(t, repo.CreateNotification(&models.Notification{
		UserID:     bob.ID,
		FromUserID: alice.ID,
		Type:       models.NotificationFollowRequest,
	}))
	require.NoError(t, repo.CreateNotification(&models.Notification{
		UserID:     bob.ID,
		FromUserID: alice.ID,
		Type:       models.NotificationFollowAccepted,
	}))

	count, err := repo.GetUnreadCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.MarkAllRead(bob.ID))

	count, err = repo.GetUnreadCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// A second run succeeds and changes nothing.
	require.NoError(t, repo.MarkAllRead(bob.ID))
	count, err = repo.GetUnreadCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
