package repositories

import (
	"testing"

	"github.com/muntanyers/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLikePostNotifiesOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)

	bob := createTestUser(t, db, "bob", false)
	alice := createTestUser(t, db, "alice", false)
	post := createTestPost(t, db, bob, "first summit")

	require.NoError(t, repo.LikePost(alice.ID, post.ID))

	notifications := notificationsFor(t, db, bob.ID, models.NotificationLike)
	require.Len(t, notifications, 1)
	assert.Equal(t, alice.ID, notifications[0].FromUserID)
	require.NotNil(t, notifications[0].PostID)
	assert.Equal(t, post.ID, *notifications[0].PostID)
}

func TestLikePostTwiceIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)

	bob := createTestUser(t, db, "bob", false)
	alice := createTestUser(t, db, "alice", false)
	post := createTestPost(t, db, bob, "first summit")

	require.NoError(t, repo.LikePost(alice.ID, post.ID))
	require.NoError(t, repo.LikePost(alice.ID, post.ID))

	count, err := repo.GetLikesCountByPostID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var updated models.Post
	require.NoError(t, db.First(&updated, post.ID).Error)
	assert.Equal(t, int64(1), updated.LikesCount)

	// The duplicate like did not emit a second notification either.
	assert.Len(t, notificationsFor(t, db, bob.ID, models.NotificationLike), 1)
}

func TestLikeOwnPostNeverNotifies(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)

	bob := createTestUser(t, db, "bob", false)
	post := createTestPost(t, db, bob, "first summit")

	require.NoError(t, repo.LikePost(bob.ID, post.ID))

	assert.Empty(t, notificationsFor(t, db, bob.ID, ""))

	var updated models.Post
	require.NoError(t, db.First(&updated, post.ID).Error)
	assert.Equal(t, int64(1), updated.LikesCount)
}

func TestLikeMissingPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)

	alice := createTestUser(t, db, "alice", false)

	err := repo.LikePost(alice.ID, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUnlikeKeepsCounterConsistent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)

	bob := createTestUser(t, db, "bob", false)
	alice := createTestUser(t, db, "alice", false)
	post := createTestPost(t, db, bob, "first summit")

	require.NoError(t, repo.LikePost(alice.ID, post.ID))
	require.NoError(t, repo.UnlikePost(alice.ID, post.ID))

	var updated models.Post
	require.NoError(t, db.First(&updated, post.ID).Error)
	assert.Equal(t, int64(0), updated.LikesCount)

	// Unliking again must not drive the counter negative.
	require.NoError(t, repo.UnlikePost(alice.ID, post.ID))
	require.NoError(t, db.First(&updated, post.ID).Error)
	assert.Equal(t, int64(0), updated.LikesCount)

	// The like notification is never retracted.
	assert.Len(t, notificationsFor(t, db, bob.ID, models.NotificationLike), 1)
}

func TestHasUserLikedPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)

	bob := createTestUser(t, db, "bob", false)
	alice := createTestUser(t, db, "alice", false)
	post := createTestPost(t, db, bob, "first summit")

	liked, err := repo.HasUserLikedPost(alice.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, repo.LikePost(alice.ID, post.ID))

	liked, err = repo.HasUserLikedPost(alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}
