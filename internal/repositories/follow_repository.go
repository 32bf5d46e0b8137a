package repositories

import (
	"time"

	"github.com/muntanyers/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository records follow edges and the notifications their
// transitions fan out.
type FollowRepository interface {
	RequestFollow(followerID, followingID uint) (models.FollowStatus, error)
	ResolveRequest(followingID, followerID uint, action models.FollowAction) error
	GetFollowers(userID uint) ([]models.User, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetPendingRequests(userID uint) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new FollowRepository backed by gorm
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// RequestFollow upserts the (follower, following) edge to the status the
// target's privacy flag dictates, and emits a follow_request notification
// when the result is pending. Edge write and notification are one
// transaction.
func (r *followRepository) RequestFollow(followerID, followingID uint) (models.FollowStatus, error) {
	var status models.FollowStatus
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var target models.User
		if err := tx.First(&target, followingID).Error; err != nil {
			return err
		}

		status = models.StatusForRequest(target.Private)

		follow := &models.Follow{
			FollowerID:  followerID,
			FollowingID: followingID,
			Status:      status,
		}
		// Re-requesting overwrites the prior status, it never duplicates
		// the edge. The conflict path bypasses gorm's auto-touch, so
		// updated_at is assigned explicitly.
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":     status,
				"updated_at": time.Now(),
			}),
		}).Create(follow).Error; err != nil {
			return err
		}

		if status == models.FollowPending {
			notification := &models.Notification{
				UserID:     followingID,
				FromUserID: followerID,
				Type:       models.NotificationFollowRequest,
			}
			if err := tx.Create(notification).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// ResolveRequest sets the edge status per the followee's decision. The edge
// must exist; gorm.ErrRecordNotFound surfaces otherwise. A follow_accepted
// notification is emitted only when the edge actually moves from pending to
// accepted, so repeating an accept does not notify twice. Reject is silent.
func (r *followRepository) ResolveRequest(followingID, followerID uint, action models.FollowAction) error {
	status, err := models.StatusForAction(action)
	if err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var follow models.Follow
		if err := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			First(&follow).Error; err != nil {
			return err
		}

		previous := follow.Status
		if err := tx.Model(&follow).Update("status", status).Error; err != nil {
			return err
		}

		if status == models.FollowAccepted && previous == models.FollowPending {
			notification := &models.Notification{
				UserID:     followerID,
				FromUserID: followingID,
				Type:       models.NotificationFollowAccepted,
			}
			if err := tx.Create(notification).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *followRepository) GetFollowers(userID uint) ([]models.User, error) {
	return r.usersByEdge("follower_id", "following_id = ?", userID, models.FollowAccepted)
}

func (r *followRepository) GetFollowing(userID uint) ([]models.User, error) {
	return r.usersByEdge("following_id", "follower_id = ?", userID, models.FollowAccepted)
}

// GetPendingRequests lists the accounts waiting for the user's approval.
func (r *followRepository) GetPendingRequests(userID uint) ([]models.User, error) {
	return r.usersByEdge("follower_id", "following_id = ?", userID, models.FollowPending)
}

func (r *followRepository) usersByEdge(selectCol, cond string, userID uint, status models.FollowStatus) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select(selectCol).Where(cond+" AND status = ?", userID, status),
	).Find(&users).Error
	return users, err
}
