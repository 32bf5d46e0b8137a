package repositories

import (
	"github.com/muntanyers/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	LikePost(userID, postID uint) error
	UnlikePost(userID, postID uint) error
	HasUserLikedPost(userID, postID uint) (bool, error)
	GetLikesCountByPostID(postID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository backed by gorm
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// LikePost adds a like, refreshes the post's denormalized counter and
// notifies the post owner, all in one transaction. A repeated like by the
// same account is a no-op: the unique (user, post) index swallows the
// insert, the counter stays put and no second notification is emitted.
// Liking your own post never notifies.
func (r *likeRepository) LikePost(userID, postID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			return err
		}

		like := &models.Like{UserID: userID, PostID: postID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already liked; nothing changed.
			return nil
		}

		if err := refreshLikesCount(tx, postID); err != nil {
			return err
		}

		if post.UserID != userID {
			notification := &models.Notification{
				UserID:     post.UserID,
				FromUserID: userID,
				Type:       models.NotificationLike,
				PostID:     &postID,
			}
			if err := tx.Create(notification).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UnlikePost removes the like if present and refreshes the counter. It never
// retracts the like notification. Removing an absent like is a no-op.
func (r *likeRepository) UnlikePost(userID, postID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return refreshLikesCount(tx, postID)
	})
}

// refreshLikesCount recomputes likes_count from the likes table so the
// counter cannot drift from the like set.
func refreshLikesCount(tx *gorm.DB, postID uint) error {
	return tx.Model(&models.Post{}).Where("id = ?", postID).
		Update("likes_count", tx.Model(&models.Like{}).Where("post_id = ?", postID).Select("COUNT(*)")).Error
}

func (r *likeRepository) HasUserLikedPost(userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) GetLikesCountByPostID(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
