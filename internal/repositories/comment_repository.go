package repositories

import (
	"github.com/muntanyers/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByPostID(postID uint) ([]models.CommentWithAuthor, error)
	DeleteComment(id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository backed by gorm
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// CreateComment inserts the comment and notifies the post owner in one
// transaction. Commenting on your own post never notifies.
func (r *commentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, comment.PostID).Error; err != nil {
			return err
		}

		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		if post.UserID != comment.UserID {
			postID := comment.PostID
			notification := &models.Notification{
				UserID:     post.UserID,
				FromUserID: comment.UserID,
				Type:       models.NotificationComment,
				PostID:     &postID,
			}
			if err := tx.Create(notification).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *commentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID returns a post's comments oldest first, joined with
// each author's username.
func (r *commentRepository) GetCommentsByPostID(postID uint) ([]models.CommentWithAuthor, error) {
	var comments []models.CommentWithAuthor
	err := r.db.Model(&models.Comment{}).
		Select("comments.id, comments.post_id, comments.user_id, users.username, comments.content, comments.created_at").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Scan(&comments).Error
	return comments, err
}

func (r *commentRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
