package repositories

import (
	"github.com/muntanyers/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetFeed(viewerID uint) ([]models.FeedPost, error)
	GetPostsByUser(userID uint) ([]models.FeedPost, error)
	DeletePost(id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository backed by gorm
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetFeed returns the latest 50 posts joined with author data, live like and
// comment counts, and whether the viewer has liked each post.
func (r *postRepository) GetFeed(viewerID uint) ([]models.FeedPost, error) {
	var posts []models.FeedPost
	err := r.db.Model(&models.Post{}).
		Select(`posts.id, posts.user_id, users.username, users.avatar_url,
			posts.content, posts.image_url, posts.video_url, posts.type, posts.created_at,
			(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count,
			(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count,
			EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS user_has_liked`,
			viewerID).
		Joins("JOIN users ON users.id = posts.user_id").
		Order("posts.created_at DESC").
		Limit(50).
		Scan(&posts).Error
	return posts, err
}

// GetPostsByUser returns all of a user's posts newest first, joined with
// author data.
func (r *postRepository) GetPostsByUser(userID uint) ([]models.FeedPost, error) {
	var posts []models.FeedPost
	err := r.db.Model(&models.Post{}).
		Select(`posts.id, posts.user_id, users.username, users.avatar_url,
			posts.content, posts.image_url, posts.video_url, posts.type,
			posts.likes_count, posts.created_at,
			(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count`).
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC").
		Scan(&posts).Error
	return posts, err
}

// DeletePost removes the post with its likes and comments in one transaction.
func (r *postRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}
