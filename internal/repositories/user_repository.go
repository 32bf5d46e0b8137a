package repositories

import (
	"github.com/muntanyers/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	UpdateUser(user *models.User) error
	UpdatePassword(id uint, hashedPassword string) error
	UpdateAvatar(id uint, avatarURL string) error
	DeleteUser(id uint) error
	GetProfile(username string, viewerID uint) (*models.UserProfile, error)
	SearchUsers(query string, excludeID uint) ([]models.UserSearchResult, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository backed by gorm
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) UpdatePassword(id uint, hashedPassword string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("password", hashedPassword).Error
}

func (r *userRepository) UpdateAvatar(id uint, avatarURL string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("avatar_url", avatarURL).Error
}

// DeleteUser removes the account and everything it owns: posts, follow edges
// in either direction, likes, comments and the notifications addressed to it.
// The whole cascade runs in one transaction.
func (r *userRepository) DeleteUser(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR following_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

// GetProfile returns a user's profile with aggregate counts and the viewer's
// relationship to it. Pass viewerID == profile owner for the own-profile view,
// which also exposes the email.
func (r *userRepository) GetProfile(username string, viewerID uint) (*models.UserProfile, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		Bio:       user.Bio,
		AvatarURL: user.AvatarURL,
		Private:   user.Private,
		CreatedAt: user.CreatedAt,
	}
	if viewerID == user.ID {
		profile.Email = user.Email
	}

	if err := r.db.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&profile.PostCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Follow{}).
		Where("following_id = ? AND status = ?", user.ID, models.FollowAccepted).
		Count(&profile.FollowerCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND status = ?", user.ID, models.FollowAccepted).
		Count(&profile.FollowingCount).Error; err != nil {
		return nil, err
	}

	if viewerID != user.ID {
		var count int64
		if err := r.db.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ? AND status = ?", viewerID, user.ID, models.FollowAccepted).
			Count(&count).Error; err != nil {
			return nil, err
		}
		profile.IsFollowing = count > 0

		if err := r.db.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ? AND status = ?", viewerID, user.ID, models.FollowPending).
			Count(&count).Error; err != nil {
			return nil, err
		}
		profile.HasPendingRequest = count > 0
	}

	return profile, nil
}

// SearchUsers matches usernames by substring, excluding the caller, capped
// at 20 results.
func (r *userRepository) SearchUsers(query string, excludeID uint) ([]models.UserSearchResult, error) {
	var results []models.UserSearchResult
	err := r.db.Model(&models.User{}).
		Select(`users.id, users.username, users.avatar_url, users.bio,
			(SELECT COUNT(*) FROM follows WHERE follows.following_id = users.id AND follows.status = ?) AS follower_count`,
			models.FollowAccepted).
		Where("username LIKE ? AND id != ?", "%"+query+"%", excludeID).
		Limit(20).
		Scan(&results).Error
	return results, err
}
