package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/muntanyers/backend/internal/middleware"
	"github.com/muntanyers/backend/internal/models"
	"github.com/muntanyers/backend/internal/repositories"
	"github.com/muntanyers/backend/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to user accounts and profiles
type UserHandler struct {
	userRepository repositories.UserRepository
	avatarStore    *storage.AvatarStore
	logger         *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, avatarStore *storage.AvatarStore, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		avatarStore:    avatarStore,
		logger:         logger,
	}
}

// RegisterUserRoutes registers user profile-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/user/profile", h.GetOwnProfile)
	g.PUT("/user/profile", h.UpdateProfile)
	g.PUT("/user/password", h.ChangePassword)
	g.DELETE("/user", h.DeleteAccount)
	g.POST("/user/avatar", h.UploadAvatar)
	g.GET("/users/search/:query", h.SearchUsers)
	g.GET("/users/:username", h.GetUserByUsername)
}

// GetOwnProfile retrieves the authenticated user's profile with counts
func (h *UserHandler) GetOwnProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile, err := h.userRepository.GetProfile(user.Username, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}

// GetUserByUsername retrieves another user's profile as seen by the caller
func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	profile, err := h.userRepository.GetProfile(c.Param("username"), currentUserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile updates the authenticated user's username, bio and privacy flag
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user.Username = req.Username
	user.Bio = req.Bio
	user.Private = req.Private

	if err := h.userRepository.UpdateUser(user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return echo.NewHTTPError(http.StatusConflict, "Username is already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ChangePassword verifies the current password before setting a new one
func (h *UserHandler) ChangePassword(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	if err := h.userRepository.UpdatePassword(currentUserID, string(hashedPassword)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// DeleteAccount verifies the password and removes the account with all the
// content, edges, likes, comments and notifications it owns
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.DeleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Password is incorrect")
	}

	if err := h.userRepository.DeleteUser(currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// The account is already gone; a leftover avatar file is worth a log
	// line, not a failed request.
	if user.AvatarURL != "" {
		if err := h.avatarStore.Remove(user.AvatarURL); err != nil {
			h.logger.Warn("Failed to remove avatar file", zap.String("avatar_url", user.AvatarURL), zap.Error(err))
		}
	}

	// End the session along with the account.
	c.SetCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// UploadAvatar stores a new avatar image and replaces the previous one
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	avatarURL, err := h.avatarStore.Save(currentUserID, fileHeader)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if user.AvatarURL != "" {
		if err := h.avatarStore.Remove(user.AvatarURL); err != nil {
			h.logger.Warn("Failed to remove previous avatar file", zap.String("avatar_url", user.AvatarURL), zap.Error(err))
		}
	}

	if err := h.userRepository.UpdateAvatar(currentUserID, avatarURL); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "avatarUrl": avatarURL})
}

// SearchUsers searches users by username substring, excluding the caller
func (h *UserHandler) SearchUsers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	results, err := h.userRepository.SearchUsers(c.Param("query"), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, results)
}
