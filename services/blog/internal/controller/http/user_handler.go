package http

import (
	"net/http"
	"strings"

	"inkpress/pkg/logger"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

const maxAvatarSize = 5 << 20

type UserHandler struct {
	userUseCase usecase.UserUseCase
	authUseCase usecase.AuthUseCase
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, authUseCase usecase.AuthUseCase, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		authUseCase: authUseCase,
		logger:      logger,
	}
}

type UpdateProfileRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=3,max=50"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
	Bio       *string `json:"bio" binding:"omitempty,max=1000"`
}

// requireSelf lets the request through only when the caller is the user in
// the path.
func (h *UserHandler) requireSelf(c *gin.Context) bool {
	user, _ := h.authUseCase.CurrentUser(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": entity.ErrNotSignedIn.Error()})
		return false
	}
	if user.ID != c.Param("id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only change your own profile"})
		return false
	}
	return true
}

// GetProfile godoc
// @Summary      Get user profile
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  entity.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userUseCase.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "fetch profile", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body UpdateProfileRequest true "Fields to change"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := entity.ProfileInput{
		Username:  req.Username,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	}
	if in.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}
	if !h.requireSelf(c) {
		return
	}

	user, err := h.userUseCase.UpdateProfile(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, "update profile", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UploadAvatar godoc
// @Summary      Upload avatar
// @Description  Store an image (up to 5 MB) and make it the caller's avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path     string true "User ID"
// @Param        avatar formData file   true "Image file (jpg/png/gif/webp)"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /users/{id}/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	if !h.requireSelf(c) {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar file is required"})
		return
	}
	if file.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar must be at most 5 MB"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar must be an image"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	user, err := h.userUseCase.UploadAvatar(c.Request.Context(), c.Param("id"), src, file.Filename, contentType)
	if err != nil {
		respondError(c, h.logger, "upload avatar", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
