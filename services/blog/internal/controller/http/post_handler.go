package http

import (
	"net/http"

	"inkpress/pkg/logger"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type CreatePostRequest struct {
	Title    string  `json:"title" binding:"required,max=255"`
	Content  *string `json:"content"`
	Excerpt  *string `json:"excerpt"`
	CoverURL *string `json:"cover_url" binding:"omitempty,url"`
	Status   *string `json:"status" binding:"omitempty,oneof=draft published"`
}

type UpdatePostRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=255"`
	Content  *string `json:"content"`
	Excerpt  *string `json:"excerpt"`
	CoverURL *string `json:"cover_url" binding:"omitempty,url"`
	Status   *string `json:"status" binding:"omitempty,oneof=draft published"`
}

func toPostInput(title, content, excerpt, coverURL, status *string) entity.PostInput {
	in := entity.PostInput{Title: title, Content: content, Excerpt: excerpt, CoverURL: coverURL}
	if status != nil {
		s := entity.PostStatus(*status)
		in.Status = &s
	}
	return in
}

// ListPosts godoc
// @Summary      List published posts
// @Description  Published posts, newest first, with their authors
// @Tags         posts
// @Produce      json
// @Param        page  query int false "Page number (default 1)"
// @Param        limit query int false "Posts per page (default 10, max 100)"
// @Success      200  {object}  entity.PostPage
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	page, err := h.postUseCase.ListPublished(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		respondError(c, h.logger, "fetch posts", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListAuthorPosts godoc
// @Summary      List a user's posts
// @Description  All posts of one author, any status, newest first
// @Tags         users
// @Produce      json
// @Param        id    path  string true  "User ID"
// @Param        page  query int    false "Page number (default 1)"
// @Param        limit query int    false "Posts per page (default 10, max 100)"
// @Success      200  {object}  entity.PostPage
// @Failure      500  {object}  map[string]string
// @Router       /users/{id}/posts [get]
func (h *PostHandler) ListAuthorPosts(c *gin.Context) {
	page, err := h.postUseCase.ListByAuthor(c.Request.Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		respondError(c, h.logger, "fetch posts", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetPost godoc
// @Summary      Get post by ID
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "fetch post", err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Create a post owned by the caller. Status defaults to draft.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePostRequest true "Post data"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := toPostInput(&req.Title, req.Content, req.Excerpt, req.CoverURL, req.Status)
	post, err := h.postUseCase.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, "create post", err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary      Update post
// @Description  Update a post. Posts of other authors are reported as not found.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body UpdatePostRequest true "Fields to change"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := toPostInput(req.Title, req.Content, req.Excerpt, req.CoverURL, req.Status)
	if in.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}
	post, err := h.postUseCase.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, "update post", err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Delete one of the caller's posts. Deleting someone else's post changes nothing.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postUseCase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "delete post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
