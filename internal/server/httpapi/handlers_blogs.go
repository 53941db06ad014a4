package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogward/blogward/internal/common"
	"github.com/blogward/blogward/internal/logging"
	"github.com/blogward/blogward/internal/server/models"
)

// BlogHandler serves the /blogs routes, comments included.
type BlogHandler struct {
	blogs    BlogStore
	comments CommentManager
	log      logging.Logger
}

func NewBlogHandler(blogs BlogStore, comments CommentManager, log logging.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, comments: comments, log: log}
}

// List handles GET /blogs. A store failure surfaces as 404 rather than
// 500, matching the externally observed contract.
func (h *BlogHandler) List(c *gin.Context) {
	blogList, err := h.blogs.List(c.Request.Context())
	if err != nil {
		h.log.Error(c.Request.Context(), "blog listing failed", "error", err)
		c.JSON(http.StatusNotFound, gin.H{"message": "blogs not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": blogList})
}

// Get handles GET /blogs/blog/:blogId.
func (h *BlogHandler) Get(c *gin.Context) {
	blog, err := h.blogs.GetByID(c.Request.Context(), c.Param("blogId"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Blog not found"})
			return
		}
		h.log.Error(c.Request.Context(), "blog lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blog": blog})
}

// Create handles POST /blogs/create_blog. The authenticated identity is
// snapshotted as the immutable author of record.
func (h *BlogHandler) Create(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
		return
	}

	var req struct {
		Title       string `json:"title"`
		MainContent string `json:"mainContent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	blog, err := h.blogs.Create(c.Request.Context(), req.Title, req.MainContent, identity)
	if err != nil {
		h.log.Error(c.Request.Context(), "blog creation failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "The blog was not created"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "The blog was created", "blog": blog})
}

// Update handles PUT /blogs/blog/:blogId. Runs behind RequireBlogOwner.
// The response carries the pre-update snapshot.
func (h *BlogHandler) Update(c *gin.Context) {
	var patch models.BlogPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	previous, err := h.blogs.Update(c.Request.Context(), c.Param("blogId"), patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "The blog was not updated"})
			return
		}
		h.log.Error(c.Request.Context(), "blog update failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "The blog was not updated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "The blog was updated", "blog": previous})
}

// Delete handles DELETE /blogs/blog/:blogId. Runs behind RequireBlogOwner.
func (h *BlogHandler) Delete(c *gin.Context) {
	deleted, err := h.blogs.Delete(c.Request.Context(), c.Param("blogId"))
	if err != nil {
		h.log.Error(c.Request.Context(), "blog deletion failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "The blog was not deleted"})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "The blog was not deleted"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "The blog was deleted"})
}

// AddComment handles POST /blogs/:blogId/comments.
func (h *BlogHandler) AddComment(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
		return
	}

	var req struct {
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	matched, err := h.comments.Add(c.Request.Context(), c.Param("blogId"), req.Comment, identity)
	if err != nil || matched == 0 {
		if err != nil {
			h.log.Error(c.Request.Context(), "comment creation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "The comment was not created"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "The comment was created"})
}

// RemoveComment handles DELETE /blogs/:blogId/comments. A miss (unknown
// comment id, or a comment owned by someone else) answers 200 with a
// failure message, matching the externally observed contract.
func (h *BlogHandler) RemoveComment(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
		return
	}

	var req struct {
		CommentID string `json:"commentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	matched, err := h.comments.Remove(c.Request.Context(), c.Param("blogId"), req.CommentID, identity)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusOK, gin.H{"message": "The comment was not deleted"})
			return
		}
		h.log.Error(c.Request.Context(), "comment deletion failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if matched == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "The comment was not deleted"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "The comment was deleted"})
}
