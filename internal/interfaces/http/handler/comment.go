package handler

import (
	"github.com/gin-gonic/gin"

	projectapp "prd-builder-api/internal/application/project"
	"prd-builder-api/internal/interfaces/http/dto"
)

// CommentHandler serves field-anchored project comments.
type CommentHandler struct {
	projects *projectapp.Service
}

// NewCommentHandler creates the comment handler.
func NewCommentHandler(projects *projectapp.Service) *CommentHandler {
	return &CommentHandler{projects: projects}
}

// Add creates a comment, optionally anchored to a form field or
// replying to another comment.
// POST /api/projects/:id/comments
func (h *CommentHandler) Add(c *gin.Context) {
	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "content is required")
		return
	}

	comment, err := h.projects.AddComment(c.Request.Context(), currentUser(c), c.Param("id"),
		req.FieldPath, req.Content, req.ParentCommentID)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Created(c, comment)
}

// List returns the project's comments; ?field_path= narrows to one field.
// GET /api/projects/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.projects.ListComments(c.Request.Context(), currentUser(c), c.Param("id"),
		c.Query("field_path"))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, comments)
}

// Update edits a comment's content (author only) or resolved flag.
// PUT /api/projects/:id/comments/:commentId
func (h *CommentHandler) Update(c *gin.Context) {
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body")
		return
	}

	if err := h.projects.UpdateComment(c.Request.Context(), currentUser(c), c.Param("id"),
		c.Param("commentId"), req.Content, req.Resolved); err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"updated": true})
}

// Delete removes a comment. Allowed for the comment's author and the
// project owner.
// DELETE /api/projects/:id/comments/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.projects.DeleteComment(c.Request.Context(), currentUser(c), c.Param("id"),
		c.Param("commentId")); err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"deleted": true})
}
