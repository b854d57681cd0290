package handler

import (
	"github.com/gin-gonic/gin"

	projectapp "prd-builder-api/internal/application/project"
	"prd-builder-api/internal/interfaces/http/dto"
)

// ActivityHandler serves the project activity log.
type ActivityHandler struct {
	projects *projectapp.Service
}

// NewActivityHandler creates the activity handler.
func NewActivityHandler(projects *projectapp.Service) *ActivityHandler {
	return &ActivityHandler{projects: projects}
}

// Log records an activity entry. The write is best-effort: a failed
// insert comes back as {logged:false} with a reason, never as an HTTP
// error, so logging can never break the editing flow.
// POST /api/projects/:id/activity
func (h *ActivityHandler) Log(c *gin.Context) {
	var req dto.LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "action is required")
		return
	}

	logged, reason := h.projects.LogActivity(c.Request.Context(), currentUser(c), c.Param("id"),
		req.Action, req.Details)
	dto.Success(c, dto.ActivityLogResult{Logged: logged, Reason: reason})
}

// List returns the project's activity entries, newest first.
// GET /api/projects/:id/activity
func (h *ActivityHandler) List(c *gin.Context) {
	result, err := h.projects.ListActivity(c.Request.Context(), currentUser(c), c.Param("id"), pageFromQuery(c))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, result)
}
