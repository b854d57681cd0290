package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"prd-builder-api/internal/application/autosave"
	projectapp "prd-builder-api/internal/application/project"
	"prd-builder-api/internal/domain/entity"
	"prd-builder-api/internal/domain/repository"
	"prd-builder-api/internal/interfaces/http/dto"
	"prd-builder-api/internal/interfaces/http/middleware"
)

// ProjectHandler serves project CRUD, merge and autosave.
type ProjectHandler struct {
	projects  *projectapp.Service
	debouncer *autosave.Debouncer
}

// NewProjectHandler creates the project handler.
func NewProjectHandler(projects *projectapp.Service, debouncer *autosave.Debouncer) *ProjectHandler {
	return &ProjectHandler{projects: projects, debouncer: debouncer}
}

func currentUser(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}

func pageFromQuery(c *gin.Context) repository.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	p := repository.Pagination{Page: page, PageSize: size}
	p.Normalize()
	return p
}

// Create makes a new project.
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body")
		return
	}

	project, err := h.projects.Create(c.Request.Context(), currentUser(c), req.Title)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Created(c, project)
}

// List returns projects the caller owns or collaborates on.
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	result, err := h.projects.List(c.Request.Context(), currentUser(c), pageFromQuery(c))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, result)
}

// Get returns one project.
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, project)
}

// Update applies an explicit save; a stale revision yields 409.
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body")
		return
	}

	in := projectapp.UpdateInput{
		Title:    req.Title,
		FormData: req.FormData,
		Revision: req.Revision,
	}
	if req.Status != nil {
		status := entity.ProjectStatus(*req.Status)
		in.Status = &status
	}

	project, err := h.projects.Update(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, project)
}

// Delete removes a project.
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"deleted": true})
}

// Autosave queues a debounced write of the submitted form data and
// returns immediately.
// POST /api/projects/:id/autosave
func (h *ProjectHandler) Autosave(c *gin.Context) {
	var req dto.AutosaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "form_data is required")
		return
	}

	userID := currentUser(c)
	projectID := c.Param("id")

	if err := h.projects.Autosave(c.Request.Context(), userID, projectID); err != nil {
		dto.Error(c, err)
		return
	}

	h.debouncer.Schedule(projectID, userID, req.FormData)
	dto.Accepted(c, gin.H{"queued": true})
}

// Merge applies a previously obtained generation result to the project.
// POST /api/projects/:id/merge
func (h *ProjectHandler) Merge(c *gin.Context) {
	var req dto.MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "template and data are required")
		return
	}

	project, merged, err := h.projects.MergeGeneration(
		c.Request.Context(), currentUser(c), c.Param("id"), req.Template, req.Data)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, dto.MergeResponse{Project: project, MergedKeys: merged})
}
