package handler

import (
	"github.com/gin-gonic/gin"

	projectapp "prd-builder-api/internal/application/project"
	"prd-builder-api/internal/interfaces/http/dto"
)

// VersionHandler serves the project version history.
type VersionHandler struct {
	projects *projectapp.Service
}

// NewVersionHandler creates the version handler.
func NewVersionHandler(projects *projectapp.Service) *VersionHandler {
	return &VersionHandler{projects: projects}
}

// Save snapshots the project's current form data.
// POST /api/projects/:id/versions
func (h *VersionHandler) Save(c *gin.Context) {
	version, err := h.projects.SaveVersion(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Created(c, version)
}

// List returns the version history, newest first. Snapshots themselves
// are omitted from the listing.
// GET /api/projects/:id/versions
func (h *VersionHandler) List(c *gin.Context) {
	result, err := h.projects.ListVersions(c.Request.Context(), currentUser(c), c.Param("id"), pageFromQuery(c))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, result)
}

// Restore replaces the project's form data with a snapshot, after
// recording the current state as its own version.
// POST /api/projects/:id/versions/:versionId/restore
func (h *VersionHandler) Restore(c *gin.Context) {
	project, err := h.projects.Restore(c.Request.Context(), currentUser(c), c.Param("id"), c.Param("versionId"))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, project)
}
