package handler

import (
	"github.com/gin-gonic/gin"

	projectapp "prd-builder-api/internal/application/project"
	"prd-builder-api/internal/domain/entity"
	"prd-builder-api/internal/interfaces/http/dto"
)

// CollaboratorHandler manages project sharing.
type CollaboratorHandler struct {
	projects *projectapp.Service
}

// NewCollaboratorHandler creates the collaborator handler.
func NewCollaboratorHandler(projects *projectapp.Service) *CollaboratorHandler {
	return &CollaboratorHandler{projects: projects}
}

// Add invites a user by email. Owner only.
// POST /api/projects/:id/collaborators
func (h *CollaboratorHandler) Add(c *gin.Context) {
	var req dto.AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "email is required")
		return
	}

	role := entity.CollaboratorRole(req.Role)
	if req.Role == "" {
		role = entity.CollaboratorRoleViewer
	}

	collaborator, err := h.projects.AddCollaboratorByEmail(c.Request.Context(), currentUser(c), c.Param("id"), req.Email, role)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Created(c, collaborator)
}

// List returns the project's collaborators with their profiles.
// GET /api/projects/:id/collaborators
func (h *CollaboratorHandler) List(c *gin.Context) {
	collaborators, err := h.projects.ListCollaborators(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, collaborators)
}

// Remove revokes a collaborator's access. Owner only.
// DELETE /api/projects/:id/collaborators/:collaboratorId
func (h *CollaboratorHandler) Remove(c *gin.Context) {
	if err := h.projects.RemoveCollaborator(c.Request.Context(), currentUser(c), c.Param("id"), c.Param("collaboratorId")); err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"removed": true})
}
