package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes mounts the authenticated API surface.
func RegisterAPIRoutes(api *gin.RouterGroup, h Handlers) {
	// Generation and validation. One POST route per registered prompt
	// template, plus the provider status probe.
	ai := api.Group("/ai")
	{
		ai.GET("/status", h.Generation.Status)
		for _, id := range h.Generation.TemplateIDs() {
			ai.POST("/"+id, h.Generation.Generate(id))
		}
	}

	// Projects and their sub-resources.
	projects := api.Group("/projects")
	{
		projects.GET("", h.Project.List)
		projects.POST("", h.Project.Create)
		projects.GET("/:id", h.Project.Get)
		projects.PUT("/:id", h.Project.Update)
		projects.DELETE("/:id", h.Project.Delete)

		projects.POST("/:id/autosave", h.Project.Autosave)
		projects.POST("/:id/merge", h.Project.Merge)

		projects.GET("/:id/versions", h.Version.List)
		projects.POST("/:id/versions", h.Version.Save)
		projects.POST("/:id/versions/:versionId/restore", h.Version.Restore)

		projects.GET("/:id/collaborators", h.Collaborator.List)
		projects.POST("/:id/collaborators", h.Collaborator.Add)
		projects.DELETE("/:id/collaborators/:collaboratorId", h.Collaborator.Remove)

		projects.GET("/:id/comments", h.Comment.List)
		projects.POST("/:id/comments", h.Comment.Add)
		projects.PUT("/:id/comments/:commentId", h.Comment.Update)
		projects.DELETE("/:id/comments/:commentId", h.Comment.Delete)

		projects.GET("/:id/activity", h.Activity.List)
		projects.POST("/:id/activity", h.Activity.Log)
	}
}
