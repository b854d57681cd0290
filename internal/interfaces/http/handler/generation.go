// Package handler implements the HTTP endpoints.
package handler

import (
	"github.com/gin-gonic/gin"

	"prd-builder-api/internal/application/generation"
	projectapp "prd-builder-api/internal/application/project"
	"prd-builder-api/internal/interfaces/http/dto"
	"prd-builder-api/internal/interfaces/http/middleware"
	"prd-builder-api/internal/workflow/prompt"
	"prd-builder-api/pkg/logger"
)

// GenerationHandler serves the AI generation and validation endpoints.
type GenerationHandler struct {
	generator *generation.Service
	projects  *projectapp.Service
}

// NewGenerationHandler creates the generation handler.
func NewGenerationHandler(generator *generation.Service, projects *projectapp.Service) *GenerationHandler {
	return &GenerationHandler{generator: generator, projects: projects}
}

// TemplateIDs lists the registered endpoints, for route wiring.
func (h *GenerationHandler) TemplateIDs() []string {
	return h.generator.Registry().IDs()
}

// Status reports whether the default provider is usable.
// GET /api/ai/status
func (h *GenerationHandler) Status(c *gin.Context) {
	router := h.generator.Router()
	dto.Success(c, dto.AIStatusResponse{
		Configured: router.Configured(""),
		Provider:   router.DefaultProvider(),
	})
}

// Generate returns the gin handler for one template id. The request
// body carries the template's inputs; "provider" optionally overrides
// the configured default and "project_id" asks for the result to be
// merged into that project's form data.
func (h *GenerationHandler) Generate(templateID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var inputs prompt.Inputs
		if err := c.ShouldBindJSON(&inputs); err != nil {
			dto.BadRequest(c, "invalid request body")
			return
		}
		if inputs == nil {
			inputs = prompt.Inputs{}
		}

		provider, _ := inputs["provider"].(string)
		projectID, _ := inputs["project_id"].(string)

		// Dependency validation computes its checklist server-side from
		// the submitted form data; the model only narrates it.
		var completeness int
		if templateID == "validate-dependencies" {
			formData, _ := inputs["formData"].(map[string]any)
			var summary map[string]any
			summary, completeness = generation.CompletenessSummary(formData)
			inputs["summary"] = summary
			inputs["completeness"] = completeness
		}

		result, err := h.generator.Generate(c.Request.Context(), templateID, provider, inputs)
		if err != nil {
			dto.Error(c, err)
			return
		}

		if templateID == "validate-dependencies" {
			generation.ForceCompleteness(result, completeness)
		}

		if projectID != "" {
			userID := c.GetString(middleware.UserIDKey)
			if _, merged, err := h.projects.MergeGeneration(c.Request.Context(), userID, projectID, templateID, result); err != nil {
				dto.Error(c, err)
				return
			} else if merged > 0 {
				logger.Debug(c.Request.Context(), "generation merged into project",
					"template", templateID, "project_id", projectID, "merged_keys", merged)
			}
		}

		dto.Success(c, result)
	}
}
