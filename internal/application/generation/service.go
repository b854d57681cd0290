// Package generation runs the prompt → provider → extraction pipeline
// and merges its results into project form state.
package generation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"

	"prd-builder-api/internal/infrastructure/llm"
	"prd-builder-api/internal/infrastructure/persistence/redis"
	"prd-builder-api/internal/workflow/node"
	"prd-builder-api/internal/workflow/prompt"
	apperrors "prd-builder-api/pkg/errors"
	"prd-builder-api/pkg/logger"
	"prd-builder-api/pkg/metrics"
)

var tracer = otel.Tracer("generation")

// Service orchestrates one generation: template lookup, prompt build,
// cache, provider call, extraction and shape validation.
type Service struct {
	registry *prompt.Registry
	router   *llm.Router
	cache    *redis.ResultCache
}

// NewService creates a generation service. cache may be nil.
func NewService(registry *prompt.Registry, router *llm.Router, cache *redis.ResultCache) *Service {
	return &Service{registry: registry, router: router, cache: cache}
}

// Registry exposes the template registry for handlers that need
// bindings (merge, shape checks).
func (s *Service) Registry() *prompt.Registry {
	return s.registry
}

// Router exposes the provider router for the status endpoint.
func (s *Service) Router() *llm.Router {
	return s.router
}

// Generate runs templateID against the given provider (default when
// empty) and returns the extracted result object. Every generation is a
// single attempt; callers re-trigger on failure.
func (s *Service) Generate(ctx context.Context, templateID, provider string, inputs prompt.Inputs) (map[string]any, error) {
	ctx, span := tracer.Start(ctx, "generation.Service.Generate")
	defer span.End()

	start := time.Now()
	result, err := s.generate(ctx, templateID, provider, inputs)

	metrics.GenerationDuration.WithLabelValues(templateID).Observe(time.Since(start).Seconds())
	metrics.GenerationTotal.WithLabelValues(templateID, statusLabel(err)).Inc()

	return result, err
}

func (s *Service) generate(ctx context.Context, templateID, provider string, inputs prompt.Inputs) (map[string]any, error) {
	tmpl, err := s.registry.Get(templateID)
	if err != nil {
		return nil, err
	}

	built := tmpl.Build(inputs)

	var cacheKey string
	if s.cache.Enabled() {
		cacheKey = s.cache.Key(tmpl.ID, cachePayload(provider, built))
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			metrics.GenerationCacheHits.WithLabelValues(tmpl.ID).Inc()
			logger.Debug(ctx, "generation served from cache", "template", tmpl.ID)
			return cached, nil
		}
	}

	client, providerName, err := s.router.For(provider)
	if err != nil {
		return nil, err
	}
	model := s.router.ModelFor(providerName)

	callStart := time.Now()
	raw, err := client.Complete(ctx, built, tmpl.SystemPrompt, tmpl.MaxTokens)
	metrics.LLMCallDuration.WithLabelValues(providerName, model).Observe(time.Since(callStart).Seconds())
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(providerName, model, "error").Inc()
		logger.Error(ctx, "provider call failed", err, "template", tmpl.ID, "provider", providerName)
		return nil, err
	}
	metrics.LLMCallTotal.WithLabelValues(providerName, model, "ok").Inc()

	result, err := node.ExtractJSON(raw)
	if err != nil {
		logger.Warn(ctx, "extraction failed, discarding model output",
			"template", tmpl.ID, "provider", providerName, "output_len", len(raw))
		return nil, err
	}

	s.checkShapes(ctx, tmpl, result)

	if cacheKey != "" {
		s.cache.Set(ctx, cacheKey, result)
	}

	return result, nil
}

// checkShapes drops bound result keys whose JSON kind does not match
// the template. Mismatches are logged, never fatal.
func (s *Service) checkShapes(ctx context.Context, tmpl *prompt.Template, result map[string]any) {
	for _, b := range tmpl.Bindings {
		value, ok := result[b.ResultKey]
		if !ok {
			continue
		}
		if !b.Kind.Matches(value) {
			metrics.ShapeMismatchTotal.WithLabelValues(tmpl.ID, b.ResultKey).Inc()
			logger.Warn(ctx, "dropping result key with unexpected shape",
				"template", tmpl.ID, "key", b.ResultKey, "expected", string(b.Kind))
			delete(result, b.ResultKey)
		}
	}
}

func cachePayload(provider, built string) string {
	return provider + "\x00" + built
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case apperrors.IsConfiguration(err):
		return "config_error"
	case apperrors.IsProvider(err):
		return "provider_error"
	case apperrors.IsExtraction(err):
		return "extraction_error"
	default:
		return "error"
	}
}

// CompletenessSummary reproduces the dependency checklist used by the
// validate-dependencies template: which major PRD sections hold any
// content.
func CompletenessSummary(formData map[string]any) (map[string]any, int) {
	summary := map[string]any{
		"hasAppName":    nonEmptyString(formData["appName"]),
		"hasAppIdea":    nonEmptyString(formData["appIdea"]),
		"hasPlatform":   nonEmptyList(formData["platform"]),
		"hasTechStack":  anyListFilled(formData["selectedTechStack"]),
		"hasPersonas":   nonEmptyList(formData["primaryUserPersonas"]),
		"hasFeatures":   anyListFilled(formData["featurePriority"]),
		"hasMetrics":    anyListFilled(formData["successMetrics"]),
		"hasSecurity":   anyListFilled(formData["security"]),
		"hasTimeline":   nonEmptyList(formData["milestones"]),
		"hasBudget":     nonEmptyString(dig(formData, "budgetPlanning", "costs", "developmentCosts")),
		"hasTesting":    nonEmptyString(dig(formData, "testingStrategy", "unitTesting", "target")),
		"hasDeployment": nonEmptyString(dig(formData, "deploymentStrategy", "cicdPipeline")),
	}

	filled := 0
	for _, v := range summary {
		if v == true {
			filled++
		}
	}
	completeness := int(float64(filled)/float64(len(summary))*100 + 0.5)
	return summary, completeness
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

func nonEmptyList(v any) bool {
	list, ok := v.([]any)
	return ok && len(list) > 0
}

// anyListFilled reports whether any value of an object is a non-empty
// array.
func anyListFilled(v any) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, item := range obj {
		if nonEmptyList(item) {
			return true
		}
	}
	return false
}

func dig(m map[string]any, path ...string) any {
	var cur any = m
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[key]
	}
	return cur
}

// ForceCompleteness overwrites the model's completeness figure with the
// server-computed one; the model's copy is advisory at best.
func ForceCompleteness(result map[string]any, completeness int) {
	result["completeness"] = completeness
}
