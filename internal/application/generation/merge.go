package generation

import (
	"strings"

	"prd-builder-api/internal/domain/entity"
	"prd-builder-api/internal/workflow/prompt"
	"prd-builder-api/pkg/metrics"
)

// MergeResult applies a parsed generation result onto form data through
// the template's binding table and returns the patched copy plus the
// number of keys merged. The input form data is never mutated.
//
// Only bound keys whose value matches the declared kind land in the
// form; everything else in the result is ignored. An empty result
// returns an equal copy, so merging is idempotent for absent keys.
func MergeResult(form entity.FormData, tmpl *prompt.Template, result map[string]any) (entity.FormData, int) {
	out := form.Clone()
	if len(result) == 0 || tmpl == nil {
		return out, 0
	}

	merged := 0
	for _, b := range tmpl.Bindings {
		value, ok := result[b.ResultKey]
		if !ok || !b.Kind.Matches(value) {
			continue
		}
		setPath(out, b.SectionPath, value, b.Mode)
		merged++
	}

	if merged > 0 {
		metrics.MergedKeysTotal.WithLabelValues(tmpl.ID).Add(float64(merged))
	}
	return out, merged
}

// setPath writes value at a dot path, creating intermediate objects.
// A non-object in the middle of the path is overwritten; the model's
// output never wins over a structural invariant of the form.
func setPath(root map[string]any, path string, value any, mode prompt.Mode) {
	parts := strings.Split(path, ".")
	cur := root
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[part] = next
		}
		cur = next
	}

	leaf := parts[len(parts)-1]
	if mode == prompt.ModeAppend {
		if existing, ok := cur[leaf].([]any); ok {
			if addition, ok := value.([]any); ok {
				cur[leaf] = append(existing, addition...)
				return
			}
		}
	}
	cur[leaf] = value
}
