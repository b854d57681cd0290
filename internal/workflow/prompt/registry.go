// Package prompt holds the declarative template registry driving the
// generation endpoints.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "prd-builder-api/pkg/errors"
)

// Kind is the expected JSON shape of a bound result key.
type Kind string

const (
	KindObject Kind = "object"
	KindArray  Kind = "array"
	KindString Kind = "string"
	KindBool   Kind = "bool"
)

// Mode says how a bound value lands in the form section.
type Mode string

const (
	ModeReplace Mode = "replace"
	ModeAppend  Mode = "append"
)

// SectionBinding maps one key of a parsed generation result onto a dot
// path inside the project form data. The same table drives both shape
// validation and merging.
type SectionBinding struct {
	ResultKey   string
	SectionPath string
	Kind        Kind
	Mode        Mode
}

// Inputs is the decoded request body of a generation endpoint.
type Inputs map[string]any

// Template is one generation or validation endpoint: its system prompt,
// token budget, prompt builder and form bindings.
type Template struct {
	ID           string
	SystemPrompt string
	MaxTokens    int
	Build        func(in Inputs) string
	Bindings     []SectionBinding
}

// Registry is an immutable id → template index.
type Registry struct {
	templates map[string]*Template
	ids       []string
}

// NewRegistry builds the default registry with every template.
func NewRegistry() *Registry {
	return newRegistry(allTemplates())
}

func newRegistry(templates []*Template) *Registry {
	idx := make(map[string]*Template, len(templates))
	ids := make([]string, 0, len(templates))
	for _, t := range templates {
		idx[t.ID] = t
		ids = append(ids, t.ID)
	}
	return &Registry{templates: idx, ids: ids}
}

// Get looks up a template by id.
func (r *Registry) Get(id string) (*Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeTemplateNotFound,
			fmt.Sprintf("unknown template %q", id))
	}
	return t, nil
}

// IDs returns every registered template id.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Matches reports whether value conforms to the binding's kind.
func (k Kind) Matches(value any) bool {
	switch k {
	case KindObject:
		_, ok := value.(map[string]any)
		return ok
	case KindArray:
		_, ok := value.([]any)
		return ok
	case KindString:
		_, ok := value.(string)
		return ok
	case KindBool:
		_, ok := value.(bool)
		return ok
	}
	return false
}

// Prompt builder helpers. Absent scalars render as "not specified",
// absent lists as an empty join, absent structures as their JSON zero.

func str(in Inputs, key string) string {
	if v, ok := in[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func strOr(in Inputs, key, fallback string) string {
	if s := str(in, key); s != "" {
		return s
	}
	return fallback
}

func joinList(in Inputs, key string) string {
	v, ok := in[key]
	if !ok || v == nil {
		return ""
	}
	switch list := v.(type) {
	case []string:
		return strings.Join(list, ", ")
	case []any:
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

func jsonValue(in Inputs, key, zero string) string {
	v, ok := in[key]
	if !ok || v == nil {
		return zero
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return zero
	}
	return string(raw)
}
