// Package node holds the reusable steps of the generation pipeline.
package node

import (
	"encoding/json"
	"regexp"
	"strings"

	apperrors "prd-builder-api/pkg/errors"
)

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON coerces raw model output into a JSON object. Models wrap
// JSON in prose and markdown fences, so extraction is tolerant: each
// strategy is tried in order and the first parse that yields an object
// wins.
//
//  1. Parse the whole output directly.
//  2. Parse the contents of the first fenced code block.
//  3. Parse the span from the first "{" to the last "}".
//
// A successful parse that is not a JSON object (a bare array, string or
// number) does not count; later strategies still run.
func ExtractJSON(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, apperrors.NewExtraction("failed to parse AI response as JSON")
	}

	if obj, ok := parseObject(trimmed); ok {
		return obj, nil
	}

	if m := fencedBlockRe.FindStringSubmatch(trimmed); m != nil {
		if obj, ok := parseObject(strings.TrimSpace(m[1])); ok {
			return obj, nil
		}
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		if obj, ok := parseObject(trimmed[start : end+1]); ok {
			return obj, nil
		}
	}

	return nil, apperrors.NewExtraction("failed to parse AI response as JSON")
}

func parseObject(s string) (map[string]any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, false
	}
	return obj, obj != nil
}
