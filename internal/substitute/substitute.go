// Package substitute replaces {{ ... }} placeholders in path segments using
// text/template and a set of token values.
package substitute

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/google/uuid"
)

// Marker opens a placeholder. Segments without it are never parsed.
const Marker = "{{"

// segmentFuncs are the helpers available inside a placeholder.
var segmentFuncs = template.FuncMap{
	"uuid":    func() string { return uuid.NewString() },
	"upper":   strings.ToUpper,
	"lower":   strings.ToLower,
	"trim":    strings.TrimSpace,
	"default": fallback,
}

// fallback returns def when value is nil or renders as an empty string.
func fallback(def, value any) any {
	if value == nil || fmt.Sprint(value) == "" {
		return def
	}
	return value
}

// Apply renders segment with data. Missing tokens are errors.
func Apply(segment string, data map[string]any) (string, error) {
	if !strings.Contains(segment, Marker) {
		return segment, nil
	}

	tmpl, err := template.New("segment").
		Option("missingkey=error").
		Funcs(segmentFuncs).
		Parse(segment)
	if err != nil {
		return "", fmt.Errorf("parse segment %q: %w", segment, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render segment %q: %w", segment, err)
	}

	return buf.String(), nil
}
