package signal

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/partie/brandmatch-go/internal/domain"
	"github.com/partie/brandmatch-go/internal/util"
)

// Result is the outcome of one extraction pass. Coverage measures data
// completeness, not accuracy: populated canonical keys over keys expected
// for the detected schema version.
type Result struct {
	Success  bool                 `json:"success"`
	Signals  *domain.VideoSignals `json:"signals,omitempty"`
	Errors   []string             `json:"errors,omitempty"`
	Warnings []string             `json:"warnings,omitempty"`
	Coverage float64              `json:"coverage"`
}

// Extract normalizes one raw AI observation into a canonical signal record.
// Field-level problems produce warnings and reduce coverage; the only failure
// is an input that is not an object at all.
func Extract(raw any) Result {
	obj, ok := asObject(raw)
	if !ok {
		return Result{
			Success: false,
			Errors:  []string{"observation is not an object"},
		}
	}

	version := detectSchemaVersion(obj)
	signals := &domain.VideoSignals{SchemaVersion: version}

	var warnings []string
	populated := 0

	for _, spec := range fieldTable {
		value, warn, found := extractField(obj, spec)
		if warn != "" {
			warnings = append(warnings, warn)
		}
		if !found {
			continue
		}
		spec.assign(signals, value)
		// Keys outside the detected version's expectation set still extract,
		// but only expected keys count toward coverage: the ratio stays a
		// fraction of its own denominator.
		if versionExpects(spec, version) {
			populated++
		}
	}

	expected := expectedKeys(version)
	coverage := 0.0
	if expected > 0 {
		coverage = float64(populated) / float64(expected)
	}

	return Result{
		Success:  true,
		Signals:  signals,
		Warnings: warnings,
		Coverage: coverage,
	}
}

func asObject(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case []byte:
		var obj map[string]any
		if err := json.Unmarshal(v, &obj); err != nil {
			return nil, false
		}
		return obj, true
	case json.RawMessage:
		var obj map[string]any
		if err := json.Unmarshal(v, &obj); err != nil {
			return nil, false
		}
		return obj, true
	default:
		return nil, false
	}
}

// detectSchemaVersion reads an explicit version tag when present, otherwise
// infers: a nested analysis object means the legacy v1 shape.
func detectSchemaVersion(obj map[string]any) string {
	for _, path := range []string{"schema_version", "version", "analysis.schema_version"} {
		if v, ok := lookupPath(obj, path); ok {
			if s, ok := v.(string); ok {
				switch util.Normalize(s) {
				case "v1", "1", "1.0":
					return domain.SchemaV1
				case "v2", "2", "2.0":
					return domain.SchemaV2
				}
			}
		}
	}

	if _, ok := obj["analysis"]; ok {
		return domain.SchemaV1
	}
	return domain.SchemaV2
}

// extractField walks spec.paths in order and returns the first value of the
// correct type and range. Later paths are ignored once one matches.
func extractField(obj map[string]any, spec fieldSpec) (value any, warning string, found bool) {
	for _, path := range spec.paths {
		raw, ok := lookupPath(obj, path)
		if !ok || raw == nil {
			continue
		}

		switch spec.kind {
		case kindFloat:
			f, ok := coerceFloat(raw)
			if !ok {
				warning = fmt.Sprintf("%s: non-numeric value at %s", spec.key, path)
				continue
			}
			if f < spec.min || f > spec.max {
				warning = fmt.Sprintf("%s: value %.2f outside [%.0f,%.0f], dropped", spec.key, f, spec.min, spec.max)
				continue
			}
			return f, "", true

		case kindString:
			s, ok := coerceString(raw)
			if !ok || s == "" {
				continue
			}
			if spec.scale != nil && !domain.IsValidOrdinal(spec.scale, s) {
				warning = fmt.Sprintf("%s: unrecognized value %q, dropped", spec.key, s)
				continue
			}
			return s, "", true

		case kindStringList:
			list, ok := coerceStringList(raw)
			if !ok || len(list) == 0 {
				continue
			}
			return list, "", true

		case kindBool:
			b, ok := coerceBool(raw)
			if !ok {
				warning = fmt.Sprintf("%s: non-boolean value at %s", spec.key, path)
				continue
			}
			return b, "", true
		}
	}

	return nil, warning, false
}

// lookupPath resolves a dot-separated path through nested objects.
func lookupPath(obj map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	current := any(obj)

	for _, segment := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

func coerceFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(raw any) (string, bool) {
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	return util.Normalize(s), true
}

// coerceStringList accepts a JSON array of strings, or falls back to
// splitting a comma-separated string. Items are normalized and deduplicated.
func coerceStringList(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				if norm := util.Normalize(s); norm != "" {
					items = append(items, norm)
				}
			}
		}
		return util.UniqueStrings(items), true
	case []string:
		items := make([]string, 0, len(v))
		for _, s := range v {
			if norm := util.Normalize(s); norm != "" {
				items = append(items, norm)
			}
		}
		return util.UniqueStrings(items), true
	case string:
		parts := util.SplitCSV(v)
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			items = append(items, util.Normalize(p))
		}
		return util.UniqueStrings(items), len(items) > 0
	default:
		return nil, false
	}
}

func coerceBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		switch util.Normalize(v) {
		case "true", "yes":
			return true, true
		case "false", "no":
			return false, true
		}
	}
	return false, false
}
