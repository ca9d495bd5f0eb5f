package signal

import (
	"testing"

	"github.com/partie/brandmatch-go/internal/domain"
)

func TestExtractRejectsNonObject(t *testing.T) {
	for _, input := range []any{nil, "not an object", 42, []any{"a"}} {
		result := Extract(input)
		if result.Success {
			t.Fatalf("expected failure for %v", input)
		}
		if len(result.Errors) == 0 {
			t.Fatal("expected an error entry")
		}
	}
}

func TestExtractFlatV2(t *testing.T) {
	raw := map[string]any{
		"schema_version": "v2",
		"energy":         8.0,
		"warmth":         6.5,
		"coherence":      0.9,
		"content_edge":   "Mild ",
		"humor_types":    []any{"deadpan", "Observational", "deadpan"},
		"actor_count":    "solo",
	}

	result := Extract(raw)
	if !result.Success {
		t.Fatalf("expected success, errors: %v", result.Errors)
	}

	s := result.Signals
	if s.SchemaVersion != domain.SchemaV2 {
		t.Fatalf("expected v2, got %s", s.SchemaVersion)
	}
	if s.Energy == nil || *s.Energy != 8 {
		t.Fatalf("expected energy 8, got %v", s.Energy)
	}
	if s.ContentEdge != "mild" {
		t.Fatalf("expected normalized content edge, got %q", s.ContentEdge)
	}
	if len(s.HumorTypes) != 2 || s.HumorTypes[0] != "deadpan" || s.HumorTypes[1] != "observational" {
		t.Fatalf("expected deduplicated normalized humor types, got %v", s.HumorTypes)
	}
	if s.ActorCount != "solo" {
		t.Fatalf("expected actor count solo, got %q", s.ActorCount)
	}
}

func TestExtractNestedV1(t *testing.T) {
	raw := map[string]any{
		"analysis": map[string]any{
			"tone": map[string]any{
				"energy_level": 7.0,
				"warmth":       5.0,
			},
			"quality": map[string]any{
				"coherence": 0.8,
			},
			"risk": map[string]any{
				"content_edge": "edgy",
			},
		},
	}

	result := Extract(raw)
	if !result.Success {
		t.Fatalf("expected success, errors: %v", result.Errors)
	}

	s := result.Signals
	if s.SchemaVersion != domain.SchemaV1 {
		t.Fatalf("expected inferred v1, got %s", s.SchemaVersion)
	}
	if s.Energy == nil || *s.Energy != 7 {
		t.Fatalf("expected energy 7 via legacy path, got %v", s.Energy)
	}
	if s.ContentEdge != "edgy" {
		t.Fatalf("expected content edge edgy, got %q", s.ContentEdge)
	}
}

func TestExtractFirstMatchingPathWins(t *testing.T) {
	raw := map[string]any{
		"schema_version": "v2",
		"energy":         9.0,
		"analysis": map[string]any{
			"tone": map[string]any{"energy": 2.0},
		},
	}

	result := Extract(raw)
	if result.Signals.Energy == nil || *result.Signals.Energy != 9 {
		t.Fatalf("expected flat path to win, got %v", result.Signals.Energy)
	}
}

func TestExtractDropsOutOfRangeValues(t *testing.T) {
	raw := map[string]any{
		"schema_version": "v2",
		"energy":         15.0, // above [1,10]
		"coherence":      1.5,  // above [0,1]
	}

	result := Extract(raw)
	if !result.Success {
		t.Fatal("out-of-range fields must not fail extraction")
	}
	if result.Signals.Energy != nil {
		t.Fatalf("expected out-of-range energy dropped, got %v", *result.Signals.Energy)
	}
	if result.Signals.Coherence != nil {
		t.Fatal("expected out-of-range coherence dropped, not clamped")
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", result.Warnings)
	}
}

func TestExtractCommaSeparatedFallback(t *testing.T) {
	raw := map[string]any{
		"schema_version": "v2",
		"vibes":          "cozy, upbeat , cozy",
	}

	result := Extract(raw)
	vibes := result.Signals.Vibes
	if len(vibes) != 2 || vibes[0] != "cozy" || vibes[1] != "upbeat" {
		t.Fatalf("expected split and deduplicated vibes, got %v", vibes)
	}
}

func TestExtractUnrecognizedOrdinalDropped(t *testing.T) {
	raw := map[string]any{
		"schema_version": "v2",
		"actor_count":    "an entire film crew",
	}

	result := Extract(raw)
	if result.Signals.ActorCount != "" {
		t.Fatalf("expected unrecognized ordinal dropped, got %q", result.Signals.ActorCount)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected a warning for the dropped value")
	}
}

func TestExtractCoverage(t *testing.T) {
	result := Extract(map[string]any{"schema_version": "v2"})
	if result.Coverage != 0 {
		t.Fatalf("expected zero coverage for empty observation, got %v", result.Coverage)
	}

	full := Extract(map[string]any{
		"schema_version": "v2",
		"energy":         8.0,
		"warmth":         6.0,
	})
	expected := 2.0 / float64(expectedKeys(domain.SchemaV2))
	if full.Coverage != expected {
		t.Fatalf("expected coverage %v, got %v", expected, full.Coverage)
	}
}

func TestExtractCoverageBoundedForLegacyDocs(t *testing.T) {
	base := map[string]any{
		"analysis": map[string]any{
			"tone": map[string]any{
				"energy_level": 7.0,
				"warmth":       5.0,
			},
			"quality": map[string]any{
				"coherence": 0.8,
			},
		},
	}
	baseline := Extract(base)
	if baseline.Signals.SchemaVersion != domain.SchemaV1 {
		t.Fatalf("expected inferred v1, got %s", baseline.Signals.SchemaVersion)
	}

	enriched := map[string]any{
		"analysis": map[string]any{
			"tone": map[string]any{
				"energy_level": 7.0,
				"warmth":       5.0,
			},
			"quality": map[string]any{
				"coherence": 0.8,
			},
			"personality": map[string]any{
				"subtext":       []any{"earnest"},
				"traits":        []any{"patient", "meticulous"},
				"service_ethos": []any{"hospitality first"},
			},
		},
	}
	result := Extract(enriched)
	if result.Coverage > 1.0 {
		t.Fatalf("coverage must stay within [0,1], got %v", result.Coverage)
	}
	if result.Coverage != baseline.Coverage {
		t.Fatalf("keys outside the v1 expectation set must not move coverage: %v vs %v",
			result.Coverage, baseline.Coverage)
	}
	if len(result.Signals.Traits) != 2 || len(result.Signals.Subtext) != 1 {
		t.Fatal("personality fields should still extract from legacy docs")
	}
}

func TestExtractFromJSONBytes(t *testing.T) {
	result := Extract([]byte(`{"schema_version":"v2","energy":4}`))
	if !result.Success {
		t.Fatalf("expected success from raw JSON, errors: %v", result.Errors)
	}
	if result.Signals.Energy == nil || *result.Signals.Energy != 4 {
		t.Fatalf("expected energy 4, got %v", result.Signals.Energy)
	}

	if Extract([]byte(`not json`)).Success {
		t.Fatal("expected failure for malformed JSON bytes")
	}
}
