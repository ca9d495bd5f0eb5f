package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/partie/brandmatch-go/internal/domain"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (s *stubGenerator) GenerateSummary(_ context.Context, _ LayerInput) (string, error) {
	s.calls++
	return s.text, s.err
}

func sampleInput() LayerInput {
	fit := 7.5
	energy := 8.0
	return LayerInput{
		ProfileName: "Chef Partie",
		VideoCount:  12,
		Quality: domain.QualityLayer{
			ServiceFit:       &fit,
			ExecutionQuality: 0.82,
			RatedVideos:      9,
		},
		Personality: domain.PersonalityLayer{
			Energy: &energy,
			Vibes:  []string{"playful", "fast-paced"},
		},
		Production: domain.ProductionLayer{HasRepeatableFormatPct: 0.5},
	}
}

func TestManagerPrefersPrimary(t *testing.T) {
	primary := &stubGenerator{text: "primary summary"}
	fallback := &stubGenerator{text: "fallback summary"}

	m := NewManager(primary, fallback, zap.NewNop())
	got := m.GenerateSummary(context.Background(), sampleInput())

	if got != "primary summary" {
		t.Fatalf("got %q", got)
	}
	if fallback.calls != 0 {
		t.Fatal("fallback called despite primary success")
	}
}

func TestManagerFallsBackOnError(t *testing.T) {
	primary := &stubGenerator{err: errors.New("quota exhausted")}
	fallback := &stubGenerator{text: "fallback summary"}

	m := NewManager(primary, fallback, zap.NewNop())
	if got := m.GenerateSummary(context.Background(), sampleInput()); got != "fallback summary" {
		t.Fatalf("got %q", got)
	}
}

func TestManagerFallsBackOnBlankOutput(t *testing.T) {
	primary := &stubGenerator{text: "   "}
	fallback := &stubGenerator{text: "fallback summary"}

	m := NewManager(primary, fallback, zap.NewNop())
	if got := m.GenerateSummary(context.Background(), sampleInput()); got != "fallback summary" {
		t.Fatalf("blank primary output must not be accepted, got %q", got)
	}
}

func TestManagerTemplateLastResort(t *testing.T) {
	primary := &stubGenerator{err: errors.New("down")}
	fallback := &stubGenerator{err: errors.New("also down")}

	m := NewManager(primary, fallback, zap.NewNop())
	got := m.GenerateSummary(context.Background(), sampleInput())

	if got == "" {
		t.Fatal("manager must never return an empty summary")
	}
	if !strings.Contains(got, "Chef Partie") {
		t.Fatalf("template output must name the profile, got %q", got)
	}
}

func TestManagerWithoutProviders(t *testing.T) {
	m := NewManager(nil, nil, zap.NewNop())
	if got := m.GenerateSummary(context.Background(), sampleInput()); got == "" {
		t.Fatal("nil providers must still produce a template summary")
	}
}

func TestTemplateGeneratorContent(t *testing.T) {
	tg := NewTemplateGenerator()

	got, err := tg.GenerateSummary(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Chef Partie", "12", "0.82", "7.5", "high-energy", "playful", "50%"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q: %q", want, got)
		}
	}
}

func TestTemplateGeneratorSparseInput(t *testing.T) {
	tg := NewTemplateGenerator()

	got, err := tg.GenerateSummary(context.Background(), LayerInput{VideoCount: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == "" {
		t.Fatal("sparse input must still yield prose")
	}
	if !strings.Contains(got, "This profile") {
		t.Errorf("missing profile fallback subject: %q", got)
	}
}
