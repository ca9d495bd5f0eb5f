package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/partie/brandmatch-go/internal/domain"
)

// LayerInput is the structured summary fed to a generator: the three
// fingerprint layers plus identifying context.
type LayerInput struct {
	ProfileName string                  `json:"profile_name,omitempty"`
	VideoCount  int                     `json:"video_count"`
	Quality     domain.QualityLayer     `json:"quality"`
	Personality domain.PersonalityLayer `json:"personality"`
	Production  domain.ProductionLayer  `json:"production"`
}

// Generator produces a short prose summary of a fingerprint. Implementations
// may fail; callers fall back to the template generator, which cannot.
type Generator interface {
	GenerateSummary(ctx context.Context, input LayerInput) (string, error)
}

// TemplateGenerator assembles a deterministic summary from layer values.
// It never returns an empty string or an error.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

func (tg *TemplateGenerator) GenerateSummary(_ context.Context, input LayerInput) (string, error) {
	subject := input.ProfileName
	if subject == "" {
		subject = "This profile"
	}

	var parts []string

	parts = append(parts, fmt.Sprintf("%s spans %d analyzed videos with an execution quality of %.2f.",
		subject, input.VideoCount, input.Quality.ExecutionQuality))

	if input.Quality.ServiceFit != nil {
		parts = append(parts, fmt.Sprintf("Rated service fit averages %.1f out of 10 across %d rated videos.",
			*input.Quality.ServiceFit, input.Quality.RatedVideos))
	}

	if tone := describeTone(input.Personality); tone != "" {
		parts = append(parts, tone)
	}

	if len(input.Personality.Vibes) > 0 {
		parts = append(parts, fmt.Sprintf("Dominant vibes: %s.", strings.Join(input.Personality.Vibes, ", ")))
	}

	if input.Production.HasRepeatableFormatPct > 0 {
		parts = append(parts, fmt.Sprintf("%.0f%% of videos use a repeatable format.",
			input.Production.HasRepeatableFormatPct*100))
	}

	return strings.Join(parts, " "), nil
}

func describeTone(p domain.PersonalityLayer) string {
	var descriptors []string

	if p.Energy != nil {
		if *p.Energy >= 7 {
			descriptors = append(descriptors, "high-energy")
		} else if *p.Energy <= 4 {
			descriptors = append(descriptors, "low-key")
		}
	}
	if p.Warmth != nil && *p.Warmth >= 7 {
		descriptors = append(descriptors, "warm")
	}
	if p.Formality != nil {
		if *p.Formality >= 7 {
			descriptors = append(descriptors, "polished")
		} else if *p.Formality <= 4 {
			descriptors = append(descriptors, "casual")
		}
	}

	if len(descriptors) == 0 {
		return ""
	}
	return fmt.Sprintf("The overall tone reads %s.", strings.Join(descriptors, ", "))
}
