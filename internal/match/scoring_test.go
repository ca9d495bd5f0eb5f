package match

import (
	"math"
	"testing"

	"github.com/partie/brandmatch-go/internal/domain"
)

func TestScoreWeightsSumToOverall(t *testing.T) {
	components, overall := Score(simpleVideo(), permissiveBrand())

	if len(components) != 4 {
		t.Fatalf("expected 4 components, got %d", len(components))
	}

	weightSum := 0.0
	weightedSum := 0.0
	for _, c := range components {
		weightSum += c.Weight
		weightedSum += c.Weighted
		if math.Abs(c.Weighted-c.Score*c.Weight) > 1e-9 {
			t.Fatalf("%s: weighted %f != score %f * weight %f", c.Name, c.Weighted, c.Score, c.Weight)
		}
	}

	if math.Abs(weightSum-1.0) > 1e-9 {
		t.Fatalf("weights sum to %f, want 1", weightSum)
	}
	if math.Abs(weightedSum-overall) > 1e-9 {
		t.Fatalf("overall %f != sum of weighted %f", overall, weightedSum)
	}
}

func TestComponentOrderAndWeights(t *testing.T) {
	components, _ := Score(simpleVideo(), permissiveBrand())

	want := []struct {
		name   string
		weight float64
	}{
		{ComponentAudience, 0.35},
		{ComponentTone, 0.30},
		{ComponentFormat, 0.20},
		{ComponentAspiration, 0.15},
	}

	for i, w := range want {
		if components[i].Name != w.name {
			t.Fatalf("component %d: got %s, want %s", i, components[i].Name, w.name)
		}
		if components[i].Weight != w.weight {
			t.Fatalf("%s: weight %f, want %f", w.name, components[i].Weight, w.weight)
		}
	}
}

func TestAspirationLevelUpReward(t *testing.T) {
	brand := permissiveBrand()
	brand.Ambition = domain.AmbitionLevel{CurrentTier: "low", Aspiration: "level_up"}

	cases := []struct {
		videoTier string
		want      float64
	}{
		{"medium", 1.0},
		{"high", 0.5},
		{"low", 0.4},
	}

	for _, tc := range cases {
		got := aspirationAffinity(brand.Ambition.Aspiration, brand.Ambition.CurrentTier, tc.videoTier)
		if got != tc.want {
			t.Errorf("level_up from low vs %s: got %f, want %f", tc.videoTier, got, tc.want)
		}
	}
}

func TestAspirationMaintainAndTransform(t *testing.T) {
	if got := aspirationAffinity("maintain", "medium", "medium"); got != 1.0 {
		t.Errorf("maintain equal tier: got %f, want 1.0", got)
	}
	if got := aspirationAffinity("maintain", "high", "low"); got != 0.2 {
		t.Errorf("maintain two below: got %f, want 0.2", got)
	}
	if got := aspirationAffinity("transform", "low", "high"); got != 1.0 {
		t.Errorf("transform two above: got %f, want 1.0", got)
	}
	if got := aspirationAffinity("level_up", "", "medium"); got != unknownCredit {
		t.Errorf("unknown current tier: got %f, want %f", got, unknownCredit)
	}
}

func TestOrdinalAffinity(t *testing.T) {
	if got := ordinalAffinity(domain.AgeCodeScale, "25-34", "25-34"); got != 1 {
		t.Errorf("exact: got %f", got)
	}
	if got := ordinalAffinity(domain.AgeCodeScale, "18-24", "25-34"); got != adjacentCredit {
		t.Errorf("adjacent: got %f", got)
	}
	if got := ordinalAffinity(domain.AgeCodeScale, domain.Broad, "25-34"); got != adjacentCredit {
		t.Errorf("broad wildcard: got %f", got)
	}
	if got := ordinalAffinity(domain.AgeCodeScale, "", "25-34"); got != unknownCredit {
		t.Errorf("unknown: got %f", got)
	}
	if got := ordinalAffinity(domain.AgeCodeScale, "18-24", "45+"); got != 0 {
		t.Errorf("distant: got %f", got)
	}
}

func TestOverlapAffinity(t *testing.T) {
	if got := overlapAffinity(nil, []string{"foodie"}); got != unknownCredit {
		t.Errorf("empty video tags: got %f", got)
	}
	got := overlapAffinity([]string{"foodie", "nightlife"}, []string{"foodie", "fitness", "nightlife", "family"})
	if got != 0.5 {
		t.Errorf("half overlap: got %f, want 0.5", got)
	}
}

func TestBandAffinity(t *testing.T) {
	band := &domain.Band{Min: 4, Max: 6}

	if got := bandAffinity(floatPtr(5), band); got != 1 {
		t.Errorf("inside band: got %f", got)
	}
	if got := bandAffinity(nil, band); got != unknownCredit {
		t.Errorf("unknown value: got %f", got)
	}
	if got := bandAffinity(floatPtr(7.5), band); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("falloff: got %f, want 0.5", got)
	}
	if got := bandAffinity(floatPtr(9.5), band); got != 0 {
		t.Errorf("beyond falloff: got %f, want 0", got)
	}
}

// A video whose energy sits inside the brand's narrow band must out-score the
// same video against a brand whose band excludes it, everything else equal.
func TestToneBandDiscriminates(t *testing.T) {
	video := simpleVideo()
	video.Tone.Energy = floatPtr(8)
	video.Tone.Formality = floatPtr(3)
	video.Tone.Warmth = floatPtr(7)

	inBand := permissiveBrand()
	inBand.Tone.Energy = &domain.Band{Min: 7, Max: 9}
	inBand.Tone.Formality = &domain.Band{Min: 2, Max: 4}
	inBand.Tone.Warmth = &domain.Band{Min: 6, Max: 8}

	outOfBand := permissiveBrand()
	outOfBand.Tone.Energy = &domain.Band{Min: 1, Max: 3}
	outOfBand.Tone.Formality = &domain.Band{Min: 8, Max: 10}
	outOfBand.Tone.Warmth = &domain.Band{Min: 1, Max: 2}

	inScore := scoreTone(video, inBand)
	outScore := scoreTone(video, outOfBand)

	if inScore.Score <= outScore.Score {
		t.Fatalf("in-band tone %f must beat out-of-band %f", inScore.Score, outScore.Score)
	}
	if inScore.Score < 0.75 {
		t.Errorf("full band match with moderate humor should score high, got %f", inScore.Score)
	}
}

func TestHumorAffinity(t *testing.T) {
	cases := []struct {
		level   string
		present bool
		want    float64
	}{
		{"none", true, 0.3},
		{"none", false, 1.0},
		{"high", true, 1.0},
		{"high", false, 0.2},
		{"moderate", true, 0.9},
		{"moderate", false, 0.5},
		{"", true, unknownCredit},
	}

	for _, tc := range cases {
		if got := humorAffinity(tc.level, tc.present); got != tc.want {
			t.Errorf("humorAffinity(%q, %v): got %f, want %f", tc.level, tc.present, got, tc.want)
		}
	}
}

func TestFormatBonuses(t *testing.T) {
	brand := permissiveBrand()
	brand.Audience.Occasions = []string{"bar"}

	video := simpleVideo()
	video.Intent = "entertain"

	base := scoreFormat(video, brand)
	if base.Score != 0.6 {
		t.Fatalf("intent fit alone: got %f, want 0.6", base.Score)
	}

	video.HasRepeatableFormat = true
	video.CTATypes = []string{"visit", "follow"}
	boosted := scoreFormat(video, brand)
	if boosted.Score != 1.0 {
		t.Fatalf("fit + repeatable + visit CTA should clamp to 1.0, got %f", boosted.Score)
	}

	video.Intent = "unknown_intent"
	video.HasRepeatableFormat = false
	video.CTATypes = nil
	if got := scoreFormat(video, brand); got.Score != unknownCredit {
		t.Fatalf("unrecognized intent: got %f, want %f", got.Score, unknownCredit)
	}
}
