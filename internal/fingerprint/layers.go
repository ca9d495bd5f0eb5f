package fingerprint

import (
	"github.com/partie/brandmatch-go/internal/domain"
	"github.com/partie/brandmatch-go/internal/util"
)

// Execution-quality composite weights. Canonical since v3; older weightings
// are deprecated and intentionally not reproduced.
const (
	coherenceWeight       = 0.35
	distinctivenessWeight = 0.35
	confidenceWeight      = 0.15
	alignmentWeight       = 0.15

	neutralMidpoint = 0.5
	topNLimit       = 3
)

// trustWeight computes the per-video scalar weight used by the centroid:
// normalized quality rating at 0.6 plus coherence at 0.4, each term
// defaulting to the neutral midpoint when absent.
func trustWeight(rating *domain.VideoRating) float64 {
	quality := neutralMidpoint
	coherence := neutralMidpoint

	if rating != nil {
		if rating.Quality != nil {
			quality = *rating.Quality / 10.0
		}
		if rating.Coherence != nil {
			coherence = *rating.Coherence
		}
	}

	return quality*0.6 + coherence*0.4
}

// executionComposite blends execution-quality signals for one video. Missing
// terms contribute the neutral midpoint, so an unanalyzed attribute neither
// rewards nor punishes.
func executionComposite(s *domain.VideoSignals) float64 {
	if s == nil {
		return neutralMidpoint
	}

	term := func(v *float64) float64 {
		if v == nil {
			return neutralMidpoint
		}
		return *v
	}

	confidenceTerm := neutralMidpoint
	if s.Confidence != nil {
		confidenceTerm = *s.Confidence / 10.0
	}

	return term(s.Coherence)*coherenceWeight +
		term(s.Distinctiveness)*distinctivenessWeight +
		confidenceTerm*confidenceWeight +
		term(s.MessageAlignment)*alignmentWeight
}

// mode returns the most frequent non-empty value, ties broken by first-seen
// order. Empty string when no value is present.
func mode(values []string) string {
	counts := make(map[string]int)
	var order []string

	for _, v := range values {
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	best := ""
	bestCount := 0
	for _, v := range order {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

// topByFrequency returns up to n values ordered by descending frequency,
// ties broken by first-seen order.
func topByFrequency(values []string, n int) []string {
	counts := make(map[string]int)
	var order []string

	for _, v := range values {
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	result := make([]string, 0, n)
	used := make(map[string]struct{})

	for len(result) < n && len(result) < len(order) {
		best := ""
		bestCount := 0
		for _, v := range order {
			if _, taken := used[v]; taken {
				continue
			}
			if counts[v] > bestCount {
				best = v
				bestCount = counts[v]
			}
		}
		if best == "" {
			break
		}
		used[best] = struct{}{}
		result = append(result, best)
	}

	return result
}

// aggregateQuality builds the L1 layer. Service fit averages only present
// ratings; execution quality averages the per-video composites over videos
// that have any signals.
func aggregateQuality(ratings []*domain.VideoRating, signals []*domain.VideoSignals) domain.QualityLayer {
	layer := domain.QualityLayer{}

	qualities := make([]*float64, 0, len(ratings))
	for _, r := range ratings {
		if r != nil {
			qualities = append(qualities, r.Quality)
		} else {
			qualities = append(qualities, nil)
		}
	}

	if meanQuality, count := util.MeanPtr(qualities); count > 0 {
		layer.ServiceFit = &meanQuality
		layer.RatedVideos = count
	}

	composites := make([]float64, 0, len(signals))
	for _, s := range signals {
		if s == nil {
			continue
		}
		composites = append(composites, executionComposite(s))
	}

	if len(composites) > 0 {
		layer.ExecutionQuality = util.Mean(composites)
	} else {
		layer.ExecutionQuality = neutralMidpoint
	}

	return layer
}

// aggregatePersonality builds the L2 layer: unweighted means for numeric
// tone, mode for single categoricals, top-3 for multi-valued attributes, and
// plain deduplication for free text.
func aggregatePersonality(signals []*domain.VideoSignals) domain.PersonalityLayer {
	layer := domain.PersonalityLayer{}

	var energy, warmth, formality, selfSeriousness, confidence []*float64
	var ageCodes, accessibilities, priceTiers, edginess []string
	var humorTypes, vibes, occasions, ctaTypes []string
	var subtext, traits, ethos []string

	for _, s := range signals {
		if s == nil {
			continue
		}

		energy = append(energy, s.Energy)
		warmth = append(warmth, s.Warmth)
		formality = append(formality, s.Formality)
		selfSeriousness = append(selfSeriousness, s.SelfSeriousness)
		confidence = append(confidence, s.Confidence)

		ageCodes = append(ageCodes, s.AgeCode)
		accessibilities = append(accessibilities, s.Accessibility)
		priceTiers = append(priceTiers, s.PriceTier)
		edginess = append(edginess, s.ContentEdge)

		humorTypes = append(humorTypes, s.HumorTypes...)
		vibes = append(vibes, s.Vibes...)
		occasions = append(occasions, s.Occasions...)
		ctaTypes = append(ctaTypes, s.CTATypes...)

		subtext = append(subtext, s.Subtext...)
		traits = append(traits, s.Traits...)
		ethos = append(ethos, s.ServiceEthos...)
	}

	assignMean := func(dst **float64, values []*float64) {
		if mean, count := util.MeanPtr(values); count > 0 {
			*dst = &mean
		}
	}
	assignMean(&layer.Energy, energy)
	assignMean(&layer.Warmth, warmth)
	assignMean(&layer.Formality, formality)
	assignMean(&layer.SelfSeriousness, selfSeriousness)
	assignMean(&layer.Confidence, confidence)

	layer.AgeCode = mode(ageCodes)
	layer.Accessibility = mode(accessibilities)
	layer.PriceTier = mode(priceTiers)
	layer.Edginess = mode(edginess)

	layer.HumorTypes = topByFrequency(humorTypes, topNLimit)
	layer.Vibes = topByFrequency(vibes, topNLimit)
	layer.Occasions = topByFrequency(occasions, topNLimit)
	layer.CTATypes = topByFrequency(ctaTypes, topNLimit)

	layer.Subtext = util.UniqueStrings(subtext)
	layer.Traits = util.UniqueStrings(traits)
	layer.ServiceEthos = util.UniqueStrings(ethos)

	return layer
}

// aggregateProduction builds the L3 layer. The repeatable-format percentage
// counts explicit true flags over all videos in the set (boolean, not
// tri-state: unknown counts as false).
func aggregateProduction(signals []*domain.VideoSignals, totalVideos int) domain.ProductionLayer {
	layer := domain.ProductionLayer{}

	var audio, lighting []*float64
	var formats []string
	repeatable := 0

	for _, s := range signals {
		if s == nil {
			continue
		}

		audio = append(audio, s.AudioQuality)
		lighting = append(lighting, s.LightingQuality)

		if s.HasRepeatableFormat != nil && *s.HasRepeatableFormat {
			repeatable++
		}
		if s.ContentFormat != "" {
			formats = append(formats, s.ContentFormat)
		}
	}

	if mean, count := util.MeanPtr(audio); count > 0 {
		layer.AudioQuality = &mean
	}
	if mean, count := util.MeanPtr(lighting); count > 0 {
		layer.LightingQuality = &mean
	}

	if totalVideos > 0 {
		layer.HasRepeatableFormatPct = float64(repeatable) / float64(totalVideos)
	}
	layer.NamedFormats = util.UniqueStrings(formats)

	return layer
}
