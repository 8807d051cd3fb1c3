package score

import "dtex/internal/tokens"

// Weights maps a context/role tag to its base confidence weight. The table is
// the single source of scoring policy: collectors tag observations with these
// role names and every category is scored through the same mapping.
type Weights map[string]float64

// DefaultWeights returns the stock context-to-weight table. Brand-bearing
// contexts dominate; generic elements score lowest so that a single logo
// occurrence always outranks any number of filler divs.
func DefaultWeights() Weights {
	return Weights{
		"logo":    1.0,
		"brand":   0.95,
		"theme":   0.9,
		"header":  0.7,
		"hero":    0.7,
		"button":  0.6,
		"nav":     0.55,
		"heading": 0.5,
		"link":    0.45,
		"layout":  0.4,
		"footer":  0.35,
		"body":    0.3,
		"generic": 0.1,
	}
}

// Thresholds for bucketing a numeric score into a tier. Fixed so that
// identical input always yields identical output.
const (
	highThreshold   = 0.65
	mediumThreshold = 0.35
)

// Frequency boost: +0.03 per repeat occurrence, capped at +0.15 so it can
// never lift a generic context past a brand-bearing one.
const (
	boostStep = 0.03
	boostCap  = 0.15
)

// Scorer assigns confidence tiers to raw observations.
type Scorer struct {
	weights Weights
}

// New creates a Scorer. A nil weights table falls back to DefaultWeights.
func New(weights Weights) *Scorer {
	if weights == nil {
		weights = DefaultWeights()
	}
	return &Scorer{weights: weights}
}

// Weight returns the base weight for a context tag. Unknown tags score as
// "generic".
func (s *Scorer) Weight(context string) float64 {
	if w, ok := s.weights[context]; ok {
		return w
	}
	return s.weights["generic"]
}

// Score buckets an observation into a tier from its context tag and how many
// elements shared it. Context dominates: the frequency boost is capped below
// the gap between generic and brand-bearing weights.
func (s *Scorer) Score(context string, count int) tokens.Confidence {
	total := s.Weight(context) + boost(count)
	switch {
	case total >= highThreshold:
		return tokens.ConfidenceHigh
	case total >= mediumThreshold:
		return tokens.ConfidenceMedium
	default:
		return tokens.ConfidenceLow
	}
}

func boost(count int) float64 {
	if count <= 1 {
		return 0
	}
	b := boostStep * float64(count-1)
	if b > boostCap {
		return boostCap
	}
	return b
}
