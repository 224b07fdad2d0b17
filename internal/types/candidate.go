package types

// Tier orders extraction candidates by confidence. Lower is stronger.
// A weaker-tier candidate is used only when every stronger tier is empty;
// tiers are never merged.
type Tier int

const (
	// TierStructured — machine-readable page data (JSON-LD, variation blobs).
	TierStructured Tier = iota

	// TierSelector — a semantic CSS selector or meta tag matched.
	TierSelector

	// TierHeuristic — regex or text-proximity match against raw markup.
	TierHeuristic

	// TierFallback — positional guess or configured default.
	TierFallback
)

func (t Tier) String() string {
	switch t {
	case TierStructured:
		return "structured"
	case TierSelector:
		return "selector"
	case TierHeuristic:
		return "heuristic"
	case TierFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Candidate is a single extractor's proposed value tagged with confidence.
type Candidate[T any] struct {
	Value T
	Tier  Tier

	// Source names the rule that produced the value, for debug logging.
	Source string
}

// BestCandidate returns the value of the first candidate of the strongest
// non-empty tier. Candidates are expected in the order extractors emit them,
// which is already strongest-first within a tier.
func BestCandidate[T any](cands []Candidate[T]) (T, bool) {
	best := -1
	for i, c := range cands {
		if best < 0 || c.Tier < cands[best].Tier {
			best = i
		}
	}
	if best < 0 {
		var zero T
		return zero, false
	}
	return cands[best].Value, true
}
