package format

import "fmt"

// Tier is a coarse bucket derived from a vote average
type Tier int

const (
	// TierMinimal covers scores below 6
	TierMinimal Tier = iota
	// TierLow covers scores from 6 up to 7
	TierLow
	// TierMedium covers scores from 7 up to 8
	TierMedium
	// TierHigh covers scores of 8 and above
	TierHigh
)

// String returns the string representation of a Tier
func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return "minimal"
	}
}

// ClassifyRating maps a score to its tier. Each tier includes its lower bound.
func ClassifyRating(score float64) Tier {
	switch {
	case score >= 8:
		return TierHigh
	case score >= 7:
		return TierMedium
	case score >= 6:
		return TierLow
	default:
		return TierMinimal
	}
}

// Rating formats a score with one decimal place
func Rating(score float64) string {
	return fmt.Sprintf("%.1f", score)
}
