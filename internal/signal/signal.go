package signal

// Recommendation is the discrete trading signal derived from price edge.
type Recommendation string

const (
	StrongBuy    Recommendation = "Strong Buy"
	ConsiderBuy  Recommendation = "Consider Buy"
	Neutral      Recommendation = "Neutral"
	ConsiderSell Recommendation = "Consider Sell"
	StrongSell   Recommendation = "Strong Sell"
)

// edgeThreshold separates the "Consider" band from the "Strong" band,
// in absolute price units (10 cents). Fixed policy.
const edgeThreshold = 0.10

// Classify maps a signed edge (market price minus theoretical price) to a
// recommendation. Total over all reals. An edge of exactly +-0.10 stays in
// the Consider band: only strictly more than 10 cents of mispricing earns
// a Strong signal.
func Classify(edge float64) Recommendation {
	switch {
	case edge < -edgeThreshold:
		return StrongBuy
	case edge < 0:
		return ConsiderBuy
	case edge > edgeThreshold:
		return StrongSell
	case edge > 0:
		return ConsiderSell
	}
	return Neutral
}
