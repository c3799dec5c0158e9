package recommend

import (
	"fmt"
	"math"
)

// Advise maps the current price and the predicted next-day price to a
// human-readable comparison and a trade recommendation. Pure function:
// identical inputs always produce identical outputs.
//
// Thresholds are strict: a move of exactly 0.2% up (or 0.1% down) stays in
// the cautious branch. A flat prediction carries no recommendation.
func Advise(currentPrice, tomorrowPrice float64) (comparison, recommendation string) {
	switch {
	case tomorrowPrice > currentPrice:
		pct := round2((tomorrowPrice - currentPrice) / currentPrice * 100)
		comparison = fmt.Sprintf("Tomorrow's price is predicted to be %v%% higher than today's price.", pct)
		if pct > 0.2 {
			recommendation = "Buy 10% of your holdings."
		} else {
			recommendation = "Buy a small percentage of your current holdings like 4 to 2 percent, or nothing."
		}
	case tomorrowPrice < currentPrice:
		pct := round2((currentPrice - tomorrowPrice) / currentPrice * 100)
		comparison = fmt.Sprintf("Tomorrow's price is predicted to be %v%% lower than today's price.", pct)
		if pct > 0.1 {
			recommendation = "Sell 5% of your holdings."
		} else {
			recommendation = "Do nothing or sell a really small percentage like 2% or less."
		}
	default:
		comparison = "Tomorrow's price is predicted to remain the same."
	}
	return comparison, recommendation
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
