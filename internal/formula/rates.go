package formula

// This file is the single authoritative set of derived-ratio formulas.
// Every consumer (weekly summaries, ad tables, adset reports) computes
// its ratios here rather than recomputing ad hoc, so all surfaces agree
// on the same numbers.

// ROAS returns return-on-ad-spend.  A positive stored value reported by
// the ad platform wins over recomputation; otherwise the ratio is derived
// from conversion value and spend.  The numerator is the platform
// conversion value, not storefront revenue; revenue/spend is MER.
func ROAS(stored, convValue, spend float64) float64 {
	if stored > 0 {
		return stored
	}
	return SafeDiv(convValue, spend)
}

// MER returns marketing-efficiency ratio: storefront revenue over spend.
func MER(revenue, spend float64) float64 {
	return SafeDiv(revenue, spend)
}

// AOV returns average order value: revenue over order count.
func AOV(revenue float64, orders int64) float64 {
	return SafeDiv(revenue, float64(orders))
}

// CTR returns click-through rate as a percentage.
func CTR(clicks, impressions int64) float64 {
	return Pct(float64(clicks), float64(impressions))
}

// CVR returns click-to-purchase conversion rate as a percentage.
func CVR(purchases, clicks int64) float64 {
	return Pct(float64(purchases), float64(clicks))
}

// CPA returns cost per acquisition: spend over purchases.
func CPA(spend float64, purchases int64) float64 {
	return SafeDiv(spend, float64(purchases))
}
