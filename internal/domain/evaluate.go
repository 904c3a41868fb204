package domain

import "math"

// ─── Verdict Types ──────────────────────────────────────────────────────────

// Verdict classifies an offer against the rider's thresholds.
type Verdict string

const (
	VerdictNoInput      Verdict = "no_input"      // no price entered yet
	VerdictAccept       Verdict = "accept"
	VerdictReject       Verdict = "reject"
	VerdictStrongReject Verdict = "strong_reject" // both thresholds failed
)

// Tier grades an acceptable offer's per-km rate. Informational only —
// it styles the recommendation, it never changes the verdict.
type Tier string

const (
	TierGreat   Tier = "great"
	TierWarning Tier = "warning"
)

// Recommendation is the evaluator's full output.
type Recommendation struct {
	Verdict       Verdict `json:"verdict"`
	PricePerKm    int64   `json:"price_per_km,omitempty"`
	Tier          Tier    `json:"tier,omitempty"`
	BelowMinPrice bool    `json:"below_min_price"`
	BelowMinPerKm bool    `json:"below_min_per_km"`
	// Partial is set when no distance was provided, so only the price
	// threshold could be checked. Callers may prompt for more input.
	Partial bool `json:"partial,omitempty"`
}

// ─── Recommendation Evaluator ───────────────────────────────────────────────

// Evaluate maps a raw offer and the rider's thresholds to a verdict.
// Pure and deterministic: no side effects, safe to call on every keystroke.
func Evaluate(offer Offer, th Thresholds) Recommendation {
	if offer.Price == 0 {
		return Recommendation{Verdict: VerdictNoInput}
	}

	rec := Recommendation{
		BelowMinPrice: offer.Price < th.MinPrice,
	}

	if offer.DistanceKm <= 0 {
		// Price-only basis: partial evaluation until a distance arrives.
		rec.Partial = true
		if rec.BelowMinPrice {
			rec.Verdict = VerdictReject
		} else {
			rec.Verdict = VerdictAccept
		}
		return rec
	}

	rec.PricePerKm = roundHalfUp(float64(offer.Price) / offer.DistanceKm)
	rec.BelowMinPerKm = rec.PricePerKm < th.MinPricePerKm

	switch {
	case rec.BelowMinPrice && rec.BelowMinPerKm:
		rec.Verdict = VerdictStrongReject
	case rec.BelowMinPrice || rec.BelowMinPerKm:
		rec.Verdict = VerdictReject
	default:
		rec.Verdict = VerdictAccept
		if float64(rec.PricePerKm) >= float64(th.MinPricePerKm)*1.2 {
			rec.Tier = TierGreat
		} else {
			rec.Tier = TierWarning
		}
	}
	return rec
}

// roundHalfUp rounds to the nearest integer, .5 rounding up.
// Matters on boundary cases where a per-km ratio lands exactly on .5.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// ─── Loyalty Risk ───────────────────────────────────────────────────────────

// LoyaltyRisk classifies the rider's acceptance-rate pattern. Platform
// assignment algorithms are assumed to steer worse offers toward riders
// who accept everything; this heuristic is the reason the engine exists.
type LoyaltyRisk string

const (
	RiskInsufficientData LoyaltyRisk = "insufficient_data"
	RiskHigh             LoyaltyRisk = "high"
	RiskModerate         LoyaltyRisk = "moderate"
	RiskFavorable        LoyaltyRisk = "favorable"
)

// Loyalty-warning gate, shared by the period classification and the
// same-day warning flag. Both call sites must stay in sync.
const (
	loyaltyMinCalls   = 5
	loyaltyHighRate   = 80
	loyaltyModerateRate = 60
)

// ClassifyLoyalty derives the risk class from an acceptance rate (percent)
// and the number of calls in the window. Fewer than 5 calls is not enough
// signal regardless of the rate.
func ClassifyLoyalty(acceptRate, totalCalls int) LoyaltyRisk {
	switch {
	case totalCalls < loyaltyMinCalls:
		return RiskInsufficientData
	case acceptRate >= loyaltyHighRate:
		return RiskHigh
	case acceptRate >= loyaltyModerateRate:
		return RiskModerate
	default:
		return RiskFavorable
	}
}

// LoyaltyWarning reports the same-day warning flag: same predicate as
// RiskHigh, evaluated over only the current day's calls.
func LoyaltyWarning(acceptRate, totalCalls int) bool {
	return totalCalls >= loyaltyMinCalls && acceptRate >= loyaltyHighRate
}

// Advice returns the coaching line shown with a classification.
func (r LoyaltyRisk) Advice() string {
	switch r {
	case RiskHigh:
		return "Acceptance rate too high — the algorithm may flag you as desperate. Reject low offers aggressively."
	case RiskModerate:
		return "Acceptance rate is in a reasonable band. Hold your minimum-price line."
	case RiskFavorable:
		return "Low acceptance rate — the algorithm is statistically likely to send you better offers."
	default:
		return "Not enough data yet. Record more calls."
	}
}
