// Package stats derives period metrics and the loyalty-risk signal from
// the call and expense ledgers. Aggregation is pure: it never faults, and
// empty input yields all-zero metrics with an insufficient-data class.
package stats

import (
	"math"

	"github.com/ghostrider-app/ghostrider/internal/domain"
)

// Metrics is the derived view for one stats period.
type Metrics struct {
	TotalEarnings     int64   `json:"total_earnings"`
	TotalExpense      int64   `json:"total_expense"`
	// NetIncome may be negative; the sign is preserved so callers can
	// display loss distinctly from magnitude.
	NetIncome         int64   `json:"net_income"`
	DeliveryCount     int     `json:"delivery_count"`
	AvgPrice          int64   `json:"avg_price"`
	TotalDistance     float64 `json:"total_distance_km"`
	PricePerKmOverall int64   `json:"price_per_km"`
	AcceptRate        int     `json:"accept_rate"`
	TotalCalls        int     `json:"total_calls"`

	Risk   domain.LoyaltyRisk `json:"loyalty_risk"`
	Advice string             `json:"loyalty_advice"`
}

// Aggregate filters both ledgers to dateKey >= periodStart and computes
// the period metrics. Earnings, distance, average price and the overall
// per-km rate count accepted calls only; the acceptance rate counts all
// calls in the period.
func Aggregate(calls []domain.CallRecord, expenses []domain.ExpenseRecord, periodStart string) Metrics {
	var m Metrics

	for _, c := range calls {
		if c.DateKey < periodStart {
			continue
		}
		m.TotalCalls++
		if !c.Accepted {
			continue
		}
		m.DeliveryCount++
		m.TotalEarnings += c.Price
		m.TotalDistance += c.DistanceKm
	}

	for _, e := range expenses {
		if e.DateKey < periodStart {
			continue
		}
		m.TotalExpense += e.Amount
	}

	m.NetIncome = m.TotalEarnings - m.TotalExpense

	if m.DeliveryCount > 0 {
		m.AvgPrice = roundHalfUp(float64(m.TotalEarnings) / float64(m.DeliveryCount))
	}
	if m.TotalDistance > 0 {
		m.PricePerKmOverall = roundHalfUp(float64(m.TotalEarnings) / m.TotalDistance)
	}
	if m.TotalCalls > 0 {
		m.AcceptRate = int(roundHalfUp(100 * float64(m.DeliveryCount) / float64(m.TotalCalls)))
	}

	m.Risk = domain.ClassifyLoyalty(m.AcceptRate, m.TotalCalls)
	m.Advice = m.Risk.Advice()
	return m
}

// DayAcceptance computes the acceptance rate over exactly one calendar
// day. Feeds the same-day loyalty warning, which is gated independently
// of the selected stats period.
func DayAcceptance(calls []domain.CallRecord, dateKey string) (rate, total int) {
	accepted := 0
	for _, c := range calls {
		if c.DateKey != dateKey {
			continue
		}
		total++
		if c.Accepted {
			accepted++
		}
	}
	if total == 0 {
		return 0, 0
	}
	return int(roundHalfUp(100 * float64(accepted) / float64(total))), total
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
