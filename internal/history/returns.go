package history

import (
	"math"
	"time"
)

// Returns holds annualized return percentages over standard horizons. A nil
// field means the series is too short for that horizon.
type Returns struct {
	OneYear   *float64
	ThreeYear *float64
	FiveYear  *float64
}

// ComputeReturns derives 1Y/3Y/5Y annualized returns from a series.
func ComputeReturns(series *Series) Returns {
	if series == nil || len(series.Points) == 0 {
		return Returns{}
	}

	latest := series.Points[len(series.Points)-1]

	return Returns{
		OneYear:   annualized(series, latest, 1),
		ThreeYear: annualized(series, latest, 3),
		FiveYear:  annualized(series, latest, 5),
	}
}

// annualized computes the compound annual growth rate between the latest
// point and the first point at or after the horizon start.
func annualized(series *Series, latest NAVPoint, years int) *float64 {
	start := latest.Date.AddDate(-years, 0, 0)

	// The first recorded point must predate the horizon, otherwise the fund
	// is younger than the horizon and the figure would mislead.
	if series.Points[0].Date.After(start) {
		return nil
	}

	base := series.Points[0]
	for _, point := range series.Points {
		if point.Date.After(start) {
			break
		}
		base = point
	}

	if base.NAV <= 0 {
		return nil
	}

	elapsed := latest.Date.Sub(base.Date).Hours() / 24 / 365.25
	if elapsed <= 0 {
		return nil
	}

	rate := (math.Pow(latest.NAV/base.NAV, 1/elapsed) - 1) * 100
	return &rate
}

// Latest returns the most recent NAV point.
func (s *Series) Latest() NAVPoint {
	if len(s.Points) == 0 {
		return NAVPoint{}
	}
	return s.Points[len(s.Points)-1]
}

// Age reports how long the series spans.
func (s *Series) Age() time.Duration {
	if len(s.Points) < 2 {
		return 0
	}
	return s.Points[len(s.Points)-1].Date.Sub(s.Points[0].Date)
}
