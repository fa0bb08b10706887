package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestComputeReturns_DoublingInOneYear(t *testing.T) {
	series := &Series{
		Points: []NAVPoint{
			{Date: day(2025, 8, 29), NAV: 100},
			{Date: day(2026, 8, 29), NAV: 200},
		},
	}

	returns := ComputeReturns(series)

	require.NotNil(t, returns.OneYear)
	assert.InDelta(t, 100.0, *returns.OneYear, 1.0)
	assert.Nil(t, returns.ThreeYear, "fund younger than the horizon")
	assert.Nil(t, returns.FiveYear)
}

func TestComputeReturns_LongSeries(t *testing.T) {
	// 10% a year for six years.
	points := make([]NAVPoint, 0, 7)
	nav := 100.0
	for i := 0; i <= 6; i++ {
		points = append(points, NAVPoint{Date: day(2020+i, 8, 29), NAV: nav})
		nav *= 1.10
	}

	returns := ComputeReturns(&Series{Points: points})

	require.NotNil(t, returns.OneYear)
	require.NotNil(t, returns.ThreeYear)
	require.NotNil(t, returns.FiveYear)
	assert.InDelta(t, 10.0, *returns.OneYear, 0.5)
	assert.InDelta(t, 10.0, *returns.ThreeYear, 0.5)
	assert.InDelta(t, 10.0, *returns.FiveYear, 0.5)
}

func TestComputeReturns_EmptySeries(t *testing.T) {
	returns := ComputeReturns(nil)

	assert.Nil(t, returns.OneYear)
	assert.Nil(t, returns.ThreeYear)
	assert.Nil(t, returns.FiveYear)
}

func TestSeries_Age(t *testing.T) {
	series := &Series{
		Points: []NAVPoint{
			{Date: day(2024, 1, 1), NAV: 1},
			{Date: day(2026, 1, 1), NAV: 2},
		},
	}

	assert.InDelta(t, 2*365, series.Age().Hours()/24, 2)
	assert.Zero(t, (&Series{}).Age())
}
