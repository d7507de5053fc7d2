package batch

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Stat is one metric aggregated over an experiment condition's runs.
type Stat struct {
	Mean     float64 `json:"mean"`
	Std      float64 `json:"std"`
	CI95Low  float64 `json:"ci_95_lower"`
	CI95High float64 `json:"ci_95_upper"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// tCritical is the two-sided 95% t quantile for small degrees of
// freedom, stepping down to the normal 1.96 for large samples.
var tTable = []struct {
	df int
	t  float64
}{
	{1, 12.706}, {2, 4.303}, {3, 3.182}, {4, 2.776}, {5, 2.571},
	{6, 2.447}, {7, 2.365}, {8, 2.306}, {9, 2.262}, {10, 2.228},
	{15, 2.131}, {20, 2.086}, {25, 2.060}, {30, 2.042}, {40, 2.021},
	{50, 2.009}, {100, 1.984},
}

func tCritical(df int) float64 {
	if df < 1 {
		return 0
	}
	t := 1.96
	for _, e := range tTable {
		if df >= e.df {
			t = e.t
			continue
		}
		break
	}
	if df <= tTable[len(tTable)-1].df {
		return t
	}
	return 1.96
}

// summarize computes mean, sample standard deviation, a 95% t-interval
// on the mean, and the range.
func summarize(values []float64) Stat {
	n := len(values)
	if n == 0 {
		return Stat{}
	}
	data := stats.Float64Data(values)
	mean, _ := stats.Mean(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)

	std := 0.0
	if n > 1 {
		std, _ = stats.StandardDeviationSample(data)
	}

	half := 0.0
	if n > 1 {
		half = tCritical(n-1) * std / math.Sqrt(float64(n))
	}
	return Stat{
		Mean:     mean,
		Std:      std,
		CI95Low:  mean - half,
		CI95High: mean + half,
		Min:      min,
		Max:      max,
	}
}
