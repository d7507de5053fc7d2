package evaluator

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Metrics summarizes per-route count errors.
//
// MAE is the mean absolute per-route error in persons; RMSE weighs large
// errors harder (RMSE >> MAE means outlier routes); tracking rate is the
// share of routes whose ground-truth and estimated person counts agree
// exactly.
type Metrics struct {
	MAE                float64 `json:"mae"`
	RMSE               float64 `json:"rmse"`
	TrackingRate       float64 `json:"tracking_rate"`
	TotalAbsoluteError int     `json:"total_absolute_error"`
	ExactMatches       int     `json:"exact_match_count"`
	TotalRoutes        int     `json:"total_routes"`
}

func computeMetrics(errors []int) Metrics {
	m := Metrics{TotalRoutes: len(errors)}
	if len(errors) == 0 {
		return m
	}

	abs := make(stats.Float64Data, len(errors))
	squared := make(stats.Float64Data, len(errors))
	for i, e := range errors {
		if e < 0 {
			e = -e
		}
		m.TotalAbsoluteError += e
		if e == 0 {
			m.ExactMatches++
		}
		abs[i] = float64(e)
		squared[i] = float64(e) * float64(e)
	}

	m.MAE, _ = stats.Mean(abs)
	meanSquared, _ := stats.Mean(squared)
	m.RMSE = math.Sqrt(meanSquared)
	m.TrackingRate = float64(m.ExactMatches) / float64(m.TotalRoutes)
	return m
}
