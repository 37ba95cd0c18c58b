package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a frame window.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	// Population at window end
	Fish    int `csv:"fish"`
	Food    int `csv:"food"`
	Bubbles int `csv:"bubbles"`
	Chasing int `csv:"chasing"`

	// Events during window
	FoodDropped    int     `csv:"food_dropped"`
	FoodEaten      int     `csv:"food_eaten"`
	FoodSettled    int     `csv:"food_settled"`
	BubblesSpawned int     `csv:"bubbles_spawned"`
	BubblesPopped  int     `csv:"bubbles_popped"`
	Turns          int     `csv:"turns"`
	Notices        int     `csv:"notices"`
	Chases         int     `csv:"chases"`
	Bounces        int     `csv:"bounces"`
	EatRate        float64 `csv:"eat_rate"`

	// Fish |vx| distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// SpeedStats summarizes a set of speed samples.
type SpeedStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Percentile returns the empirical p-quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeSpeedStats calculates mean, standard deviation and percentiles.
func ComputeSpeedStats(values []float64) SpeedStats {
	n := len(values)
	if n == 0 {
		return SpeedStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var s SpeedStats
	if n == 1 {
		s.Mean = sorted[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	}
	s.P10 = Percentile(sorted, 0.10)
	s.P50 = Percentile(sorted, 0.50)
	s.P90 = Percentile(sorted, 0.90)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("fish", s.Fish),
		slog.Int("food", s.Food),
		slog.Int("bubbles", s.Bubbles),
		slog.Int("chasing", s.Chasing),
		slog.Int("food_dropped", s.FoodDropped),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Int("food_settled", s.FoodSettled),
		slog.Int("bubbles_spawned", s.BubblesSpawned),
		slog.Int("bubbles_popped", s.BubblesPopped),
		slog.Int("turns", s.Turns),
		slog.Int("notices", s.Notices),
		slog.Int("chases", s.Chases),
		slog.Int("bounces", s.Bounces),
		slog.Float64("eat_rate", s.EatRate),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
