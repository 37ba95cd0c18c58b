package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p10 of ten", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.0},
		{"p90 of ten", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	// Unsorted on purpose
	values := []float64{0.4, 0.2, 0.6, 0.3, 0.5}
	s := ComputeSpeedStats(values)

	if math.Abs(s.Mean-0.4) > 1e-9 {
		t.Errorf("mean = %v, want 0.4", s.Mean)
	}
	// Sample standard deviation of {0.2..0.6}
	if math.Abs(s.Std-math.Sqrt(0.025)) > 1e-9 {
		t.Errorf("std = %v, want %v", s.Std, math.Sqrt(0.025))
	}
	if s.P50 != 0.4 {
		t.Errorf("p50 = %v, want 0.4", s.P50)
	}
	if s.P10 > s.P50 || s.P50 > s.P90 {
		t.Errorf("percentiles not ordered: p10=%v p50=%v p90=%v", s.P10, s.P50, s.P90)
	}
	if values[0] != 0.4 {
		t.Error("input slice was reordered")
	}
}

func TestComputeSpeedStatsSmall(t *testing.T) {
	if s := ComputeSpeedStats(nil); s != (SpeedStats{}) {
		t.Errorf("empty input = %+v, want zero", s)
	}

	s := ComputeSpeedStats([]float64{0.3})
	if s.Mean != 0.3 || s.Std != 0 {
		t.Errorf("single sample = %+v, want mean 0.3 std 0", s)
	}
}

func TestCollectorFlush(t *testing.T) {
	// 1s windows at 100ms frames
	c := NewCollector(1, 100)
	if got := c.WindowDurationFrames(); got != 10 {
		t.Fatalf("WindowDurationFrames() = %d, want 10", got)
	}

	c.Record(EventFoodDropped)
	c.Record(EventFoodDropped)
	c.Record(EventFoodEaten)
	c.RecordN(EventTurn, 3)
	c.RecordN(EventBounce, 0)

	if c.ShouldFlush(900) {
		t.Error("ShouldFlush(900) = true before window end")
	}
	if !c.ShouldFlush(999.9999) {
		t.Error("ShouldFlush(999.9999) = false at window end")
	}

	stats := c.Flush(10, 1000, Population{Fish: 3, Food: 1}, []float64{0.3, 0.3, 0.3})
	if stats.WindowEndFrame != 10 || stats.SimTimeSec != 1 {
		t.Errorf("window end = %d at %vs, want 10 at 1s", stats.WindowEndFrame, stats.SimTimeSec)
	}
	if stats.FoodDropped != 2 || stats.FoodEaten != 1 || stats.Turns != 3 || stats.Bounces != 0 {
		t.Errorf("counters = %+v", stats)
	}
	if stats.EatRate != 0.5 {
		t.Errorf("EatRate = %v, want 0.5", stats.EatRate)
	}
	if stats.Fish != 3 || math.Abs(stats.SpeedMean-0.3) > 1e-9 {
		t.Errorf("population = %d fish, speed %v", stats.Fish, stats.SpeedMean)
	}

	// Counters reset and the window restarts at the flush time
	if c.Count(EventFoodDropped) != 0 {
		t.Error("counters not reset after flush")
	}
	if c.ShouldFlush(1900) || !c.ShouldFlush(2000) {
		t.Error("next window should end at 2000ms")
	}
}

func TestCollectorWindowFollowsSimTime(t *testing.T) {
	// 1s windows nominally 10 frames of 100ms, but frames arrive every 125ms
	c := NewCollector(1, 100)

	var simMs float64
	frame := int64(0)
	for !c.ShouldFlush(simMs) {
		frame++
		simMs += 125
	}
	if frame != 8 {
		t.Errorf("window closed after %d frames, want 8", frame)
	}

	stats := c.Flush(frame, simMs, Population{}, nil)
	if stats.SimTimeSec != 1 {
		t.Errorf("SimTimeSec = %v, want 1", stats.SimTimeSec)
	}
}

func TestEventTypeString(t *testing.T) {
	if got := EventFoodEaten.String(); got != "food_eaten" {
		t.Errorf("EventFoodEaten.String() = %q", got)
	}
	if got := EventType(200).String(); got != "unknown" {
		t.Errorf("out of range String() = %q", got)
	}
}
