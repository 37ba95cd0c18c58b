package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/fishtank/config"
)

func TestParamVectorMatchesDefaults(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	got := pv.ExtractFromConfig(cfg)
	want := pv.DefaultVector()
	if len(got) != pv.Dim() {
		t.Fatalf("extracted %d values, want %d", len(got), pv.Dim())
	}
	for i, spec := range pv.Specs {
		if got[i] != want[i] {
			t.Errorf("%s: config default %f, spec default %f", spec.Path, got[i], want[i])
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	pv.ApplyToConfig(cfg, []float64{100, -1, 0.05, 0, 2})

	if cfg.Fish.AttractionRadius != 20 {
		t.Errorf("attraction radius = %f, want 20", cfg.Fish.AttractionRadius)
	}
	if cfg.Fish.SteerStrength != 0.005 {
		t.Errorf("steer strength = %f, want 0.005", cfg.Fish.SteerStrength)
	}
	if cfg.Fish.SeekGain != 0.05 {
		t.Errorf("seek gain = %f, want 0.05", cfg.Fish.SeekGain)
	}
	if cfg.Fish.ReactionMax < cfg.Fish.ReactionMin {
		t.Errorf("reaction max %f below min %f", cfg.Fish.ReactionMax, cfg.Fish.ReactionMin)
	}
	if cfg.Fish.EatDistance != 2 {
		t.Errorf("eat distance = %f, want 2", cfg.Fish.EatDistance)
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: %f round-tripped to %f", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestComputeFitness(t *testing.T) {
	fe := &FitnessEvaluator{target: 0.8}

	tests := []struct {
		name string
		r    runResult
		want float64
	}{
		{"nothing dropped", runResult{}, 1},
		{"on target", runResult{dropped: 10, eaten: 8}, 0},
		{"all eaten", runResult{dropped: 10, eaten: 10}, 0.04},
		{"none eaten", runResult{dropped: 10}, 0.64},
	}
	for _, tt := range tests {
		if got := fe.computeFitness(tt.r); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: fitness = %f, want %f", tt.name, got, tt.want)
		}
	}
}

func TestRunResultAdd(t *testing.T) {
	var total runResult
	total.add(runResult{dropped: 4, eaten: 2, speedMean: 0.3, windows: 1})
	total.add(runResult{dropped: 6, eaten: 3, settled: 1, speedMean: 0.6, windows: 2})

	if total.dropped != 10 || total.eaten != 5 || total.settled != 1 || total.windows != 3 {
		t.Errorf("totals = %+v", total)
	}
	if math.Abs(total.speedMean-0.5) > 1e-9 {
		t.Errorf("speed mean = %f, want 0.5", total.speedMean)
	}
}

func TestEvaluateRunsHeadless(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()
	cfg.Telemetry.StatsWindow = 1

	fe := NewFitnessEvaluator(pv, 96, 12, []int64{1, 2}, cfg, 0.8)
	fitness := fe.Evaluate(pv.DefaultVector())

	if fitness < 0 || fitness > 1 || math.IsNaN(fitness) {
		t.Errorf("fitness = %f, want within [0, 1]", fitness)
	}
	// Frames 12, 24, ... 84 drop food on both seeds
	if got := fe.LastResult().dropped; got != 14 {
		t.Errorf("dropped = %d, want 14", got)
	}
	if cfg.Fish.AttractionRadius != 10 {
		t.Error("Evaluate modified the base config")
	}
}
