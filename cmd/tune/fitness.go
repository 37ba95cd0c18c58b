package main

import (
	"context"
	"math"
	"sync"

	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/game"
	"github.com/pthm-cable/fishtank/telemetry"
)

// FitnessEvaluator runs headless tanks and scores how close the share of
// eaten food comes to a target.
type FitnessEvaluator struct {
	params     *ParamVector
	frames     int64
	feedEvery  int64
	seeds      []int64
	baseConfig *config.Config
	target     float64

	mu         sync.Mutex
	lastResult runResult // summed over seeds of the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, frames, feedEvery int64, seeds []int64, baseCfg *config.Config, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		frames:     frames,
		feedEvery:  feedEvery,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
	}
}

// runResult holds event totals from one or more runs.
type runResult struct {
	dropped   int
	eaten     int
	settled   int
	speedMean float64 // mean of per-window speed means
	windows   int
}

// add merges the totals of other into r.
func (r *runResult) add(other runResult) {
	total := r.windows + other.windows
	if total > 0 {
		r.speedMean = (r.speedMean*float64(r.windows) + other.speedMean*float64(other.windows)) / float64(total)
	}
	r.windows = total
	r.dropped += other.dropped
	r.eaten += other.eaten
	r.settled += other.settled
}

// EatenRatio returns the share of dropped food that was eaten.
func (r runResult) EatenRatio() float64 {
	if r.dropped == 0 {
		return 0
	}
	return float64(r.eaten) / float64(r.dropped)
}

// LastResult returns the totals from the most recent evaluation.
func (fe *FitnessEvaluator) LastResult() runResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResult
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total runResult
	for _, r := range results {
		total.add(r)
	}

	fe.mu.Lock()
	fe.lastResult = total
	fe.mu.Unlock()

	return fe.computeFitness(total)
}

// runSimulation executes a single headless run and sums its stats windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var result runResult
	g := game.NewGameWithOptions(game.Options{
		Config:    cfg,
		Seed:      seed,
		MaxFrames: fe.frames,
		FeedEvery: fe.feedEvery,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.add(runResult{
				dropped:   stats.FoodDropped,
				eaten:     stats.FoodEaten,
				settled:   stats.FoodSettled,
				speedMean: stats.SpeedMean,
				windows:   1,
			})
		},
	})

	// Errors only come from a missing frame limit, which main rules out
	_ = g.RunHeadless(context.Background())
	_ = g.Close()
	return result
}

// copyConfig returns a copy of the base config. Config holds only values,
// so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness is the squared distance of the eaten share from the target.
// A run where nothing was dropped scores worst.
func (fe *FitnessEvaluator) computeFitness(r runResult) float64 {
	if r.dropped == 0 {
		return 1
	}
	return math.Pow(r.EatenRatio()-fe.target, 2)
}
