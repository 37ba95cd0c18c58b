package telemetry

import "math"

// Collector accumulates events within windows of simulated time and
// produces WindowStats.
type Collector struct {
	windowDurationSec    float64
	windowDurationFrames int64
	frameMs              float64

	// Current window tracking
	windowStartFrame int64
	windowStartMs    float64

	// Event counters for current window
	counts [numEventTypes]int
}

// Population holds entity counts sampled at window end.
type Population struct {
	Fish    int
	Food    int
	Bubbles int
	Chasing int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulated seconds
// frameMs: milliseconds per processed frame
func NewCollector(windowDurationSec, frameMs float64) *Collector {
	framesPerWindow := int64(1)
	if frameMs > 0 {
		framesPerWindow = int64(math.Round(windowDurationSec * 1000 / frameMs))
	}
	if framesPerWindow < 1 {
		framesPerWindow = 1
	}

	return &Collector{
		windowDurationSec:    windowDurationSec,
		windowDurationFrames: framesPerWindow,
		frameMs:              frameMs,
	}
}

// Record counts one event.
func (c *Collector) Record(e EventType) {
	c.RecordN(e, 1)
}

// RecordN counts n events of the same type.
func (c *Collector) RecordN(e EventType, n int) {
	if e >= numEventTypes || n <= 0 {
		return
	}
	c.counts[e] += n
}

// Count returns the running count for e in the current window.
func (c *Collector) Count(e EventType) int {
	if e >= numEventTypes {
		return 0
	}
	return c.counts[e]
}

// ShouldFlush returns true once the window covers windowDurationSec of
// simulated time. Half a frame of slack absorbs float drift in fixed-step runs.
func (c *Collector) ShouldFlush(simTimeMs float64) bool {
	elapsed := simTimeMs - c.windowStartMs
	return elapsed+c.frameMs/2 >= c.windowDurationSec*1000
}

// Pending reports whether frames were processed since the last flush.
func (c *Collector) Pending(currentFrame int64) bool {
	return currentFrame > c.windowStartFrame
}

// Flush produces a WindowStats and resets counters for the next window.
// simTimeMs is the total simulated time; speeds are |vx| samples of every fish.
func (c *Collector) Flush(currentFrame int64, simTimeMs float64, pop Population, speeds []float64) WindowStats {
	var eatRate float64
	if dropped := c.counts[EventFoodDropped]; dropped > 0 {
		eatRate = float64(c.counts[EventFoodEaten]) / float64(dropped)
	}

	speed := ComputeSpeedStats(speeds)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,
		SimTimeSec:       simTimeMs / 1000,

		Fish:    pop.Fish,
		Food:    pop.Food,
		Bubbles: pop.Bubbles,
		Chasing: pop.Chasing,

		FoodDropped:    c.counts[EventFoodDropped],
		FoodEaten:      c.counts[EventFoodEaten],
		FoodSettled:    c.counts[EventFoodSettled],
		BubblesSpawned: c.counts[EventBubbleSpawned],
		BubblesPopped:  c.counts[EventBubblePopped],
		Turns:          c.counts[EventTurn],
		Notices:        c.counts[EventNotice],
		Chases:         c.counts[EventChase],
		Bounces:        c.counts[EventBounce],
		EatRate:        eatRate,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP10:  speed.P10,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,
	}

	// Reset for next window
	c.windowStartFrame = currentFrame
	c.windowStartMs = simTimeMs
	c.counts = [numEventTypes]int{}

	return stats
}

// WindowDurationFrames returns the nominal number of frames per window at
// the configured frame time. Slower frames make windows shorter in frames.
func (c *Collector) WindowDurationFrames() int64 {
	return c.windowDurationFrames
}
