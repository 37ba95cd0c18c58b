package game

import (
	"github.com/pthm-cable/fishtank/renderer"
	"github.com/pthm-cable/fishtank/systems"
	"github.com/pthm-cable/fishtank/telemetry"
)

// Frame is the frame driver. ts is a monotonically increasing timestamp in
// milliseconds. The first call only anchors the clock; later calls are no-ops
// until at least one frame interval has elapsed. It reports whether a new
// frame was composed.
//
// While paused the clock keeps moving and frames are still composed, so the
// water animates and resuming does not produce a time jump.
func (g *Game) Frame(ts float64) bool {
	dt := g.tank.Elapsed(ts)
	if dt < g.cfg.Derived.FrameTime {
		return false
	}
	g.tank.MarkFrame(ts)
	g.process(dt, ts)
	return true
}

// process runs one driven frame: step, compose, telemetry and auto-feed.
func (g *Game) process(dt, ts float64) {
	if g.paused {
		g.last = g.compositor.Compose(g.tank, ts)
		return
	}

	g.Step(dt, ts)
	g.perf.StartPhase(telemetry.PhaseComposite)
	g.last = g.compositor.Compose(g.tank, ts)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.perf.EndFrame()

	// No drop on the last frame; it would never reach a stats window
	if g.feedEvery > 0 && g.frame%g.feedEvery == 0 && !g.LimitReached() {
		g.FeedRandom()
	}
}

// Step advances the tank by dt milliseconds without throttling. now is the
// global time in ms that drives food sway. Perf samples are only recorded
// when called through Frame.
func (g *Game) Step(dt, now float64) {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseFish)
	g.updateFish(dt)

	g.perf.StartPhase(telemetry.PhaseFood)
	g.updateFood(now)

	g.perf.StartPhase(telemetry.PhaseBubbles)
	g.updateBubbles()

	g.perf.StartPhase(telemetry.PhaseCleanup)
	g.cleanup()

	g.frame++
	g.simTime += dt
}

// Compose renders the current state at time now without stepping.
func (g *Game) Compose(now float64) *renderer.Grid {
	return g.compositor.Compose(g.tank, now)
}

func (g *Game) updateFish(dt float64) {
	for _, e := range g.tank.FishEntities() {
		pos, vel, fish, ok := g.tank.Fish(e)
		if !ok {
			continue
		}
		g.recordFishEvents(g.fish.Step(pos, vel, fish, g.tank, dt))
	}
}

func (g *Game) updateFood(now float64) {
	floor := g.cfg.Derived.FoodFloor
	for _, e := range g.tank.FoodEntities() {
		pos, vel, food, ok := g.tank.FoodParticle(e)
		if !ok {
			continue
		}
		sinking := pos.Y < floor
		g.food.Step(pos, vel, food, now)
		if sinking && pos.Y >= floor {
			g.collector.Record(telemetry.EventFoodSettled)
		}
	}
}

func (g *Game) updateBubbles() {
	if pos, vel, bubble, ok := g.bubbles.MaybeSpawn(); ok {
		g.tank.AddBubble(pos, vel, bubble)
		g.collector.Record(telemetry.EventBubbleSpawned)
	}
	for _, e := range g.tank.BubbleEntities() {
		pos, vel, _, ok := g.tank.Bubble(e)
		if !ok {
			continue
		}
		g.bubbles.Step(pos, vel)
	}
}

// cleanup removes eaten or sunk food and surfaced bubbles.
func (g *Game) cleanup() {
	g.tank.RemoveFoodIf(g.food.Expired)
	popped := g.tank.RemoveBubblesIf(g.bubbles.Expired)
	g.collector.RecordN(telemetry.EventBubblePopped, popped)
}

// spawnFood drops one particle at column x.
func (g *Game) spawnFood(x float64) {
	pos, vel, food := g.food.Spawn(x)
	g.tank.AddFood(pos, vel, food)
	g.collector.Record(telemetry.EventFoodDropped)
}

// Fish-event bits map onto collector counters.
var fishEventCounters = []struct {
	flag  systems.FishEvent
	event telemetry.EventType
}{
	{systems.EventTurned, telemetry.EventTurn},
	{systems.EventNoticed, telemetry.EventNotice},
	{systems.EventCommitted, telemetry.EventChase},
	{systems.EventAte, telemetry.EventFoodEaten},
	{systems.EventBounced, telemetry.EventBounce},
}

func (g *Game) recordFishEvents(ev systems.FishEvent) {
	if ev == 0 {
		return
	}
	for _, c := range fishEventCounters {
		if ev.Has(c.flag) {
			g.collector.Record(c.event)
		}
	}
}
