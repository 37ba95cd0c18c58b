package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/systems"
)

// Tank owns every entity in the simulation. Components live in an ECS
// world; the three slices keep each kind in insertion order, which the
// compositor and the food scan rely on.
type Tank struct {
	world *ecs.World

	fishMapper   *ecs.Map3[components.Position, components.Velocity, components.Fish]
	foodMapper   *ecs.Map3[components.Position, components.Velocity, components.Food]
	bubbleMapper *ecs.Map3[components.Position, components.Velocity, components.Bubble]
	fishFilter   *ecs.Filter2[components.Velocity, components.Fish]

	// Kind lookups for handle validation
	fishMap   *ecs.Map1[components.Fish]
	foodMap   *ecs.Map1[components.Food]
	bubbleMap *ecs.Map1[components.Bubble]

	fish    []ecs.Entity
	food    []ecs.Entity
	bubbles []ecs.Entity

	// Frame clock
	lastFrame float64
	clockSet  bool
}

// NewTank creates an empty tank.
func NewTank() *Tank {
	world := ecs.NewWorld()
	return &Tank{
		world:        world,
		fishMapper:   ecs.NewMap3[components.Position, components.Velocity, components.Fish](world),
		foodMapper:   ecs.NewMap3[components.Position, components.Velocity, components.Food](world),
		bubbleMapper: ecs.NewMap3[components.Position, components.Velocity, components.Bubble](world),
		fishFilter:   ecs.NewFilter2[components.Velocity, components.Fish](world),
		fishMap:      ecs.NewMap1[components.Fish](world),
		foodMap:      ecs.NewMap1[components.Food](world),
		bubbleMap:    ecs.NewMap1[components.Bubble](world),
	}
}

// AddFish inserts a fish and returns its handle.
func (t *Tank) AddFish(pos components.Position, vel components.Velocity, fish components.Fish) ecs.Entity {
	e := t.fishMapper.NewEntity(&pos, &vel, &fish)
	t.fish = append(t.fish, e)
	return e
}

// AddFood inserts a food particle and returns its handle.
func (t *Tank) AddFood(pos components.Position, vel components.Velocity, food components.Food) ecs.Entity {
	e := t.foodMapper.NewEntity(&pos, &vel, &food)
	t.food = append(t.food, e)
	return e
}

// AddBubble inserts a bubble and returns its handle.
func (t *Tank) AddBubble(pos components.Position, vel components.Velocity, bubble components.Bubble) ecs.Entity {
	e := t.bubbleMapper.NewEntity(&pos, &vel, &bubble)
	t.bubbles = append(t.bubbles, e)
	return e
}

// Fish returns the components of a fish, or ok=false for a stale handle.
func (t *Tank) Fish(e ecs.Entity) (*components.Position, *components.Velocity, *components.Fish, bool) {
	if e == (ecs.Entity{}) || !t.world.Alive(e) || !t.fishMap.HasAll(e) {
		return nil, nil, nil, false
	}
	pos, vel, fish := t.fishMapper.Get(e)
	return pos, vel, fish, true
}

// Food resolves a food handle. It implements systems.FoodLocator.
func (t *Tank) Food(e ecs.Entity) (*components.Position, *components.Food, bool) {
	if e == (ecs.Entity{}) || !t.world.Alive(e) || !t.foodMap.HasAll(e) {
		return nil, nil, false
	}
	pos, _, food := t.foodMapper.Get(e)
	return pos, food, true
}

// FoodParticle returns the full components of a food particle, or ok=false
// for a stale handle.
func (t *Tank) FoodParticle(e ecs.Entity) (*components.Position, *components.Velocity, *components.Food, bool) {
	if e == (ecs.Entity{}) || !t.world.Alive(e) || !t.foodMap.HasAll(e) {
		return nil, nil, nil, false
	}
	pos, vel, food := t.foodMapper.Get(e)
	return pos, vel, food, true
}

// Bubble returns the components of a bubble, or ok=false for a stale handle.
func (t *Tank) Bubble(e ecs.Entity) (*components.Position, *components.Velocity, *components.Bubble, bool) {
	if e == (ecs.Entity{}) || !t.world.Alive(e) || !t.bubbleMap.HasAll(e) {
		return nil, nil, nil, false
	}
	pos, vel, bubble := t.bubbleMapper.Get(e)
	return pos, vel, bubble, true
}

// FirstNear returns the first un-eaten food closer than radius to (x, y).
// It implements systems.FoodLocator.
func (t *Tank) FirstNear(x, y, radius float64) (ecs.Entity, bool) {
	for _, e := range t.food {
		pos, _, food := t.foodMapper.Get(e)
		if food.Eaten {
			continue
		}
		if systems.Distance(x, y, pos.X, pos.Y) < radius {
			return e, true
		}
	}
	return ecs.Entity{}, false
}

// FishEntities returns fish handles in insertion order.
func (t *Tank) FishEntities() []ecs.Entity { return t.fish }

// FoodEntities returns food handles in insertion order.
func (t *Tank) FoodEntities() []ecs.Entity { return t.food }

// BubbleEntities returns bubble handles in insertion order.
func (t *Tank) BubbleEntities() []ecs.Entity { return t.bubbles }

// FishCount returns the number of fish.
func (t *Tank) FishCount() int { return len(t.fish) }

// FoodCount returns the number of food particles.
func (t *Tank) FoodCount() int { return len(t.food) }

// BubbleCount returns the number of bubbles.
func (t *Tank) BubbleCount() int { return len(t.bubbles) }

// EachFish visits fish in insertion order. It implements renderer.Scene.
func (t *Tank) EachFish(fn func(pos components.Position, fish components.Fish)) {
	for _, e := range t.fish {
		pos, _, fish := t.fishMapper.Get(e)
		fn(*pos, *fish)
	}
}

// EachFood visits food in insertion order. It implements renderer.Scene.
func (t *Tank) EachFood(fn func(pos components.Position)) {
	for _, e := range t.food {
		pos, _, _ := t.foodMapper.Get(e)
		fn(*pos)
	}
}

// EachBubble visits bubbles in insertion order. It implements renderer.Scene.
func (t *Tank) EachBubble(fn func(pos components.Position, bubble components.Bubble)) {
	for _, e := range t.bubbles {
		pos, _, bubble := t.bubbleMapper.Get(e)
		fn(*pos, *bubble)
	}
}

// RemoveFoodIf removes every food particle for which expired returns true
// and reports how many were removed. Order of the survivors is kept.
func (t *Tank) RemoveFoodIf(expired func(pos *components.Position, food *components.Food) bool) int {
	// First pass: collect, so the world is not modified while reading it
	kept := t.food[:0]
	var toRemove []ecs.Entity
	for _, e := range t.food {
		pos, _, food := t.foodMapper.Get(e)
		if expired(pos, food) {
			toRemove = append(toRemove, e)
			continue
		}
		kept = append(kept, e)
	}
	t.food = kept

	// Second pass: remove entities
	for _, e := range toRemove {
		t.world.RemoveEntity(e)
	}
	return len(toRemove)
}

// RemoveBubblesIf removes every bubble for which expired returns true and
// reports how many were removed.
func (t *Tank) RemoveBubblesIf(expired func(pos *components.Position) bool) int {
	kept := t.bubbles[:0]
	var toRemove []ecs.Entity
	for _, e := range t.bubbles {
		pos, _, _ := t.bubbleMapper.Get(e)
		if expired(pos) {
			toRemove = append(toRemove, e)
			continue
		}
		kept = append(kept, e)
	}
	t.bubbles = kept

	for _, e := range toRemove {
		t.world.RemoveEntity(e)
	}
	return len(toRemove)
}

// FishSpeeds samples |vx| of every fish.
func (t *Tank) FishSpeeds() []float64 {
	speeds := make([]float64, 0, len(t.fish))
	query := t.fishFilter.Query()
	for query.Next() {
		vel, _ := query.Get()
		speed := vel.X
		if speed < 0 {
			speed = -speed
		}
		speeds = append(speeds, speed)
	}
	return speeds
}

// Chasing counts fish that currently hold a live target.
func (t *Tank) Chasing() int {
	n := 0
	query := t.fishFilter.Query()
	for query.Next() {
		_, fish := query.Get()
		if !fish.HasTarget() {
			continue
		}
		if _, food, ok := t.Food(fish.Target); ok && !food.Eaten {
			n++
		}
	}
	return n
}

// Elapsed returns the milliseconds since the last processed frame. The first
// call anchors the clock at ts and returns 0.
func (t *Tank) Elapsed(ts float64) float64 {
	if !t.clockSet {
		t.lastFrame = ts
		t.clockSet = true
	}
	return ts - t.lastFrame
}

// MarkFrame records ts as the last processed frame time.
func (t *Tank) MarkFrame(ts float64) {
	t.lastFrame = ts
	t.clockSet = true
}

// LastFrame returns the last processed frame time.
func (t *Tank) LastFrame() float64 {
	return t.lastFrame
}
